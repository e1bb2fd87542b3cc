// Package bots is the registry of the bot scripts shipped with osbc. Scripts
// register themselves at init time and the CLI resolves them by name.
package bots

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/input"
	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/vision"
)

// Deps are the shared collaborators handed to every bot script.
type Deps struct {
	Vision *vision.Service
	Mouse  input.Mouse
	Logger log.Logger
}

// Factory builds a bot script from shared dependencies.
type Factory func(deps Deps) (bot.Script, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
	infos     = map[string]model.BotInfo{}
)

// Register adds a bot factory under info.Name. Registration happens at init
// time, so invalid or duplicate registrations panic.
func Register(info model.BotInfo, factory Factory) {
	if err := info.Validate(); err != nil {
		panic(fmt.Sprintf("bots: registering invalid bot: %v", err))
	}

	if factory == nil {
		panic(fmt.Sprintf("bots: registering %q with a nil factory", info.Name))
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := factories[info.Name]; ok {
		panic(fmt.Sprintf("bots: %q registered twice", info.Name))
	}

	factories[info.Name] = factory
	infos[info.Name] = info
}

// New builds the bot script registered under name.
func New(name string, deps Deps) (bot.Script, error) {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown bot %q: %w", name, model.ErrNotFound)
	}

	script, err := factory(deps)
	if err != nil {
		return nil, fmt.Errorf("could not create bot %q: %w", name, err)
	}

	return script, nil
}

// Names returns the registered bot names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Describe returns the information of every registered bot, sorted by name.
func Describe() []model.BotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]model.BotInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })

	return result
}
