// Package chopper implements a demo woodcutting bot. It looks for a tree on
// screen using a template image, clicks it and watches the chat box to count
// the chopped logs.
package chopper

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/input"
	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
	"github.com/spacebear01/osbc/internal/vision"
)

const (
	optRunningTime  = "running_time"
	optTreeTemplate = "tree_template"
	optGameRegion   = "game_region"
	optChatRegion   = "chat_region"
)

var (
	// Default regions match the fixed-size game client layout.
	defaultGameView = model.NewRect(0, 0, 765, 503)
	defaultChat     = model.NewRect(0, 340, 520, 500)

	chatExpected  = []string{"you swing your axe"}
	chatBlacklist = []string{"you can't reach that"}
)

var info = model.BotInfo{
	Name:        "chopper",
	Title:       "Wood Chopper",
	Description: "Chops the trees matching a template image and counts the logs in the chat box.",
}

func init() {
	bots.Register(info, func(deps bots.Deps) (bot.Script, error) {
		return New(BotConfig{Vision: deps.Vision, Mouse: deps.Mouse, Logger: deps.Logger})
	})
}

// BotConfig is the configuration of the chopper bot.
type BotConfig struct {
	Vision *vision.Service
	Mouse  input.Mouse
	Logger log.Logger

	// SearchWait is how long the bot waits before searching again when no
	// tree is on screen.
	SearchWait time.Duration
	// ChopWait is how long the bot waits for the character to chop after
	// clicking a tree.
	ChopWait time.Duration
	// WaitTick is the sleep slice used while waiting. Waits sleep in slices
	// so pause and stop stay responsive.
	WaitTick time.Duration
}

func (c *BotConfig) defaults() error {
	if c.Vision == nil {
		return fmt.Errorf("vision service is required")
	}

	if c.Mouse == nil {
		return fmt.Errorf("mouse is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "bots.Chopper"})

	if c.SearchWait == 0 {
		c.SearchWait = 2 * time.Second
	}

	if c.ChopWait == 0 {
		c.ChopWait = 5 * time.Second
	}

	if c.WaitTick == 0 {
		c.WaitTick = 100 * time.Millisecond
	}

	return nil
}

// Bot is the chopper script.
type Bot struct {
	vision *vision.Service
	mouse  input.Mouse
	logger log.Logger

	searchWait time.Duration
	chopWait   time.Duration
	waitTick   time.Duration

	runFor   time.Duration
	template string
	gameView model.Rect
	chat     model.Rect
}

var _ bot.Script = (*Bot)(nil)

// New returns a chopper bot.
func New(cfg BotConfig) (*Bot, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Bot{
		vision:     cfg.Vision,
		mouse:      cfg.Mouse,
		logger:     cfg.Logger,
		searchWait: cfg.SearchWait,
		chopWait:   cfg.ChopWait,
		waitTick:   cfg.WaitTick,
	}, nil
}

// Info describes the bot.
func (b *Bot) Info() model.BotInfo { return info }

// CreateOptions declares the options the bot exposes.
func (b *Bot) CreateOptions() (options.Schema, error) {
	ob := options.NewBuilder(info.Title)
	ob.AddSlider(optRunningTime, "Running time (minutes)", 1, 180)
	ob.AddText(optTreeTemplate, "Tree template image (PNG path)", "/path/to/tree.png")
	ob.AddText(optGameRegion, "Game view region (left,top,right,bottom)", "0,0,765,503")
	ob.AddText(optChatRegion, "Chat box region (left,top,right,bottom)", "0,340,520,500")

	return ob.Build()
}

// SaveOptions validates and applies user-provided option values.
func (b *Bot) SaveOptions(values options.Values) error {
	schema, err := b.CreateOptions()
	if err != nil {
		return fmt.Errorf("could not build options schema: %w", err)
	}

	if err := schema.Validate(values); err != nil {
		return err
	}

	template := strings.TrimSpace(values.String(optTreeTemplate))
	if template == "" {
		return fmt.Errorf("a tree template image is required: %w", model.ErrNotValid)
	}

	gameView, err := regionOrDefault(values.String(optGameRegion), defaultGameView)
	if err != nil {
		return fmt.Errorf("invalid game view region: %w", err)
	}

	chat, err := regionOrDefault(values.String(optChatRegion), defaultChat)
	if err != nil {
		return fmt.Errorf("invalid chat box region: %w", err)
	}

	b.runFor = time.Duration(values.Int(optRunningTime)) * time.Minute
	b.template = template
	b.gameView = gameView
	b.chat = chat

	b.logger.Debugf("Options applied: template %s, running for %s", b.template, b.runFor)

	return nil
}

// MainLoop chops trees until the running time elapses or the bot is stopped.
func (b *Bot) MainLoop(rt bot.Runtime) {
	ctx := context.Background()
	start := time.Now()
	logs := 0

	rt.Logf("Chopping for %d minutes.", int(b.runFor.Minutes()))

	for rt.CheckStatus() {
		elapsed := time.Since(start)
		if elapsed >= b.runFor {
			rt.UpdateProgress(1)
			rt.Logf("Done. Logs chopped: %d.", logs)
			return
		}
		rt.UpdateProgress(float64(elapsed) / float64(b.runFor))

		tree, err := b.vision.FindTemplate(ctx, b.gameView, b.template, 0)
		if err != nil {
			rt.Logf("Tree search failed: %v", err)
			b.wait(rt, b.searchWait)
			continue
		}

		if tree == nil {
			rt.Log("No tree on screen. Waiting for a respawn.")
			b.wait(rt, b.searchWait)
			continue
		}

		b.mouse.MoveTo(*tree)
		b.mouse.Click()

		if !b.wait(rt, b.chopWait) {
			return
		}

		match, err := b.vision.SearchText(ctx, b.chat, chatExpected, chatBlacklist)
		if err != nil {
			rt.Logf("Chat check failed: %v", err)
			continue
		}

		switch match {
		case model.TextMatchFound:
			logs++
			rt.Logf("Logs chopped: %d.", logs)
		case model.TextMatchBlacklisted:
			rt.Log("Could not reach the tree. Picking another one.")
		}
	}
}

// wait sleeps in short slices so pause and stop stay responsive. It reports
// whether the bot may keep working.
func (b *Bot) wait(rt bot.Runtime, d time.Duration) bool {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if !rt.CheckStatus() {
			return false
		}
		time.Sleep(b.waitTick)
	}

	return rt.CheckStatus()
}

func regionOrDefault(s string, def model.Rect) (model.Rect, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}

	return parseRegion(s)
}

// parseRegion parses a "left,top,right,bottom" string into a Rect.
func parseRegion(s string) (model.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return model.Rect{}, fmt.Errorf("expected left,top,right,bottom: %w", model.ErrNotValid)
	}

	coords := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return model.Rect{}, fmt.Errorf("%q is not an integer: %w", part, model.ErrNotValid)
		}
		coords[i] = v
	}

	rect := model.NewRect(coords[0], coords[1], coords[2], coords[3])
	if err := rect.Validate(); err != nil {
		return model.Rect{}, err
	}

	return rect, nil
}
