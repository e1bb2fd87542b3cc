package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"
	"gopkg.in/yaml.v3"

	"github.com/spacebear01/osbc/internal/app/runbot"
	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/controller/record"
	"github.com/spacebear01/osbc/internal/controller/term"
	"github.com/spacebear01/osbc/internal/conventions"
	"github.com/spacebear01/osbc/internal/interrupt"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
	"github.com/spacebear01/osbc/internal/storage/sqlite"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	bot             string
	optionsPath     string
	noHistory       bool
	saveScreenshots bool
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run a bot until it finishes or is stopped.")
	c.Cmd.Arg("bot", "Name of the bot to run.").Required().StringVar(&c.bot)
	c.Cmd.Flag("options", "Path to an options YAML file. Defaults to <data-dir>/options/<bot>.yaml.").StringVar(&c.optionsPath)
	c.Cmd.Flag("no-history", "Do not record the run in the database.").BoolVar(&c.noHistory)
	c.Cmd.Flag("save-screenshots", "Save every captured region under <data-dir>/screenshots.").BoolVar(&c.saveScreenshots)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	// Bot script with its collaborators.
	deps, err := newBotDeps(c.rootCmd, c.saveScreenshots)
	if err != nil {
		return err
	}

	script, err := bots.New(c.bot, deps)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	values, err := c.loadValues(ctx)
	if err != nil {
		return err
	}

	// The terminal controller renders the bot's user-facing log, optionally
	// decorated with run history recording.
	termCtrl, err := term.NewController(term.ControllerConfig{Out: c.rootCmd.Stdout})
	if err != nil {
		return fmt.Errorf("could not create terminal controller: %w", err)
	}

	var ctrl bot.Controller = termCtrl
	if !c.noHistory {
		repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
			DBPath: c.rootCmd.ResolveDBPath(),
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("could not create repository: %w", err)
		}
		defer repo.Close()

		ctrl, err = record.NewController(record.ControllerConfig{
			Bot:     c.bot,
			Next:    termCtrl,
			RunRepo: repo,
			Logger:  logger,
		})
		if err != nil {
			return fmt.Errorf("could not create recording controller: %w", err)
		}
	}

	svc, err := runbot.NewService(runbot.ServiceConfig{
		Script:     script,
		Controller: ctrl,
		Interrupts: interrupt.NewKeyboard(),
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create run service: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, `Keys: "-" pause, "=" resume, ESC stop.`)

	return svc.Run(ctx, runbot.Request{Values: values})
}

// loadValues loads the bot option values from --options or the default path.
func (c RunCommand) loadValues(ctx context.Context) (options.Values, error) {
	if c.optionsPath != "" {
		data, err := os.ReadFile(c.optionsPath)
		if err != nil {
			return nil, fmt.Errorf("could not read options file: %w", err)
		}

		values := options.Values{}
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, fmt.Errorf("could not parse options file: %w", err)
		}

		return values, nil
	}

	store := options.NewYAMLStore(filepath.Join(c.rootCmd.DataDir, conventions.OptionsDir))
	values, err := store.Load(ctx, c.bot)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("no options found for %q, run \"osbc options %s\" to create a skeleton: %w", c.bot, c.bot, err)
	}
	if err != nil {
		return nil, fmt.Errorf("could not load options: %w", err)
	}

	return values, nil
}
