package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/conventions"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
	"github.com/spacebear01/osbc/internal/printer"
)

type OptionsCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	bot string
}

// NewOptionsCommand returns the options command.
func NewOptionsCommand(rootCmd *RootCommand, app *kingpin.Application) *OptionsCommand {
	c := &OptionsCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("options", "Write an options YAML skeleton for a bot.")
	c.Cmd.Arg("bot", "Name of the bot.").Required().StringVar(&c.bot)

	return c
}

func (c OptionsCommand) Name() string { return c.Cmd.FullCommand() }

func (c OptionsCommand) Run(ctx context.Context) error {
	deps, err := newBotDeps(c.rootCmd, false)
	if err != nil {
		return err
	}

	script, err := bots.New(c.bot, deps)
	if err != nil {
		return fmt.Errorf("could not create bot: %w", err)
	}

	schema, err := script.CreateOptions()
	if err != nil {
		return fmt.Errorf("could not build options schema: %w", err)
	}

	path := conventions.OptionsPath(c.rootCmd.DataDir, c.bot)
	p := printer.NewTablePrinter(c.rootCmd.Stdout)

	// Never overwrite an edited options file.
	store := options.NewYAMLStore(filepath.Join(c.rootCmd.DataDir, conventions.OptionsDir))
	_, err = store.Load(ctx, c.bot)
	if err == nil {
		return p.PrintMessage(fmt.Sprintf("Options file already exists at %s.", path))
	}
	if !errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("could not check existing options: %w", err)
	}

	if err := store.Save(ctx, c.bot, schema.Defaults()); err != nil {
		return fmt.Errorf("could not write options skeleton: %w", err)
	}

	return p.PrintMessage(fmt.Sprintf("Wrote options skeleton to %s. Edit it and run \"osbc run %s\".", path, c.bot))
}
