package lib_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spacebear01/osbc/pkg/lib"
)

// greeterScript is a minimal bot used by the examples. It never touches the
// screen.
type greeterScript struct{}

func (greeterScript) Info() lib.BotInfo {
	return lib.BotInfo{Name: "greeter", Title: "Greeter", Description: "Counts to three."}
}

func (greeterScript) CreateOptions() (lib.Schema, error) {
	return lib.Schema{Title: "Greeter", Options: []lib.Option{
		{Key: "greeting", Label: "Greeting", Type: lib.OptionTypeText},
	}}, nil
}

func (greeterScript) SaveOptions(values lib.Values) error { return nil }

func (greeterScript) MainLoop(rt lib.Runtime) {
	for i := 0; i < 3; i++ {
		if !rt.CheckStatus() {
			return
		}
		rt.UpdateProgress(float64(i+1) / 3)
	}
}

// This example shows how to run your own bot script with the SDK.
func Example_ownBot() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "osbc-example-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath:  filepath.Join(dir, "osbc.db"),
		DataDir: dir,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	err = client.RunBot(ctx, greeterScript{}, &lib.RunBotOpts{
		Values:    lib.Values{"greeting": "Hello"},
		NoHistory: true,
	})
	if err != nil {
		panic(err)
	}

	fmt.Println("bot finished")

	// Output:
	// bot finished
}

// This example shows how runs are recorded and queried.
func ExampleClient_History() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "osbc-example-history-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath:  filepath.Join(dir, "osbc.db"),
		DataDir: dir,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	err = client.RunBot(ctx, greeterScript{}, nil)
	if err != nil {
		panic(err)
	}

	runs, err := client.History(ctx, nil)
	if err != nil {
		panic(err)
	}

	for _, run := range runs {
		fmt.Printf("%s finished at %.0f%%\n", run.Bot, run.Progress*100)
	}

	// Output:
	// greeter finished at 100%
}

// This example lists the bots shipped with osbc.
func ExampleClient_Bots() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "osbc-example-bots-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath:  filepath.Join(dir, "osbc.db"),
		DataDir: dir,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	for _, info := range client.Bots() {
		fmt.Printf("%s: %s\n", info.Name, info.Title)
	}

	// Output:
	// chopper: Wood Chopper
}

// This example shows how to discover the options a registered bot takes.
func ExampleClient_BotSchema() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "osbc-example-schema-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath:  filepath.Join(dir, "osbc.db"),
		DataDir: dir,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	schema, err := client.BotSchema("chopper")
	if err != nil {
		panic(err)
	}

	fmt.Println(schema.Title)
	for _, opt := range schema.Options {
		fmt.Println(opt.Key)
	}

	// Output:
	// Wood Chopper
	// running_time
	// tree_template
	// game_region
	// chat_region
}

// This example shows how to inspect SDK errors with errors.Is.
func Example_errorHandling() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "osbc-example-errors-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	client, err := lib.New(ctx, lib.Config{
		DBPath:  filepath.Join(dir, "osbc.db"),
		DataDir: dir,
	})
	if err != nil {
		panic(err)
	}
	defer client.Close()

	err = client.RunRegisteredBot(ctx, "no-such-bot", nil)
	if errors.Is(err, lib.ErrNotFound) {
		fmt.Println("bot not found")
	}

	// Output:
	// bot not found
}
