// Package lib provides a Go SDK for running osbc screen automation bots
// programmatically.
//
// This package allows applications to run bots, write their own bot scripts
// and query run history without shelling out to the osbc CLI binary. It is
// useful for scripting, automation and building tools on top of osbc.
//
// # Quick Start
//
// Create a client and run one of the shipped bots with its default options:
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	schema, _ := client.BotSchema("chopper")
//	values := schema.Defaults()
//	values["tree_template"] = "/path/to/tree.png"
//
//	err = client.RunRegisteredBot(ctx, "chopper", &lib.RunBotOpts{
//	    Values:     values,
//	    Interrupts: lib.KeyboardInterrupts(),
//	})
//
// # Writing Your Own Bot
//
// A bot is any type implementing [Script]. The SDK drives its lifecycle:
// options are applied with SaveOptions, then MainLoop runs on a worker
// goroutine until it returns or [Runtime.CheckStatus] reports false.
//
//	type greeter struct{}
//
//	func (greeter) Info() lib.BotInfo {
//	    return lib.BotInfo{Name: "greeter", Title: "Greeter"}
//	}
//
//	func (greeter) CreateOptions() (lib.Schema, error) { return lib.Schema{}, nil }
//	func (greeter) SaveOptions(values lib.Values) error { return nil }
//
//	func (greeter) MainLoop(rt lib.Runtime) {
//	    for i := 0; i < 10; i++ {
//	        if !rt.CheckStatus() {
//	            return
//	        }
//	        rt.Logf("Hello %d", i)
//	        rt.UpdateProgress(float64(i) / 10)
//	    }
//	}
//
//	client.RunBot(ctx, greeter{}, nil)
//
// MainLoop must call CheckStatus between actions: it blocks while the bot is
// paused and reports false once the bot must stop.
//
// # Screen Access
//
// Bots read the screen and drive the mouse through the vision toolkit:
//
//	eyes, _ := client.Vision(nil)
//	hand, _ := client.Mouse()
//
//	target, _ := eyes.FindTemplate(ctx, lib.NewRect(0, 0, 800, 600), "button.png", 0)
//	if target != nil {
//	    hand.MoveTo(*target)
//	    hand.Click()
//	}
//
//	match, _ := eyes.SearchText(ctx, chatRegion, []string{"you swing"}, []string{"can't reach"})
//
// # Run History
//
// Every run is recorded in the history database unless
// [RunBotOpts.NoHistory] is set:
//
//	runs, _ := client.History(ctx, &lib.HistoryOpts{Bot: "chopper"})
//	for _, r := range runs {
//	    fmt.Printf("%s: started %s, progress %.0f%%\n", r.Bot, r.StartedAt, r.Progress*100)
//	}
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist (unknown bot, no saved options).
//   - [ErrAlreadyExists]: Resource with the same identifier already exists.
//   - [ErrNotValid]: Invalid input or operation (e.g. bad option values).
//
// # Testing
//
// Use a temporary database path and [RunBotOpts.NoHistory] or a custom
// [Controller] to write tests without touching the real screen:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    DBPath: filepath.Join(t.TempDir(), "test.db"),
//	})
//	defer client.Close()
//
// Scripts that never touch [Vision] or [Mouse] run fine in headless
// environments.
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. The
// underlying storage uses SQLite with WAL mode. Controllers and interrupt
// sources are called from the bot's worker goroutines and must be safe for
// concurrent use.
package lib
