package term_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacebear01/osbc/internal/controller/term"
	"github.com/spacebear01/osbc/internal/model"
)

func newController(t *testing.T) (*term.Controller, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	c, err := term.NewController(term.ControllerConfig{Out: &buf})
	require.NoError(t, err)

	return c, &buf
}

func TestControllerLogLines(t *testing.T) {
	c, buf := newController(t)

	c.UpdateLog("Starting bot...", false)
	c.UpdateLog("Chopping tree 1...", false)

	assert.Equal(t, "Starting bot...\nChopping tree 1...\n", buf.String())
}

func TestControllerOverwriteReusesLine(t *testing.T) {
	c, buf := newController(t)

	c.UpdateLog("Bot is paused.", false)
	c.UpdateLog("Terminating in 59.", true)
	c.UpdateLog("Terminating in 8.", true)
	c.UpdateLog("Resuming bot...", false)

	// The second countdown is padded so the longer first one leaves no tail.
	exp := "Bot is paused.\n" +
		"\rTerminating in 59." +
		"\rTerminating in 8. " +
		"\nResuming bot...\n"
	assert.Equal(t, exp, buf.String())
}

func TestControllerStatusAndProgress(t *testing.T) {
	c, buf := newController(t)

	c.UpdateStatus(model.BotStatusRunning)
	c.UpdateProgress(0.25)
	c.UpdateProgress(0.25)
	c.UpdateProgress(0.254)
	c.UpdateProgress(1)
	c.UpdateStatus(model.BotStatusStopped)

	exp := "[status] running\n" +
		"[progress] 25%\n" +
		"[progress] 100%\n" +
		"[status] stopped\n"
	assert.Equal(t, exp, buf.String())
}

func TestControllerInitialZeroProgressIsSilent(t *testing.T) {
	c, buf := newController(t)

	c.UpdateProgress(0)

	assert.Empty(t, buf.String())
}

func TestControllerClearLogSeparates(t *testing.T) {
	c, buf := newController(t)

	c.UpdateLog("Old run.", false)
	c.ClearLog()
	c.UpdateLog("Starting bot...", false)

	assert.Equal(t, "Old run.\n\nStarting bot...\n", buf.String())
}
