// Package term renders bot updates on a terminal.
package term

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/model"
)

// ControllerConfig is the configuration for the terminal controller.
type ControllerConfig struct {
	Out io.Writer
}

func (c *ControllerConfig) defaults() error {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	return nil
}

// Controller writes bot updates as plain lines. Overwrite messages reuse the
// current line with a carriage return, the way the pause countdown expects.
type Controller struct {
	out io.Writer

	mu             sync.Mutex
	pendingRewrite bool
	rewriteLen     int
	lastPercent    int
}

var _ bot.Controller = (*Controller)(nil)

// NewController creates a new terminal controller.
func NewController(cfg ControllerConfig) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Controller{out: cfg.Out}, nil
}

// UpdateStatus prints the new bot status.
func (c *Controller) UpdateStatus(status model.BotStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.endRewrite()
	fmt.Fprintf(c.out, "[status] %s\n", status)
}

// UpdateProgress prints the bot progress as a whole percentage, skipping
// repeats.
func (c *Controller) UpdateProgress(progress float64) {
	percent := int(progress * 100)

	c.mu.Lock()
	defer c.mu.Unlock()

	if percent == c.lastPercent {
		return
	}
	c.lastPercent = percent

	c.endRewrite()
	fmt.Fprintf(c.out, "[progress] %d%%\n", percent)
}

// UpdateLog prints a log message. Overwrite messages replace the current
// line.
func (c *Controller) UpdateLog(msg string, overwrite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if overwrite {
		pad := ""
		if n := c.rewriteLen - len(msg); n > 0 {
			pad = strings.Repeat(" ", n)
		}
		fmt.Fprintf(c.out, "\r%s%s", msg, pad)
		c.rewriteLen = len(msg)
		c.pendingRewrite = true
		return
	}

	c.endRewrite()
	fmt.Fprintln(c.out, msg)
}

// ClearLog separates the upcoming messages from the previous ones. A
// terminal keeps its scrollback, so nothing is erased.
func (c *Controller) ClearLog() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.endRewrite()
	fmt.Fprintln(c.out)
}

// endRewrite terminates a pending overwrite line. Must be called with the
// lock held.
func (c *Controller) endRewrite() {
	if !c.pendingRewrite {
		return
	}
	fmt.Fprintln(c.out)
	c.pendingRewrite = false
	c.rewriteLen = 0
}
