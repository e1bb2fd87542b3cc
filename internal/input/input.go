package input

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
)

// Mouse moves and clicks the system pointer. Implementations do not retry
// and carry no lifecycle logic.
type Mouse interface {
	// MoveTo moves the pointer to the given screen point.
	MoveTo(p model.Point)
	// MoveRel moves the pointer relative to its current position.
	MoveRel(dx, dy int)
	// Click presses the left mouse button at the current position.
	Click()
	// RightClick presses the right mouse button at the current position.
	RightClick()
	// Position returns the current pointer position.
	Position() model.Point
}

// SystemMouseConfig is the configuration for the system mouse.
type SystemMouseConfig struct {
	Logger log.Logger
}

func (c *SystemMouseConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "input.SystemMouse"})
	return nil
}

// SystemMouse is a Mouse over the real system pointer. Moves are smoothed so
// they look like a hand, not a teleport.
type SystemMouse struct {
	logger log.Logger
}

var _ Mouse = (*SystemMouse)(nil)

// NewSystemMouse creates a new system mouse.
func NewSystemMouse(cfg SystemMouseConfig) (*SystemMouse, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &SystemMouse{logger: cfg.Logger}, nil
}

// MoveTo moves the pointer to the given screen point.
func (m *SystemMouse) MoveTo(p model.Point) {
	robotgo.MoveSmooth(p.X, p.Y)
	m.logger.Debugf("Mouse moved to %d,%d", p.X, p.Y)
}

// MoveRel moves the pointer relative to its current position.
func (m *SystemMouse) MoveRel(dx, dy int) {
	x, y := robotgo.Location()
	robotgo.MoveSmooth(x+dx, y+dy)
}

// Click presses the left mouse button at the current position.
func (m *SystemMouse) Click() {
	robotgo.Click("left", false)
}

// RightClick presses the right mouse button at the current position.
func (m *SystemMouse) RightClick() {
	robotgo.Click("right", false)
}

// Position returns the current pointer position.
func (m *SystemMouse) Position() model.Point {
	x, y := robotgo.Location()
	return model.Point{X: x, Y: y}
}
