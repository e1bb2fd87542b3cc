package lib

import (
	"time"

	"github.com/spacebear01/osbc/internal/bot"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
)

// BotStatus represents the lifecycle state of a bot.
//
// The typical lifecycle is:
//
//	stopped -> running <-> paused -> stopped
//
// A bot also passes through configuring while its options are being applied.
type BotStatus string

const (
	// BotStatusRunning indicates the bot's main loop is executing.
	BotStatusRunning BotStatus = "running"
	// BotStatusPaused indicates the bot is paused and waiting to be resumed.
	BotStatusPaused BotStatus = "paused"
	// BotStatusStopped indicates the bot is not running (initial state).
	BotStatusStopped BotStatus = "stopped"
	// BotStatusConfiguring indicates the bot options are being edited.
	BotStatusConfiguring BotStatus = "configuring"
)

// BotInfo describes a bot to users and to the registry.
type BotInfo struct {
	// Name is the registry key for the bot (lowercase, no spaces).
	Name string
	// Title is the human-readable bot name.
	Title string
	// Description is a short explanation of what the bot does.
	Description string
}

// Run is a single execution of a bot, from start to stop.
//
// This is a read-only snapshot taken when the API call was made. Runs are
// created and finalized automatically while a bot executes with history
// enabled.
type Run struct {
	// ID is the unique run identifier (ULID) assigned at start.
	ID string
	// Bot is the registry name of the bot that ran.
	Bot string
	// StartedAt is when the run transitioned to running.
	StartedAt time.Time
	// StoppedAt is when the run transitioned to stopped. Nil while running.
	StoppedAt *time.Time
	// Progress is the last progress value reported by the bot, in [0,1].
	Progress float64
}

// OptionType identifies the kind of control an option is edited with.
type OptionType string

const (
	// OptionTypeSlider is a bounded integer option.
	OptionTypeSlider OptionType = "slider"
	// OptionTypeCheckbox is a multi-select option over a fixed set of choices.
	OptionTypeCheckbox OptionType = "checkbox"
	// OptionTypeDropdown is a single-select option over a fixed set of choices.
	OptionTypeDropdown OptionType = "dropdown"
	// OptionTypeText is a free-form text option.
	OptionTypeText OptionType = "text"
)

// Option describes a single configurable bot setting.
type Option struct {
	// Key is the identifier values are stored under.
	Key string
	// Label is the human-readable option name.
	Label string
	// Type selects the control kind.
	Type OptionType
	// Min and Max bound slider options.
	Min int
	Max int
	// Choices lists the valid values of checkbox and dropdown options.
	Choices []string
	// Placeholder is a hint for text options.
	Placeholder string
}

// Schema is the full set of options a bot exposes.
type Schema struct {
	// Title is the human-readable title of the option set.
	Title string
	// Options are the declared options, in declaration order.
	Options []Option
}

// Values holds the user-provided value for each option, keyed by option key.
type Values map[string]any

// Defaults returns the zero value of every option in the schema: sliders get
// their minimum, checkboxes an empty selection, dropdowns their first choice
// and text options an empty string.
func (s Schema) Defaults() Values {
	return Values(toInternalSchema(s).Defaults())
}

// Validate checks the given values against the schema. Unknown keys and
// values of the wrong shape return an error matching [ErrNotValid].
func (s Schema) Validate(values Values) error {
	return mapError(toInternalSchema(s).Validate(options.Values(values)))
}

// Point is an absolute screen coordinate in pixels, origin at the top-left
// corner of the primary display.
type Point struct {
	X int
	Y int
}

// Rect is a rectangular screen region delimited by its top-left and
// bottom-right corners.
type Rect struct {
	Start Point
	End   Point
}

// NewRect returns a Rect from top-left and bottom-right coordinates.
func NewRect(x0, y0, x1, y1 int) Rect {
	return Rect{Start: Point{X: x0, Y: y0}, End: Point{X: x1, Y: y1}}
}

// TextMatch is the tri-state result of searching recognized text for
// expected and blacklisted words.
type TextMatch int

const (
	// TextMatchUnknown indicates the recognized text was irrelevant: no
	// expected word and no blacklisted word was found.
	TextMatchUnknown TextMatch = iota
	// TextMatchFound indicates at least one expected word was found and no
	// blacklisted word was found.
	TextMatchFound
	// TextMatchBlacklisted indicates a blacklisted word was found.
	TextMatchBlacklisted
)

// String returns a human-readable representation of the match result.
func (m TextMatch) String() string { return model.TextMatch(m).String() }

// Script is a bot implementation. The SDK owns the lifecycle; the script
// provides identity, options and the working loop.
//
// MainLoop must call [Runtime.CheckStatus] between actions and return
// promptly once it reports false. See the package documentation for a
// complete example.
type Script interface {
	// Info describes the bot.
	Info() BotInfo
	// CreateOptions declares the options the bot exposes.
	CreateOptions() (Schema, error)
	// SaveOptions validates and applies user-provided option values.
	SaveOptions(values Values) error
	// MainLoop performs the bot's work until CheckStatus reports false.
	MainLoop(rt Runtime)
}

// Runtime is the control surface scripts use from their main loop. It is
// provided by the SDK, scripts never implement it.
type Runtime interface {
	// CheckStatus reports whether the script may keep working. It blocks
	// while the bot is paused.
	CheckStatus() bool
	// UpdateProgress reports the script's progress in [0, 1].
	UpdateProgress(progress float64)
	// Log appends a message to the bot's log.
	Log(msg string)
	// Logf appends a formatted message to the bot's log.
	Logf(format string, args ...interface{})
}

// Controller receives user-facing updates while a bot runs. Calls may come
// from the bot's worker goroutine, so implementations must be safe for
// concurrent use.
type Controller interface {
	// UpdateStatus is called after every status change.
	UpdateStatus(status BotStatus)
	// UpdateProgress is called with the bot's progress in [0, 1].
	UpdateProgress(progress float64)
	// UpdateLog appends a message to the bot's log. When overwrite is true
	// the message replaces the previously emitted line.
	UpdateLog(msg string, overwrite bool)
	// ClearLog discards the bot's log.
	ClearLog()
}

// InterruptSource reports user interrupt requests (hotkeys or equivalent).
// Implementations are polled from the supervisor's goroutines and must be
// safe for concurrent use.
type InterruptSource interface {
	// PausePressed reports whether a pause was requested.
	PausePressed() bool
	// ResumePressed reports whether a resume was requested.
	ResumePressed() bool
	// StopPressed reports whether a stop was requested.
	StopPressed() bool
}

// Mouse moves the system pointer and clicks.
type Mouse interface {
	// MoveTo moves the pointer to an absolute screen coordinate.
	MoveTo(p Point)
	// MoveRel moves the pointer relative to its current position.
	MoveRel(dx, dy int)
	// Click presses and releases the left mouse button.
	Click()
	// RightClick presses and releases the right mouse button.
	RightClick()
	// Position returns the current pointer position.
	Position() Point
}

// --- Script and controller adapters ---

// scriptAdapter bridges a public Script into the internal supervisor.
type scriptAdapter struct {
	script Script
}

func (a scriptAdapter) Info() model.BotInfo {
	return toInternalBotInfo(a.script.Info())
}

func (a scriptAdapter) CreateOptions() (options.Schema, error) {
	schema, err := a.script.CreateOptions()
	if err != nil {
		return options.Schema{}, err
	}
	return toInternalSchema(schema), nil
}

func (a scriptAdapter) SaveOptions(values options.Values) error {
	return a.script.SaveOptions(Values(values))
}

func (a scriptAdapter) MainLoop(rt bot.Runtime) {
	a.script.MainLoop(rt)
}

// controllerAdapter bridges a public Controller into the internal supervisor.
type controllerAdapter struct {
	controller Controller
}

func (a controllerAdapter) UpdateStatus(status model.BotStatus) {
	a.controller.UpdateStatus(BotStatus(status))
}

func (a controllerAdapter) UpdateProgress(progress float64) {
	a.controller.UpdateProgress(progress)
}

func (a controllerAdapter) UpdateLog(msg string, overwrite bool) {
	a.controller.UpdateLog(msg, overwrite)
}

func (a controllerAdapter) ClearLog() {
	a.controller.ClearLog()
}

// --- Conversion helpers ---

func toInternalBotInfo(i BotInfo) model.BotInfo {
	return model.BotInfo{
		Name:        i.Name,
		Title:       i.Title,
		Description: i.Description,
	}
}

func fromInternalBotInfo(i model.BotInfo) BotInfo {
	return BotInfo{
		Name:        i.Name,
		Title:       i.Title,
		Description: i.Description,
	}
}

func fromInternalBotInfoList(is []model.BotInfo) []BotInfo {
	result := make([]BotInfo, len(is))
	for i, info := range is {
		result[i] = fromInternalBotInfo(info)
	}
	return result
}

func toInternalSchema(s Schema) options.Schema {
	opts := make([]options.Option, len(s.Options))
	for i, o := range s.Options {
		opts[i] = options.Option{
			Key:         o.Key,
			Label:       o.Label,
			Type:        options.OptionType(o.Type),
			Min:         o.Min,
			Max:         o.Max,
			Choices:     o.Choices,
			Placeholder: o.Placeholder,
		}
	}
	return options.Schema{Title: s.Title, Options: opts}
}

func fromInternalSchema(s options.Schema) Schema {
	opts := make([]Option, len(s.Options))
	for i, o := range s.Options {
		opts[i] = Option{
			Key:         o.Key,
			Label:       o.Label,
			Type:        OptionType(o.Type),
			Min:         o.Min,
			Max:         o.Max,
			Choices:     o.Choices,
			Placeholder: o.Placeholder,
		}
	}
	return Schema{Title: s.Title, Options: opts}
}

func toInternalRect(r Rect) model.Rect {
	return model.Rect{
		Start: model.Point{X: r.Start.X, Y: r.Start.Y},
		End:   model.Point{X: r.End.X, Y: r.End.Y},
	}
}

func fromInternalRun(r model.Run) Run {
	run := Run{
		ID:        r.ID,
		Bot:       r.Bot,
		StartedAt: r.StartedAt,
		Progress:  r.Progress,
	}
	if r.StoppedAt != nil {
		t := *r.StoppedAt
		run.StoppedAt = &t
	}
	return run
}

func fromInternalRunList(rs []model.Run) []Run {
	result := make([]Run, len(rs))
	for i, r := range rs {
		result[i] = fromInternalRun(r)
	}
	return result
}

// --- Error mapping ---

// mapError translates internal sentinel errors into the public ones while
// keeping the original message and wrap chain intact.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid):
		return joinErrors(err, ErrNotValid)
	default:
		return err
	}
}

func isInternalError(err, target error) bool {
	for {
		if err == target {
			return true
		}
		unwrapped := unwrapSingle(err)
		if unwrapped == nil {
			return false
		}
		err = unwrapped
	}
}

func unwrapSingle(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel
}

func (e *mappedError) Unwrap() error { return e.original }
