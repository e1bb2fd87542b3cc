package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/spacebear01/osbc/internal/model"
)

// JSONPrinter prints bot information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// botItem represents a bot in the list output.
type botItem struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// runItem represents a run in the history output.
type runItem struct {
	ID        string     `json:"id"`
	Bot       string     `json:"bot"`
	StartedAt time.Time  `json:"started_at"`
	StoppedAt *time.Time `json:"stopped_at"`
	Progress  float64    `json:"progress"`
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message"`
}

// PrintBotList prints the registered bots in JSON format.
func (j *JSONPrinter) PrintBotList(bots []model.BotInfo) error {
	items := make([]botItem, len(bots))
	for i, b := range bots {
		items[i] = botItem{
			Name:        b.Name,
			Title:       b.Title,
			Description: b.Description,
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintRunList prints runs in JSON format.
func (j *JSONPrinter) PrintRunList(runs []model.Run) error {
	items := make([]runItem, len(runs))
	for i, r := range runs {
		items[i] = runItem{
			ID:        r.ID,
			Bot:       r.Bot,
			StartedAt: r.StartedAt.UTC(),
			Progress:  r.Progress,
		}
		if r.StoppedAt != nil {
			utcTime := r.StoppedAt.UTC()
			items[i].StoppedAt = &utcTime
		}
	}

	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	output := messageOutput{Message: msg}
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
