package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spacebear01/osbc/internal/model"
)

// TablePrinter prints bot information in table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintBotList prints the registered bots in table format.
func (t *TablePrinter) PrintBotList(bots []model.BotInfo) error {
	w := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	// Print header
	fmt.Fprintln(w, "NAME\tTITLE\tDESCRIPTION")

	// Print rows
	for _, b := range bots {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.Name, b.Title, b.Description)
	}

	return nil
}

// PrintRunList prints runs in table format.
func (t *TablePrinter) PrintRunList(runs []model.Run) error {
	w := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer w.Flush()

	// Print header
	fmt.Fprintln(w, "BOT\tSTARTED\tDURATION\tPROGRESS")

	// Print rows
	for _, r := range runs {
		started := TimeAgo(r.StartedAt)
		duration := "running"
		if r.StoppedAt != nil {
			duration = FormatDuration(r.StoppedAt.Sub(r.StartedAt))
		}
		progress := fmt.Sprintf("%d%%", int(r.Progress*100))
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Bot, started, duration, progress)
	}

	return nil
}

// PrintMessage prints a simple message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
