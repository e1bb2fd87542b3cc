package commands

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/storage/sqlite"
	"github.com/spacebear01/osbc/internal/vision/screenshot"
	"github.com/spacebear01/osbc/internal/vision/tesseract"
)

type DoctorCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewDoctorCommand returns the doctor command.
func NewDoctorCommand(rootCmd *RootCommand, app *kingpin.Application) *DoctorCommand {
	c := &DoctorCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("doctor", "Run preflight checks for the bot runtime.")

	return c
}

func (c DoctorCommand) Name() string { return c.Cmd.FullCommand() }

func (c DoctorCommand) Run(ctx context.Context) error {
	out := c.rootCmd.Stdout

	results := []model.CheckResult{
		c.checkDisplay(),
		c.checkDataDir(),
		c.checkDatabase(ctx),
		c.checkOCR(ctx),
	}

	fmt.Fprintln(out, "Checking bot runtime...")
	for _, r := range results {
		fmt.Fprintf(out, "  %s %-20s %s\n", getStatusIcon(r.Status), r.ID, r.Message)
	}

	_, warnings, errs := model.CountByStatus(results)

	// Summary
	fmt.Fprintln(out)
	if errs == 0 && warnings == 0 {
		fmt.Fprintln(out, "All checks passed!")
	} else {
		fmt.Fprintf(out, "%d warning(s), %d error(s)\n", warnings, errs)
	}

	if errs > 0 {
		return fmt.Errorf("preflight checks failed with %d error(s)", errs)
	}

	return nil
}

func (c DoctorCommand) checkDisplay() model.CheckResult {
	n := screenshot.NumDisplays()
	if n == 0 {
		return model.CheckResult{
			ID:      "display_available",
			Message: "No active display detected.",
			Status:  model.CheckStatusError,
		}
	}

	return model.CheckResult{
		ID:      "display_available",
		Message: fmt.Sprintf("%d display(s) detected.", n),
		Status:  model.CheckStatusOK,
	}
}

func (c DoctorCommand) checkDataDir() model.CheckResult {
	dir := c.rootCmd.DataDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return model.CheckResult{
			ID:      "data_dir_writable",
			Message: fmt.Sprintf("Could not create %s: %v.", dir, err),
			Status:  model.CheckStatusError,
		}
	}

	probe := filepath.Join(dir, ".doctor")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return model.CheckResult{
			ID:      "data_dir_writable",
			Message: fmt.Sprintf("Could not write to %s: %v.", dir, err),
			Status:  model.CheckStatusError,
		}
	}
	os.Remove(probe)

	return model.CheckResult{
		ID:      "data_dir_writable",
		Message: fmt.Sprintf("Data directory %s is writable.", dir),
		Status:  model.CheckStatusOK,
	}
}

func (c DoctorCommand) checkDatabase(ctx context.Context) model.CheckResult {
	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.ResolveDBPath(),
		Logger: c.rootCmd.Logger,
	})
	if err != nil {
		return model.CheckResult{
			ID:      "database_ready",
			Message: fmt.Sprintf("Could not open database: %v.", err),
			Status:  model.CheckStatusError,
		}
	}
	defer repo.Close()

	if _, err := repo.ListRuns(ctx); err != nil {
		return model.CheckResult{
			ID:      "database_ready",
			Message: fmt.Sprintf("Could not query database: %v.", err),
			Status:  model.CheckStatusError,
		}
	}

	return model.CheckResult{
		ID:      "database_ready",
		Message: fmt.Sprintf("Database at %s is ready.", c.rootCmd.ResolveDBPath()),
		Status:  model.CheckStatusOK,
	}
}

func (c DoctorCommand) checkOCR(ctx context.Context) model.CheckResult {
	reader, err := tesseract.NewReader(tesseract.ReaderConfig{})
	if err != nil {
		return model.CheckResult{
			ID:      "ocr_ready",
			Message: fmt.Sprintf("Could not create OCR reader: %v.", err),
			Status:  model.CheckStatusError,
		}
	}

	if _, err := reader.ReadText(ctx, image.NewRGBA(image.Rect(0, 0, 16, 16))); err != nil {
		return model.CheckResult{
			ID:      "ocr_ready",
			Message: fmt.Sprintf("OCR engine is not usable: %v.", err),
			Status:  model.CheckStatusError,
		}
	}

	return model.CheckResult{
		ID:      "ocr_ready",
		Message: "OCR engine is ready.",
		Status:  model.CheckStatusOK,
	}
}

func getStatusIcon(status model.CheckStatus) string {
	switch status {
	case model.CheckStatusOK:
		return "OK"
	case model.CheckStatusWarning:
		return "!!"
	case model.CheckStatusError:
		return "XX"
	default:
		return "??"
	}
}
