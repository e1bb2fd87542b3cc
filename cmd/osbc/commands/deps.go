package commands

import (
	"fmt"

	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/conventions"
	"github.com/spacebear01/osbc/internal/input"
	"github.com/spacebear01/osbc/internal/vision"
	"github.com/spacebear01/osbc/internal/vision/opencv"
	"github.com/spacebear01/osbc/internal/vision/screenshot"
	"github.com/spacebear01/osbc/internal/vision/tesseract"
)

// newBotDeps builds the shared collaborators handed to bot scripts.
func newBotDeps(rootCmd *RootCommand, saveScreenshots bool) (bots.Deps, error) {
	logger := rootCmd.Logger

	reader, err := tesseract.NewReader(tesseract.ReaderConfig{})
	if err != nil {
		return bots.Deps{}, fmt.Errorf("could not create OCR reader: %w", err)
	}

	screenshotsDir := ""
	if saveScreenshots {
		screenshotsDir = conventions.ScreenshotsPath(rootCmd.DataDir)
	}

	visionSvc, err := vision.NewService(vision.ServiceConfig{
		Grabber:        screenshot.NewGrabber(),
		Matcher:        opencv.NewMatcher(),
		TextReader:     reader,
		Logger:         logger,
		ScreenshotsDir: screenshotsDir,
	})
	if err != nil {
		return bots.Deps{}, fmt.Errorf("could not create vision service: %w", err)
	}

	mouse, err := input.NewSystemMouse(input.SystemMouseConfig{Logger: logger})
	if err != nil {
		return bots.Deps{}, fmt.Errorf("could not create system mouse: %w", err)
	}

	return bots.Deps{Vision: visionSvc, Mouse: mouse, Logger: logger}, nil
}
