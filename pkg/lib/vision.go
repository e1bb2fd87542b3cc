package lib

import (
	"context"
	"image"

	"github.com/spacebear01/osbc/internal/conventions"
	"github.com/spacebear01/osbc/internal/input"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/vision"
	"github.com/spacebear01/osbc/internal/vision/opencv"
	"github.com/spacebear01/osbc/internal/vision/screenshot"
	"github.com/spacebear01/osbc/internal/vision/tesseract"
)

// VisionOpts configures the vision toolkit.
//
// Pass nil to [Client.Vision] for defaults (no screenshot copies, English
// OCR).
type VisionOpts struct {
	// SaveScreenshots stores a PNG copy of every captured region under
	// <data dir>/screenshots. Useful while tuning template images and
	// search regions.
	SaveScreenshots bool
	// Language is the Tesseract OCR language model. Default: "eng".
	Language string
}

// Vision exposes the screen reading operations bots build on: capturing
// regions, locating template images and recognizing text.
//
// Absence of a template or of text is never an error, callers poll in their
// own loops. A Vision is safe for concurrent use except for OCR operations,
// which are serialized internally.
type Vision struct {
	svc *vision.Service
}

// Vision creates a vision toolkit for screen captures, template matching and
// OCR. Pass nil opts for defaults.
func (c *Client) Vision(opts *VisionOpts) (*Vision, error) {
	if opts == nil {
		opts = &VisionOpts{}
	}

	svc, err := c.newVisionService(opts)
	if err != nil {
		return nil, mapError(err)
	}

	return &Vision{svc: svc}, nil
}

// CaptureScreen captures the given screen region.
func (v *Vision) CaptureScreen(ctx context.Context, rect Rect) (image.Image, error) {
	img, err := v.svc.CaptureScreen(ctx, toInternalRect(rect))
	if err != nil {
		return nil, mapError(err)
	}
	return img, nil
}

// FindTemplate searches the given screen region for the template image at
// templatePath and returns the center of the best match in absolute screen
// coordinates. It returns nil without error when no match reaches the
// confidence threshold. A confidence of 0 uses the default (0.8).
func (v *Vision) FindTemplate(ctx context.Context, rect Rect, templatePath string, confidence float64) (*Point, error) {
	pt, err := v.svc.FindTemplate(ctx, toInternalRect(rect), templatePath, confidence)
	if err != nil {
		return nil, mapError(err)
	}
	if pt == nil {
		return nil, nil
	}
	result := Point{X: pt.X, Y: pt.Y}
	return &result, nil
}

// TextInRect recognizes the text in the given screen region. Set lowRes when
// the region holds small or low-contrast text, the region is upscaled and
// thresholded before recognition.
func (v *Vision) TextInRect(ctx context.Context, rect Rect, lowRes bool) (string, error) {
	text, err := v.svc.TextInRect(ctx, toInternalRect(rect), lowRes)
	if err != nil {
		return "", mapError(err)
	}
	return text, nil
}

// SearchText recognizes the text in the given screen region and reports
// whether it contains any of the expected or blacklisted words.
func (v *Vision) SearchText(ctx context.Context, rect Rect, expected, blacklist []string) (TextMatch, error) {
	match, err := v.svc.SearchText(ctx, toInternalRect(rect), expected, blacklist)
	if err != nil {
		return TextMatchUnknown, mapError(err)
	}
	return TextMatch(match), nil
}

// NumbersInRect recognizes the text in the given screen region and returns
// every integer found in it, in reading order.
func (v *Vision) NumbersInRect(ctx context.Context, rect Rect, lowRes bool) ([]int, error) {
	numbers, err := v.svc.NumbersInRect(ctx, toInternalRect(rect), lowRes)
	if err != nil {
		return nil, mapError(err)
	}
	return numbers, nil
}

// Mouse creates a mouse over the real system pointer. Moves are smoothed so
// they look like a hand, not a teleport.
func (c *Client) Mouse() (Mouse, error) {
	m, err := input.NewSystemMouse(input.SystemMouseConfig{Logger: c.logger})
	if err != nil {
		return nil, mapError(err)
	}
	return systemMouse{mouse: m}, nil
}

// newVisionService assembles the vision service from the real screen, OpenCV
// and Tesseract backends.
func (c *Client) newVisionService(opts *VisionOpts) (*vision.Service, error) {
	reader, err := tesseract.NewReader(tesseract.ReaderConfig{Language: opts.Language})
	if err != nil {
		return nil, err
	}

	screenshotsDir := ""
	if opts.SaveScreenshots {
		screenshotsDir = conventions.ScreenshotsPath(c.dataDir)
	}

	return vision.NewService(vision.ServiceConfig{
		Grabber:        screenshot.NewGrabber(),
		Matcher:        opencv.NewMatcher(),
		TextReader:     reader,
		Logger:         c.logger,
		ScreenshotsDir: screenshotsDir,
	})
}

// systemMouse bridges the internal mouse into the public interface.
type systemMouse struct {
	mouse input.Mouse
}

func (s systemMouse) MoveTo(p Point) {
	s.mouse.MoveTo(model.Point{X: p.X, Y: p.Y})
}

func (s systemMouse) MoveRel(dx, dy int) {
	s.mouse.MoveRel(dx, dy)
}

func (s systemMouse) Click() {
	s.mouse.Click()
}

func (s systemMouse) RightClick() {
	s.mouse.RightClick()
}

func (s systemMouse) Position() Point {
	p := s.mouse.Position()
	return Point{X: p.X, Y: p.Y}
}
