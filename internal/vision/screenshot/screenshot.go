package screenshot

import (
	"context"
	"fmt"
	"image"

	kbinani "github.com/kbinani/screenshot"

	"github.com/spacebear01/osbc/internal/model"
)

// Grabber captures screen regions through the OS display APIs.
type Grabber struct{}

// NewGrabber creates a new screen grabber.
func NewGrabber() *Grabber {
	return &Grabber{}
}

// Grab implements vision.Grabber.
func (g *Grabber) Grab(ctx context.Context, rect model.Rect) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := kbinani.CaptureRect(rect.Image())
	if err != nil {
		return nil, fmt.Errorf("could not capture %dx%d region: %w", rect.Width(), rect.Height(), err)
	}

	return img, nil
}

// NumDisplays returns the number of active displays.
func NumDisplays() int {
	return kbinani.NumActiveDisplays()
}

// DisplayRect returns the bounds of the given display.
func DisplayRect(display int) model.Rect {
	b := kbinani.GetDisplayBounds(display)
	return model.NewRect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}
