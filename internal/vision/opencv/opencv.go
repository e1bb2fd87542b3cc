package opencv

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/spacebear01/osbc/internal/model"
)

// Matcher locates templates with OpenCV normalized cross-correlation.
type Matcher struct{}

// NewMatcher creates a new OpenCV template matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match implements vision.Matcher.
func (m *Matcher) Match(ctx context.Context, haystack, needle image.Image, confidence float64) (image.Point, bool, error) {
	if err := ctx.Err(); err != nil {
		return image.Point{}, false, err
	}

	hb, nb := haystack.Bounds(), needle.Bounds()
	if nb.Dx() > hb.Dx() || nb.Dy() > hb.Dy() {
		return image.Point{}, false, fmt.Errorf("template is larger than the searched region: %w", model.ErrNotValid)
	}

	hay, err := gocv.ImageToMatRGB(haystack)
	if err != nil {
		return image.Point{}, false, fmt.Errorf("could not convert image: %w", err)
	}
	defer hay.Close()

	tpl, err := gocv.ImageToMatRGB(needle)
	if err != nil {
		return image.Point{}, false, fmt.Errorf("could not convert template: %w", err)
	}
	defer tpl.Close()

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	gocv.MatchTemplate(hay, tpl, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, maxLoc := gocv.MinMaxLoc(result)
	if float64(maxVal) < confidence {
		return image.Point{}, false, nil
	}

	return maxLoc, true, nil
}
