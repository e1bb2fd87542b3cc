// Package vision locates templates and reads text on the screen.
package vision

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Template files may be JPEG.
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/spacebear01/osbc/internal/log"
	"github.com/spacebear01/osbc/internal/model"
)

// Grabber captures a region of the screen.
type Grabber interface {
	Grab(ctx context.Context, rect model.Rect) (image.Image, error)
}

// Matcher locates a template image inside a larger image.
type Matcher interface {
	// Match returns the top-left corner of the best match of needle inside
	// haystack, and whether the match reached the given confidence.
	Match(ctx context.Context, haystack, needle image.Image, confidence float64) (image.Point, bool, error)
}

// TextReader runs OCR over an image.
type TextReader interface {
	ReadText(ctx context.Context, img image.Image) ([]model.TextFragment, error)
}

// DefaultConfidence is the template match confidence used when none is given.
const DefaultConfidence = 0.8

// Low resolution text enhancement parameters.
const (
	lowResScale     = 6
	lowResThreshold = 120
)

var numberPattern = regexp.MustCompile(`\d+`)

// ServiceConfig is the configuration of Service.
type ServiceConfig struct {
	Grabber    Grabber
	Matcher    Matcher
	TextReader TextReader
	Logger     log.Logger
	// ScreenshotsDir, when set, receives a PNG copy of every captured
	// region.
	ScreenshotsDir string
}

func (c *ServiceConfig) defaults() error {
	if c.Grabber == nil {
		return fmt.Errorf("grabber is required")
	}

	if c.Matcher == nil {
		return fmt.Errorf("matcher is required")
	}

	if c.TextReader == nil {
		return fmt.Errorf("text reader is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "vision.Service"})

	return nil
}

// Service exposes the screen reading operations bots build on. Absence of a
// template or of text is never an error, callers poll in their own loops.
type Service struct {
	grabber        Grabber
	matcher        Matcher
	textReader     TextReader
	logger         log.Logger
	screenshotsDir string
}

// NewService returns a vision Service.
func NewService(config ServiceConfig) (*Service, error) {
	if err := config.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		grabber:        config.Grabber,
		matcher:        config.Matcher,
		textReader:     config.TextReader,
		logger:         config.Logger,
		screenshotsDir: config.ScreenshotsDir,
	}, nil
}

// CaptureScreen captures the given screen region.
func (s *Service) CaptureScreen(ctx context.Context, rect model.Rect) (image.Image, error) {
	if err := rect.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rect: %w", err)
	}

	img, err := s.grabber.Grab(ctx, rect)
	if err != nil {
		return nil, fmt.Errorf("could not capture screen: %w", err)
	}

	if s.screenshotsDir != "" {
		if err := s.saveScreenshot(img); err != nil {
			s.logger.Warningf("Could not save screenshot: %s", err)
		}
	}

	return img, nil
}

// FindTemplate searches the given screen region for the template image at
// templatePath. It returns the absolute screen coordinates of the match
// center, or nil when the template is not on screen. A confidence of zero or
// less selects DefaultConfidence.
func (s *Service) FindTemplate(ctx context.Context, rect model.Rect, templatePath string, confidence float64) (*model.Point, error) {
	if confidence <= 0 {
		confidence = DefaultConfidence
	}

	needle, err := loadImage(templatePath)
	if err != nil {
		return nil, fmt.Errorf("could not load template: %w", err)
	}

	haystack, err := s.CaptureScreen(ctx, rect)
	if err != nil {
		return nil, err
	}

	pt, found, err := s.matcher.Match(ctx, haystack, needle, confidence)
	if err != nil {
		return nil, fmt.Errorf("could not match template: %w", err)
	}
	if !found {
		return nil, nil
	}

	bounds := needle.Bounds()
	center := model.Point{
		X: rect.Start.X + pt.X + bounds.Dx()/2,
		Y: rect.Start.Y + pt.Y + bounds.Dy()/2,
	}

	s.logger.Debugf("Template %s found at %d,%d", filepath.Base(templatePath), center.X, center.Y)

	return &center, nil
}

// TextInRect reads the text in the given screen region, joined into a single
// space-separated string. lowRes enhances small captures before OCR: x6
// upscale, grayscale and a binary threshold.
func (s *Service) TextInRect(ctx context.Context, rect model.Rect, lowRes bool) (string, error) {
	img, err := s.CaptureScreen(ctx, rect)
	if err != nil {
		return "", err
	}

	if lowRes {
		img = enhanceLowRes(img)
	}

	fragments, err := s.textReader.ReadText(ctx, img)
	if err != nil {
		return "", fmt.Errorf("could not read text: %w", err)
	}

	words := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Text == "" {
			continue
		}
		words = append(words, f.Text)
	}

	return strings.Join(words, " "), nil
}

// SearchText reads the given screen region and classifies it: Blacklisted
// when any blacklisted word appears, otherwise Found when any expected word
// appears, otherwise Unknown. Matching is a case-insensitive containment
// check.
func (s *Service) SearchText(ctx context.Context, rect model.Rect, expected, blacklist []string) (model.TextMatch, error) {
	text, err := s.TextInRect(ctx, rect, false)
	if err != nil {
		return model.TextMatchUnknown, err
	}
	if text == "" {
		return model.TextMatchUnknown, nil
	}

	lower := strings.ToLower(text)
	for _, w := range blacklist {
		if strings.Contains(lower, strings.ToLower(w)) {
			return model.TextMatchBlacklisted, nil
		}
	}
	for _, w := range expected {
		if strings.Contains(lower, strings.ToLower(w)) {
			return model.TextMatchFound, nil
		}
	}

	return model.TextMatchUnknown, nil
}

// NumbersInRect returns the distinct integers that appear in the given
// screen region, in first-seen order. Returns nil when the region contains
// none.
func (s *Service) NumbersInRect(ctx context.Context, rect model.Rect, lowRes bool) ([]int, error) {
	text, err := s.TextInRect(ctx, rect, lowRes)
	if err != nil {
		return nil, err
	}

	matches := numberPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil, nil
	}

	seen := map[int]struct{}{}
	var numbers []int
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			// Longer than an int, not a game value.
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		numbers = append(numbers, n)
	}

	return numbers, nil
}

func (s *Service) saveScreenshot(img image.Image) error {
	if err := os.MkdirAll(s.screenshotsDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(s.screenshotsDir, fmt.Sprintf("%d.png", time.Now().UnixNano()))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}

// enhanceLowRes prepares small captures for OCR the same way every time:
// upscale x6 with Lanczos, grayscale, then binarize at a fixed intensity.
func enhanceLowRes(img image.Image) image.Image {
	out := imaging.Resize(img, img.Bounds().Dx()*lowResScale, 0, imaging.Lanczos)
	out = imaging.Grayscale(out)
	return imaging.AdjustFunc(out, func(c color.NRGBA) color.NRGBA {
		if c.R > lowResThreshold {
			return color.NRGBA{R: 255, G: 255, B: 255, A: c.A}
		}
		return color.NRGBA{R: 0, G: 0, B: 0, A: c.A}
	})
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
