package vision_test

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/vision"
	"github.com/spacebear01/osbc/internal/vision/visionmock"
)

func testImage(w, h int) image.Image {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func writeTemplate(t *testing.T, w, h int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "template.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testImage(w, h)))

	return path
}

func fragments(words ...string) []model.TextFragment {
	fs := make([]model.TextFragment, 0, len(words))
	for _, w := range words {
		fs = append(fs, model.TextFragment{Text: w, Confidence: 0.9})
	}
	return fs
}

func newService(t *testing.T, cfg vision.ServiceConfig) *vision.Service {
	t.Helper()
	svc, err := vision.NewService(cfg)
	require.NoError(t, err)
	return svc
}

func TestNewServiceValidation(t *testing.T) {
	tests := map[string]struct {
		config func() vision.ServiceConfig
		expErr bool
	}{
		"A config with all capabilities should be valid": {
			config: func() vision.ServiceConfig {
				return vision.ServiceConfig{
					Grabber:    &visionmock.MockGrabber{},
					Matcher:    &visionmock.MockMatcher{},
					TextReader: &visionmock.MockTextReader{},
				}
			},
			expErr: false,
		},

		"A config without a grabber should fail": {
			config: func() vision.ServiceConfig {
				return vision.ServiceConfig{
					Matcher:    &visionmock.MockMatcher{},
					TextReader: &visionmock.MockTextReader{},
				}
			},
			expErr: true,
		},

		"A config without a matcher should fail": {
			config: func() vision.ServiceConfig {
				return vision.ServiceConfig{
					Grabber:    &visionmock.MockGrabber{},
					TextReader: &visionmock.MockTextReader{},
				}
			},
			expErr: true,
		},

		"A config without a text reader should fail": {
			config: func() vision.ServiceConfig {
				return vision.ServiceConfig{
					Grabber: &visionmock.MockGrabber{},
					Matcher: &visionmock.MockMatcher{},
				}
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := vision.NewService(test.config())

			if test.expErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestServiceFindTemplate(t *testing.T) {
	rect := model.NewRect(100, 200, 400, 500)

	tests := map[string]struct {
		mock       func(g *visionmock.MockGrabber, m *visionmock.MockMatcher)
		confidence float64
		expPoint   *model.Point
		expErr     bool
	}{
		"A template on screen should return the screen center of the match": {
			mock: func(g *visionmock.MockGrabber, m *visionmock.MockMatcher) {
				g.On("Grab", mock.Anything, rect).Once().Return(testImage(300, 300), nil)
				m.On("Match", mock.Anything, mock.Anything, mock.Anything, 0.9).Once().Return(image.Pt(30, 40), true, nil)
			},
			confidence: 0.9,
			// Region offset + match top-left + half the 20x10 template.
			expPoint: &model.Point{X: 140, Y: 245},
		},

		"A template that is not on screen should return nil without error": {
			mock: func(g *visionmock.MockGrabber, m *visionmock.MockMatcher) {
				g.On("Grab", mock.Anything, rect).Once().Return(testImage(300, 300), nil)
				m.On("Match", mock.Anything, mock.Anything, mock.Anything, 0.9).Once().Return(image.Point{}, false, nil)
			},
			confidence: 0.9,
			expPoint:   nil,
		},

		"A zero confidence should fall back to the default": {
			mock: func(g *visionmock.MockGrabber, m *visionmock.MockMatcher) {
				g.On("Grab", mock.Anything, rect).Once().Return(testImage(300, 300), nil)
				m.On("Match", mock.Anything, mock.Anything, mock.Anything, vision.DefaultConfidence).Once().Return(image.Pt(0, 0), true, nil)
			},
			confidence: 0,
			expPoint:   &model.Point{X: 110, Y: 205},
		},

		"A capture failure should fail": {
			mock: func(g *visionmock.MockGrabber, m *visionmock.MockMatcher) {
				g.On("Grab", mock.Anything, rect).Once().Return(nil, assert.AnError)
			},
			confidence: 0.9,
			expErr:     true,
		},

		"A matcher failure should fail": {
			mock: func(g *visionmock.MockGrabber, m *visionmock.MockMatcher) {
				g.On("Grab", mock.Anything, rect).Once().Return(testImage(300, 300), nil)
				m.On("Match", mock.Anything, mock.Anything, mock.Anything, 0.9).Once().Return(image.Point{}, false, assert.AnError)
			},
			confidence: 0.9,
			expErr:     true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			grabber := &visionmock.MockGrabber{}
			matcher := &visionmock.MockMatcher{}
			reader := &visionmock.MockTextReader{}
			test.mock(grabber, matcher)

			svc := newService(t, vision.ServiceConfig{Grabber: grabber, Matcher: matcher, TextReader: reader})
			template := writeTemplate(t, 20, 10)

			point, err := svc.FindTemplate(context.Background(), rect, template, test.confidence)

			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
				assert.Equal(test.expPoint, point)
			}

			grabber.AssertExpectations(t)
			matcher.AssertExpectations(t)
		})
	}
}

func TestServiceFindTemplateMissingFile(t *testing.T) {
	grabber := &visionmock.MockGrabber{}
	matcher := &visionmock.MockMatcher{}
	reader := &visionmock.MockTextReader{}

	svc := newService(t, vision.ServiceConfig{Grabber: grabber, Matcher: matcher, TextReader: reader})

	_, err := svc.FindTemplate(context.Background(), model.NewRect(0, 0, 100, 100), "/does/not/exist.png", 0.8)
	assert.Error(t, err)

	// The screen must not be touched when the template cannot be loaded.
	grabber.AssertExpectations(t)
}

func TestServiceTextInRect(t *testing.T) {
	rect := model.NewRect(0, 0, 100, 50)

	tests := map[string]struct {
		fragments []model.TextFragment
		expText   string
	}{
		"Recognized words should be joined with single spaces": {
			fragments: fragments("Chop", "some", "trees"),
			expText:   "Chop some trees",
		},

		"Empty fragments should be skipped": {
			fragments: append(fragments("Chop"), model.TextFragment{Text: ""}, fragments("trees")[0]),
			expText:   "Chop trees",
		},

		"No recognized words should yield an empty string": {
			fragments: nil,
			expText:   "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			grabber := &visionmock.MockGrabber{}
			reader := &visionmock.MockTextReader{}
			grabber.On("Grab", mock.Anything, rect).Once().Return(testImage(100, 50), nil)
			reader.On("ReadText", mock.Anything, mock.Anything).Once().Return(test.fragments, nil)

			svc := newService(t, vision.ServiceConfig{
				Grabber:    grabber,
				Matcher:    &visionmock.MockMatcher{},
				TextReader: reader,
			})

			text, err := svc.TextInRect(context.Background(), rect, false)

			require.NoError(t, err)
			assert.Equal(t, test.expText, text)

			grabber.AssertExpectations(t)
			reader.AssertExpectations(t)
		})
	}
}

func TestServiceTextInRectLowRes(t *testing.T) {
	rect := model.NewRect(0, 0, 10, 5)

	grabber := &visionmock.MockGrabber{}
	reader := &visionmock.MockTextReader{}
	grabber.On("Grab", mock.Anything, rect).Once().Return(testImage(10, 5), nil)

	// The reader must receive the x6 upscaled image, not the raw capture.
	reader.On("ReadText", mock.Anything, mock.MatchedBy(func(img image.Image) bool {
		return img.Bounds().Dx() == 60
	})).Once().Return(fragments("26"), nil)

	svc := newService(t, vision.ServiceConfig{
		Grabber:    grabber,
		Matcher:    &visionmock.MockMatcher{},
		TextReader: reader,
	})

	text, err := svc.TextInRect(context.Background(), rect, true)

	require.NoError(t, err)
	assert.Equal(t, "26", text)

	grabber.AssertExpectations(t)
	reader.AssertExpectations(t)
}

func TestServiceSearchText(t *testing.T) {
	rect := model.NewRect(0, 0, 100, 50)

	tests := map[string]struct {
		fragments []model.TextFragment
		expected  []string
		blacklist []string
		expMatch  model.TextMatch
	}{
		"An expected word should report found": {
			fragments: fragments("Chopping", "an", "oak", "tree"),
			expected:  []string{"oak"},
			expMatch:  model.TextMatchFound,
		},

		"Matching should ignore case": {
			fragments: fragments("CHOPPING", "AN", "OAK"),
			expected:  []string{"Oak"},
			expMatch:  model.TextMatchFound,
		},

		"A blacklisted word should win over an expected one": {
			fragments: fragments("You", "can't", "reach", "that", "oak"),
			expected:  []string{"oak"},
			blacklist: []string{"can't reach"},
			expMatch:  model.TextMatchBlacklisted,
		},

		"No matching word should report unknown": {
			fragments: fragments("Mining", "some", "ore"),
			expected:  []string{"oak"},
			blacklist: []string{"can't reach"},
			expMatch:  model.TextMatchUnknown,
		},

		"No text at all should report unknown": {
			fragments: nil,
			expected:  []string{"oak"},
			blacklist: []string{"can't reach"},
			expMatch:  model.TextMatchUnknown,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			grabber := &visionmock.MockGrabber{}
			reader := &visionmock.MockTextReader{}
			grabber.On("Grab", mock.Anything, rect).Once().Return(testImage(100, 50), nil)
			reader.On("ReadText", mock.Anything, mock.Anything).Once().Return(test.fragments, nil)

			svc := newService(t, vision.ServiceConfig{
				Grabber:    grabber,
				Matcher:    &visionmock.MockMatcher{},
				TextReader: reader,
			})

			match, err := svc.SearchText(context.Background(), rect, test.expected, test.blacklist)

			require.NoError(t, err)
			assert.Equal(t, test.expMatch, match)
		})
	}
}

func TestServiceNumbersInRect(t *testing.T) {
	rect := model.NewRect(0, 0, 100, 50)

	tests := map[string]struct {
		fragments  []model.TextFragment
		expNumbers []int
	}{
		"Numbers should come back distinct and in order of appearance": {
			fragments:  fragments("42", "coins,", "42", "gems,", "level", "7"),
			expNumbers: []int{42, 7},
		},

		"Numbers embedded in words should be extracted": {
			fragments:  fragments("x128melons"),
			expNumbers: []int{128},
		},

		"Leading zeros should collapse into the same number": {
			fragments:  fragments("007", "7"),
			expNumbers: []int{7},
		},

		"No numbers should yield nil": {
			fragments:  fragments("no", "digits", "here"),
			expNumbers: nil,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			grabber := &visionmock.MockGrabber{}
			reader := &visionmock.MockTextReader{}
			grabber.On("Grab", mock.Anything, rect).Once().Return(testImage(100, 50), nil)
			reader.On("ReadText", mock.Anything, mock.Anything).Once().Return(test.fragments, nil)

			svc := newService(t, vision.ServiceConfig{
				Grabber:    grabber,
				Matcher:    &visionmock.MockMatcher{},
				TextReader: reader,
			})

			numbers, err := svc.NumbersInRect(context.Background(), rect, false)

			require.NoError(t, err)
			assert.Equal(t, test.expNumbers, numbers)
		})
	}
}

func TestServiceCaptureScreenInvalidRect(t *testing.T) {
	grabber := &visionmock.MockGrabber{}

	svc := newService(t, vision.ServiceConfig{
		Grabber:    grabber,
		Matcher:    &visionmock.MockMatcher{},
		TextReader: &visionmock.MockTextReader{},
	})

	_, err := svc.CaptureScreen(context.Background(), model.NewRect(10, 10, 10, 50))

	assert.ErrorIs(t, err, model.ErrNotValid)
	grabber.AssertExpectations(t)
}

func TestServiceCaptureScreenSavesScreenshots(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "screenshots")

	grabber := &visionmock.MockGrabber{}
	grabber.On("Grab", mock.Anything, mock.Anything).Once().Return(testImage(20, 20), nil)

	svc := newService(t, vision.ServiceConfig{
		Grabber:        grabber,
		Matcher:        &visionmock.MockMatcher{},
		TextReader:     &visionmock.MockTextReader{},
		ScreenshotsDir: dir,
	})

	_, err := svc.CaptureScreen(context.Background(), model.NewRect(0, 0, 20, 20))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))
}
