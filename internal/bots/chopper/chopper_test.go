package chopper_test

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacebear01/osbc/internal/bots"
	"github.com/spacebear01/osbc/internal/bots/chopper"
	"github.com/spacebear01/osbc/internal/input/inputmock"
	"github.com/spacebear01/osbc/internal/model"
	"github.com/spacebear01/osbc/internal/options"
	"github.com/spacebear01/osbc/internal/vision"
	"github.com/spacebear01/osbc/internal/vision/visionmock"
)

// fakeRuntime lets a main loop run for a bounded number of status checks.
type fakeRuntime struct {
	checksLeft int
	logs       []string
	progress   []float64
}

func (f *fakeRuntime) CheckStatus() bool {
	if f.checksLeft <= 0 {
		return false
	}
	f.checksLeft--
	return true
}

func (f *fakeRuntime) UpdateProgress(p float64) { f.progress = append(f.progress, p) }
func (f *fakeRuntime) Log(msg string)           { f.logs = append(f.logs, msg) }
func (f *fakeRuntime) Logf(format string, args ...interface{}) {
	f.Log(fmt.Sprintf(format, args...))
}

func (f *fakeRuntime) hasLog(substr string) bool {
	for _, l := range f.logs {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func testImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	return img
}

func writeTemplate(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tree.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, testImage(20, 10)))

	return path
}

func fragments(texts ...string) []model.TextFragment {
	result := make([]model.TextFragment, 0, len(texts))
	for _, txt := range texts {
		result = append(result, model.TextFragment{Text: txt, Confidence: 0.9})
	}
	return result
}

func newBot(t *testing.T, grabber *visionmock.MockGrabber, matcher *visionmock.MockMatcher, reader *visionmock.MockTextReader, mouse *inputmock.MockMouse) *chopper.Bot {
	t.Helper()

	svc, err := vision.NewService(vision.ServiceConfig{
		Grabber:    grabber,
		Matcher:    matcher,
		TextReader: reader,
	})
	require.NoError(t, err)

	b, err := chopper.New(chopper.BotConfig{
		Vision:     svc,
		Mouse:      mouse,
		SearchWait: time.Millisecond,
		ChopWait:   time.Millisecond,
		WaitTick:   time.Millisecond,
	})
	require.NoError(t, err)

	return b
}

func optionValues(template string) options.Values {
	return options.Values{
		"running_time":  60,
		"tree_template": template,
		"game_region":   "",
		"chat_region":   "",
	}
}

func TestNewValidation(t *testing.T) {
	assert := assert.New(t)

	_, err := chopper.New(chopper.BotConfig{})
	assert.ErrorContains(err, "invalid config")
}

func TestInfo(t *testing.T) {
	assert := assert.New(t)

	b := newBot(t, &visionmock.MockGrabber{}, &visionmock.MockMatcher{}, &visionmock.MockTextReader{}, &inputmock.MockMouse{})

	info := b.Info()
	assert.Equal("chopper", info.Name)
	assert.Equal("Wood Chopper", info.Title)
	assert.NoError(info.Validate())
}

func TestRegistered(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	svc, err := vision.NewService(vision.ServiceConfig{
		Grabber:    &visionmock.MockGrabber{},
		Matcher:    &visionmock.MockMatcher{},
		TextReader: &visionmock.MockTextReader{},
	})
	require.NoError(err)

	script, err := bots.New("chopper", bots.Deps{Vision: svc, Mouse: &inputmock.MockMouse{}})
	require.NoError(err)
	assert.Equal("chopper", script.Info().Name)
}

func TestCreateOptions(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	b := newBot(t, &visionmock.MockGrabber{}, &visionmock.MockMatcher{}, &visionmock.MockTextReader{}, &inputmock.MockMouse{})

	schema, err := b.CreateOptions()
	require.NoError(err)

	assert.Equal("Wood Chopper", schema.Title)
	require.Len(schema.Options, 4)
	assert.Equal("running_time", schema.Options[0].Key)
	assert.Equal(options.OptionTypeSlider, schema.Options[0].Type)
	assert.Equal("tree_template", schema.Options[1].Key)
	assert.Equal("game_region", schema.Options[2].Key)
	assert.Equal("chat_region", schema.Options[3].Key)
}

func TestSaveOptions(t *testing.T) {
	template := writeTemplate(t)

	tests := map[string]struct {
		values func() options.Values
		expErr bool
	}{
		"Valid values should configure the bot.": {
			values: func() options.Values { return optionValues(template) },
		},
		"Explicit regions should be accepted.": {
			values: func() options.Values {
				v := optionValues(template)
				v["game_region"] = "10,20,110,220"
				v["chat_region"] = "0,300,500,400"
				return v
			},
		},
		"A missing template should fail.": {
			values: func() options.Values { return optionValues("") },
			expErr: true,
		},
		"A region with too few coordinates should fail.": {
			values: func() options.Values {
				v := optionValues(template)
				v["game_region"] = "1,2,3"
				return v
			},
			expErr: true,
		},
		"A region with non-integer coordinates should fail.": {
			values: func() options.Values {
				v := optionValues(template)
				v["chat_region"] = "a,b,c,d"
				return v
			},
			expErr: true,
		},
		"An inverted region should fail.": {
			values: func() options.Values {
				v := optionValues(template)
				v["game_region"] = "100,100,50,50"
				return v
			},
			expErr: true,
		},
		"An out of range running time should fail.": {
			values: func() options.Values {
				v := optionValues(template)
				v["running_time"] = 500
				return v
			},
			expErr: true,
		},
		"A missing option key should fail.": {
			values: func() options.Values {
				v := optionValues(template)
				delete(v, "chat_region")
				return v
			},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			b := newBot(t, &visionmock.MockGrabber{}, &visionmock.MockMatcher{}, &visionmock.MockTextReader{}, &inputmock.MockMouse{})

			err := b.SaveOptions(test.values())
			if test.expErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}

func TestMainLoopStopsImmediately(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	matcher := &visionmock.MockMatcher{}
	mouse := &inputmock.MockMouse{}
	b := newBot(t, &visionmock.MockGrabber{}, matcher, &visionmock.MockTextReader{}, mouse)
	require.NoError(b.SaveOptions(optionValues(writeTemplate(t))))

	rt := &fakeRuntime{checksLeft: 0}
	b.MainLoop(rt)

	assert.True(rt.hasLog("Chopping for 60 minutes."))
	matcher.AssertNotCalled(t, "Match", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mouse.AssertNotCalled(t, "Click")
}

func TestMainLoopChopsTree(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	grabber := &visionmock.MockGrabber{}
	matcher := &visionmock.MockMatcher{}
	reader := &visionmock.MockTextReader{}
	mouse := &inputmock.MockMouse{}

	grabber.On("Grab", mock.Anything, mock.Anything).Return(testImage(765, 503), nil)
	matcher.On("Match", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(image.Pt(30, 40), true, nil)
	reader.On("ReadText", mock.Anything, mock.Anything).Return(fragments("You swing your axe at the tree."), nil)
	mouse.On("MoveTo", mock.Anything).Return()
	mouse.On("Click").Return()

	b := newBot(t, grabber, matcher, reader, mouse)
	require.NoError(b.SaveOptions(optionValues(writeTemplate(t))))

	rt := &fakeRuntime{checksLeft: 9}
	b.MainLoop(rt)

	// Template is 20x10 and the match lands at (30,40), the click goes to
	// the template center.
	mouse.AssertCalled(t, "MoveTo", model.Point{X: 40, Y: 45})
	mouse.AssertCalled(t, "Click")
	assert.True(rt.hasLog("Logs chopped: 1."))
	assert.NotEmpty(rt.progress)
	for _, p := range rt.progress {
		assert.GreaterOrEqual(p, 0.0)
		assert.Less(p, 1.0)
	}
}

func TestMainLoopNoTreeOnScreen(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	grabber := &visionmock.MockGrabber{}
	matcher := &visionmock.MockMatcher{}
	mouse := &inputmock.MockMouse{}

	grabber.On("Grab", mock.Anything, mock.Anything).Return(testImage(765, 503), nil)
	matcher.On("Match", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(image.Point{}, false, nil)

	b := newBot(t, grabber, matcher, &visionmock.MockTextReader{}, mouse)
	require.NoError(b.SaveOptions(optionValues(writeTemplate(t))))

	rt := &fakeRuntime{checksLeft: 6}
	b.MainLoop(rt)

	assert.True(rt.hasLog("No tree on screen."))
	mouse.AssertNotCalled(t, "Click")
}

func TestMainLoopUnreachableTree(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	grabber := &visionmock.MockGrabber{}
	matcher := &visionmock.MockMatcher{}
	reader := &visionmock.MockTextReader{}
	mouse := &inputmock.MockMouse{}

	grabber.On("Grab", mock.Anything, mock.Anything).Return(testImage(765, 503), nil)
	matcher.On("Match", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(image.Pt(30, 40), true, nil)
	reader.On("ReadText", mock.Anything, mock.Anything).Return(fragments("You can't reach that!"), nil)
	mouse.On("MoveTo", mock.Anything).Return()
	mouse.On("Click").Return()

	b := newBot(t, grabber, matcher, reader, mouse)
	require.NoError(b.SaveOptions(optionValues(writeTemplate(t))))

	rt := &fakeRuntime{checksLeft: 9}
	b.MainLoop(rt)

	assert.True(rt.hasLog("Could not reach the tree."))
	assert.False(rt.hasLog("Logs chopped"))
}

func TestMainLoopSearchError(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	grabber := &visionmock.MockGrabber{}
	mouse := &inputmock.MockMouse{}

	grabber.On("Grab", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("capture failed"))

	b := newBot(t, grabber, &visionmock.MockMatcher{}, &visionmock.MockTextReader{}, mouse)
	require.NoError(b.SaveOptions(optionValues(writeTemplate(t))))

	rt := &fakeRuntime{checksLeft: 6}
	b.MainLoop(rt)

	assert.True(rt.hasLog("Tree search failed"))
	mouse.AssertNotCalled(t, "Click")
}
