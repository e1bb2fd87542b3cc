// Package visionmock has mocks for the vision package interfaces.
package visionmock

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/spacebear01/osbc/internal/model"
)

// MockGrabber is a mock implementation of vision.Grabber.
type MockGrabber struct {
	mock.Mock
}

// Grab satisfies vision.Grabber.
func (m *MockGrabber) Grab(ctx context.Context, rect model.Rect) (image.Image, error) {
	args := m.Called(ctx, rect)
	img, _ := args.Get(0).(image.Image)
	return img, args.Error(1)
}

// MockMatcher is a mock implementation of vision.Matcher.
type MockMatcher struct {
	mock.Mock
}

// Match satisfies vision.Matcher.
func (m *MockMatcher) Match(ctx context.Context, haystack, needle image.Image, confidence float64) (image.Point, bool, error) {
	args := m.Called(ctx, haystack, needle, confidence)
	pt, _ := args.Get(0).(image.Point)
	return pt, args.Bool(1), args.Error(2)
}

// MockTextReader is a mock implementation of vision.TextReader.
type MockTextReader struct {
	mock.Mock
}

// ReadText satisfies vision.TextReader.
func (m *MockTextReader) ReadText(ctx context.Context, img image.Image) ([]model.TextFragment, error) {
	args := m.Called(ctx, img)
	fragments, _ := args.Get(0).([]model.TextFragment)
	return fragments, args.Error(1)
}
