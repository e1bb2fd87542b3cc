// Package inputmock has mocks for the input package interfaces.
package inputmock

import (
	"github.com/stretchr/testify/mock"

	"github.com/spacebear01/osbc/internal/model"
)

// MockMouse is a mock implementation of input.Mouse.
type MockMouse struct {
	mock.Mock
}

// MoveTo satisfies input.Mouse.
func (m *MockMouse) MoveTo(p model.Point) {
	m.Called(p)
}

// MoveRel satisfies input.Mouse.
func (m *MockMouse) MoveRel(dx, dy int) {
	m.Called(dx, dy)
}

// Click satisfies input.Mouse.
func (m *MockMouse) Click() {
	m.Called()
}

// RightClick satisfies input.Mouse.
func (m *MockMouse) RightClick() {
	m.Called()
}

// Position satisfies input.Mouse.
func (m *MockMouse) Position() model.Point {
	args := m.Called()
	p, _ := args.Get(0).(model.Point)
	return p
}
