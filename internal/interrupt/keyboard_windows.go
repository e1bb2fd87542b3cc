//go:build windows

package interrupt

import "golang.org/x/sys/windows"

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// Virtual-key codes for the control keys (US layout).
const (
	vkEscape   = 0x1B
	vkOEMPlus  = 0xBB // "=" key
	vkOEMMinus = 0xBD // "-" key
)

// High bit of GetAsyncKeyState's result: key is currently down.
const keyDownMask = 0x8000

type keyboard struct{}

// NewKeyboard returns a Source that polls the global keyboard state, so key
// presses register even while another window has focus.
func NewKeyboard() Source {
	return keyboard{}
}

func (keyboard) PausePressed() bool  { return keyDown(vkOEMMinus) }
func (keyboard) ResumePressed() bool { return keyDown(vkOEMPlus) }
func (keyboard) StopPressed() bool   { return keyDown(vkEscape) }

func keyDown(vk int) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return state&keyDownMask != 0
}
