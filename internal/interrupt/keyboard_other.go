//go:build !windows

package interrupt

// NewKeyboard returns a Source that never fires. Global key state polling is
// only implemented on Windows; on other platforms bots are stopped through
// signals or the supervisor API.
func NewKeyboard() Source {
	return Noop
}
