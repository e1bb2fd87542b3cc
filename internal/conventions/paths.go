package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default osbc data directory name (relative to home).
	DefaultDataDir = ".osbc"
	// OptionsDir is the subdirectory for saved bot option files.
	OptionsDir = "options"
	// ScreenshotsDir is the subdirectory for captured screenshots.
	ScreenshotsDir = "screenshots"

	// DBFile is the filename for the run history database.
	DBFile = "osbc.db"

	// OptionsFileExt is the extension for saved bot option files.
	OptionsFileExt = ".yaml"
)

// DBPath returns the full path to the run history database.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// OptionsPath returns the path to a bot's saved options file.
func OptionsPath(dataDir, botName string) string {
	return filepath.Join(dataDir, OptionsDir, botName+OptionsFileExt)
}

// ScreenshotsPath returns the directory where screenshots are stored.
func ScreenshotsPath(dataDir string) string {
	return filepath.Join(dataDir, ScreenshotsDir)
}
