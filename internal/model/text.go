package model

// TextFragment is a single piece of text recognized by the OCR backend.
type TextFragment struct {
	// Text is the recognized text.
	Text string
	// Confidence is the backend's confidence in the recognition, in [0,1].
	Confidence float64
}

// TextMatch is the tri-state result of searching recognized text for
// expected and blacklisted words.
type TextMatch int

const (
	// TextMatchUnknown indicates the recognized text was irrelevant: no
	// expected word and no blacklisted word was found.
	TextMatchUnknown TextMatch = iota
	// TextMatchFound indicates at least one expected word was found and no
	// blacklisted word was found.
	TextMatchFound
	// TextMatchBlacklisted indicates a blacklisted word was found.
	TextMatchBlacklisted
)

// String returns a human-readable representation of the match result.
func (m TextMatch) String() string {
	switch m {
	case TextMatchFound:
		return "found"
	case TextMatchBlacklisted:
		return "blacklisted"
	case TextMatchUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}
