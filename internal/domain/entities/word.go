// Package entities contains domain entities used across the application.
package entities

// Word represents one vocabulary entry of a word list.
// Two words are the same entry when their Text matches.
type Word struct {
	Text       string // word shown to the learner
	Image      string // image file name under word_images/
	Sound      string // pronunciation file name under word_sounds/ (optional)
	Definition string // short definition shown after answering
}

// Equal reports whether w and other describe the same vocabulary entry.
func (w Word) Equal(other Word) bool {
	return w.Text == other.Text
}
