package entities

// Question is one quiz round: the word to find and the options shown for it.
type Question struct {
	Target  Word
	Options []Word // contains Target exactly once
}

// CorrectIndex returns the position of the target among the options, or -1.
func (q Question) CorrectIndex() int {
	for i, o := range q.Options {
		if o.Equal(q.Target) {
			return i
		}
	}
	return -1
}
