package normalize

// RepeatGuard remembers the last rejected guess so resubmitting it unchanged
// can be ignored instead of costing an attempt. The zero value is ready.
type RepeatGuard struct {
	last string
}

// Seen reports whether guess matches the last rejected guess.
func (g *RepeatGuard) Seen(guess string) bool {
	return g.last != "" && Equal(guess, g.last)
}

// Reject records guess as the last rejected one.
func (g *RepeatGuard) Reject(guess string) {
	g.last = Normalize(guess)
}

// Reset forgets the last rejected guess.
func (g *RepeatGuard) Reset() {
	g.last = ""
}
