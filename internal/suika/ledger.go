package suika

// Ledger accumulates the run score. It never goes negative.
type Ledger struct {
	score int
}

// Add credits n points. Non-positive amounts are ignored.
func (l *Ledger) Add(n int) {
	if n > 0 {
		l.score += n
	}
}

// Reset zeroes the score.
func (l *Ledger) Reset() {
	l.score = 0
}

// Score returns the current total.
func (l *Ledger) Score() int {
	return l.score
}
