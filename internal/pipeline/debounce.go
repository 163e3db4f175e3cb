package pipeline

import "time"

// DefaultDebounce is how long the search term must stay unchanged before
// the view is recomputed.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer tracks keystroke generations. Each Bump supersedes the previous
// one; a timer firing for an older generation settles nothing.
type Debouncer struct {
	gen     uint64
	pending string
}

// Bump records a new search term and returns its generation.
func (d *Debouncer) Bump(term string) uint64 {
	d.gen++
	d.pending = term
	return d.gen
}

// Settle returns the pending term if gen is still the latest generation.
func (d *Debouncer) Settle(gen uint64) (string, bool) {
	if gen != d.gen {
		return "", false
	}
	return d.pending, true
}

// Pending returns the most recent term, settled or not.
func (d *Debouncer) Pending() string {
	return d.pending
}
