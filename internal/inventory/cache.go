// Package inventory holds the client-side snapshot of the user's items.
// The cache is not a source of truth: each successful fetch replaces the
// item list wholesale, and a failed fetch keeps whatever was loaded
// before (stale-but-available). Every fetch is tagged with a sequence
// number so that a completion arriving after a newer fetch started is
// discarded instead of clobbering fresher data.
package inventory

import "diyfinder/internal/api"

// Cache is the inventory snapshot plus fetch state. It is mutated only
// from the update loop, so it needs no locking; fetches themselves run
// in command goroutines and report back via Apply.
type Cache struct {
	Items   []api.InventoryItem
	Loading bool
	Err     string

	seq uint64
}

// Begin marks a fetch as outstanding and returns its sequence number.
// Starting a new fetch supersedes any still-outstanding one.
func (c *Cache) Begin() uint64 {
	c.seq++
	c.Loading = true
	return c.seq
}

// Apply records a fetch completion. Superseded completions (seq older
// than the latest Begin) are dropped entirely: they clear nothing and
// set nothing. For the current fetch, success replaces the items and
// clears the error; failure records the error and preserves the prior
// items. Loading is cleared on either path.
func (c *Cache) Apply(seq uint64, items []api.InventoryItem, err error) bool {
	// Loading is false for a matching seq only after a Reset, when the
	// fetch's session is gone; that completion is stale too.
	if seq != c.seq || !c.Loading {
		return false
	}
	c.Loading = false
	if err != nil {
		c.Err = err.Error()
		return true
	}
	c.Items = items
	c.Err = ""
	return true
}

// Reset drops all state, e.g. on logout. The sequence counter survives
// so that a fetch still in flight across the reset can never pass the
// staleness check against a seq handed out afterwards.
func (c *Cache) Reset() {
	*c = Cache{seq: c.seq}
}
