package index

import (
	"net/http"
	"time"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/state"
)

// CachingFetcher serves the last good index body from the state file while it is
// younger than TTL, and otherwise fetches through Inner and records the result.
// Only bodies that parse are recorded, so a broken index is never replayed.
type CachingFetcher struct {
	Inner     Fetcher
	URL       string // identifies the snapshot; a snapshot for another URL is ignored
	StatePath string
	TTL       time.Duration
	Now       func() time.Time // time.Now when nil
}

// Fetch returns the cached snapshot when fresh, else a live fetch.
func (c *CachingFetcher) Fetch() (int, []byte, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	st := state.LoadState(c.StatePath)
	if snap := st.Index; snap != nil && snap.URL == c.URL {
		age := now().Sub(snap.FetchedAt)
		if age >= 0 && age < c.TTL {
			logger.Debug("[DEBUG] Using cached index snapshot (age %s)\n", age.Round(time.Second))
			return http.StatusOK, []byte(snap.Body), nil
		}
		logger.Debug("[DEBUG] Cached index snapshot is stale (age %s)\n", age.Round(time.Second))
	}

	status, body, err := c.Inner.Fetch()
	if err != nil || status < 200 || status > 299 {
		return status, body, err
	}
	if _, perr := Parse(body); perr != nil {
		return status, body, nil
	}

	st.Index = &state.IndexSnapshot{URL: c.URL, FetchedAt: now(), Body: string(body)}
	state.SaveState(c.StatePath, st)
	return status, body, nil
}
