package index

import (
	"io"
	"net/http"

	"dreamcpp/internal/logger"

	"github.com/rotisserie/eris"
)

// ErrUnavailable is returned when the index could not be retrieved: a transport
// error or a non-2xx response.
var ErrUnavailable = eris.New("index unavailable")

// Fetcher retrieves the raw index document.
type Fetcher interface {
	Fetch() (status int, body []byte, err error)
}

// HTTPFetcher performs a single GET against URL. There is no timeout and no retry.
type HTTPFetcher struct {
	URL    string
	Client *http.Client // http.DefaultClient when nil
}

// Fetch downloads the index document.
func (f *HTTPFetcher) Fetch() (int, []byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger.Debug("[DEBUG] Fetching index from URL: %s\n", f.URL)
	resp, err := client.Get(f.URL)
	if err != nil {
		return 0, nil, eris.Wrapf(err, "HTTP GET error fetching index %s", f.URL)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, eris.Wrapf(err, "failed to read index body from %s", f.URL)
	}
	return resp.StatusCode, body, nil
}

// Load fetches and parses the index. Transport failures and non-2xx statuses
// wrap ErrUnavailable; unparsable bodies wrap ErrMalformed.
func Load(f Fetcher) (*Index, error) {
	status, body, err := f.Fetch()
	if err != nil {
		return nil, eris.Wrap(ErrUnavailable, err.Error())
	}
	if status < 200 || status > 299 {
		return nil, eris.Wrapf(ErrUnavailable, "index fetch failed: HTTP status %d", status)
	}
	return Parse(body)
}
