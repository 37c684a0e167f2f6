package installer

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"dreamcpp/internal/logger"
	"dreamcpp/internal/project"

	"github.com/mattn/go-isatty"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
)

// IsArchive reports whether a source location points at a downloadable archive
// rather than a repository. Query strings and fragments are ignored.
func IsArchive(location string) bool {
	name := strings.ToLower(archiveName(location))
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// archiveName returns the last path element of a URL (or plain path).
func archiveName(location string) string {
	if u, err := url.Parse(location); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	return path.Base(location)
}

// downloadFile downloads the content located at the specified URL and saves it to the destination path.
// A progress bar is drawn on the terminal when progress is true.
func downloadFile(client *http.Client, rawURL, destPath string, progress bool) error {
	if client == nil {
		client = http.DefaultClient
	}

	// Make an HTTP GET request to the given URL
	resp, err := client.Get(rawURL)
	if err != nil {
		return eris.Wrapf(err, "failed to GET %s", rawURL)
	}
	// Ensure the response body stream is closed when the function returns
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return eris.Errorf("download of %s failed: HTTP status %d", rawURL, resp.StatusCode)
	}

	// Create or truncate the file at destPath to write the downloaded content
	out, err := os.Create(destPath)
	if err != nil {
		return eris.Wrapf(err, "failed to create file %s", destPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close destination file: %s\n", cerr)
		}
	}()

	var w io.Writer = out
	if progress {
		w = io.MultiWriter(out, newProgressBar(resp.ContentLength, "downloading "+archiveName(rawURL)))
	}

	// Copy the entire response body (downloaded data) into the destination file
	if _, err := io.Copy(w, resp.Body); err != nil {
		return eris.Wrap(err, "failed to write response to file")
	}

	logger.Debug("[DEBUG] Downloaded %s to: %s\n", rawURL, destPath)
	return nil
}

// newProgressBar draws download progress on stderr, keeping stdout for command
// output. The bar is hidden when stderr is not a terminal.
func newProgressBar(length int64, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(length,
		progressbar.OptionSetVisibility(isatty.IsTerminal(os.Stderr.Fd())),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

// relocateHeaders moves build/deps/<name>/include/<name> to build/includes/<name>
// so header-only dependencies are reachable through the shared include flag.
func relocateHeaders(p *project.Project, name string) error {
	src := filepath.Join(p.DepDir(name), "include", name)
	dst := filepath.Join(p.IncludesDir(), name)

	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return eris.Errorf("%s has no include/%s directory", p.Rel(p.DepDir(name)), name)
	}
	if err := os.MkdirAll(p.IncludesDir(), 0755); err != nil {
		return eris.Wrapf(err, "failed to create %s", p.IncludesDir())
	}

	// An empty leftover destination is replaced, anything else is kept
	if entries, err := os.ReadDir(dst); err == nil {
		if len(entries) > 0 {
			return eris.Errorf("%s already exists and is not empty", p.Rel(dst))
		}
		if err := os.Remove(dst); err != nil {
			return eris.Wrapf(err, "failed to replace %s", dst)
		}
	}

	if err := os.Rename(src, dst); err != nil {
		return eris.Wrapf(err, "failed to move headers to %s", dst)
	}
	logger.Debug("[DEBUG] Moved headers of '%s' to %s\n", name, dst)
	return nil
}
