package installer

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"dreamcpp/internal/index"
	"dreamcpp/internal/logger"
	"dreamcpp/internal/shell"

	"github.com/rotisserie/eris"
)

// Materializer puts the source of an index entry into dest.
// dest does not exist beforehand and must exist afterwards on success.
type Materializer interface {
	Materialize(entry index.Entry, dest string) error
}

// SourceMaterializer picks the strategy by the shape of the source location:
// archive URLs are downloaded and unpacked, everything else is cloned with git.
type SourceMaterializer struct {
	Git     *GitCloner
	Archive *ArchiveFetcher
}

// NewSourceMaterializer wires the default git and archive strategies.
func NewSourceMaterializer(runner shell.Runner) *SourceMaterializer {
	return &SourceMaterializer{
		Git:     &GitCloner{Runner: runner},
		Archive: &ArchiveFetcher{Progress: true},
	}
}

// Materialize dispatches to the matching strategy.
func (m *SourceMaterializer) Materialize(entry index.Entry, dest string) error {
	if IsArchive(entry.SourceLocation) {
		logger.Debug("[DEBUG] %s is an archive source\n", entry.SourceLocation)
		return m.Archive.Materialize(entry, dest)
	}
	return m.Git.Materialize(entry, dest)
}

// GitCloner performs a full clone, on the entry's branch when it names one.
type GitCloner struct {
	Runner shell.Runner
}

// Materialize clones entry.SourceLocation into dest.
func (g *GitCloner) Materialize(entry index.Entry, dest string) error {
	args := []string{"clone"}
	if entry.Branch != "" {
		args = append(args, "--branch", entry.Branch)
	}
	args = append(args, entry.SourceLocation, dest)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return eris.Wrapf(err, "failed to create %s", filepath.Dir(dest))
	}

	logger.Info("[INFO] Cloning %s...\n", entry.SourceLocation)
	res, err := g.Runner.Capture("", "git", args...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return eris.Errorf("git clone exited with status %d\nOutput: %s", res.ExitCode, strings.TrimSpace(res.Output))
	}
	return nil
}

// ArchiveFetcher downloads an archive over HTTP and unpacks it into dest.
// A single top-level directory in the archive is unwrapped.
type ArchiveFetcher struct {
	Client   *http.Client // http.DefaultClient when nil
	Progress bool         // show a progress bar while downloading
}

// Materialize downloads and extracts entry.SourceLocation.
func (a *ArchiveFetcher) Materialize(entry index.Entry, dest string) error {
	// Stage next to dest so the final move stays on one filesystem
	staging, err := os.MkdirTemp(filepath.Dir(dest), ".fetch-"+filepath.Base(dest)+"-")
	if err != nil {
		return eris.Wrap(err, "failed to create staging directory")
	}
	defer func() {
		if rerr := os.RemoveAll(staging); rerr != nil {
			logger.Warn("[WARN] Failed to clean up %s: %v\n", staging, rerr)
		}
	}()

	archivePath := filepath.Join(staging, archiveName(entry.SourceLocation))
	if err := downloadFile(a.Client, entry.SourceLocation, archivePath, a.Progress); err != nil {
		return err
	}

	extracted := filepath.Join(staging, "content")
	if err := ExtractArchive(archivePath, extracted); err != nil {
		return eris.Wrapf(err, "failed to extract %s", archivePath)
	}

	root, err := unwrapSingleDir(extracted)
	if err != nil {
		return err
	}
	if err := os.Rename(root, dest); err != nil {
		return eris.Wrapf(err, "failed to move extracted archive to %s", dest)
	}
	logger.Debug("[DEBUG] Extracted %s to %s\n", entry.SourceLocation, dest)
	return nil
}

// unwrapSingleDir returns the only child of dir when that child is a directory,
// otherwise dir itself.
func unwrapSingleDir(dir string) (string, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return "", eris.Wrapf(err, "failed to list %s", dir)
	}
	if len(children) == 1 && children[0].IsDir() {
		return filepath.Join(dir, children[0].Name()), nil
	}
	return dir, nil
}
