package installer

import (
	"os"

	"dreamcpp/internal/index"
	"dreamcpp/internal/logger"
	"dreamcpp/internal/manifest"
	"dreamcpp/internal/project"
	"dreamcpp/internal/resolver"

	"github.com/rotisserie/eris"
)

// Resolver maps a dependency name to its index entry.
type Resolver interface {
	Resolve(name string) (index.Entry, error)
}

// Status is what happened to one dependency during a sync.
type Status int

const (
	// StatusSkippedSystem: the dependency is a system library and is not materialized.
	StatusSkippedSystem Status = iota
	// StatusSkippedPresent: the materialization directory already exists.
	StatusSkippedPresent
	// StatusSynced: the dependency was resolved and materialized during this sync.
	StatusSynced
	// StatusFailed: resolution or materialization failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkippedSystem:
		return "skipped (system library)"
	case StatusSkippedPresent:
		return "skipped (already present)"
	case StatusSynced:
		return "synced"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome records the result for one dependency.
// Warning is set when a non-critical step (header relocation) failed on a synced dependency.
type Outcome struct {
	Name    string
	Status  Status
	Err     error
	Warning error
}

// Report lists the outcomes in manifest order.
type Report struct {
	Outcomes []Outcome
}

// OK reports whether every dependency was skipped or synced.
func (r Report) OK() bool {
	return len(r.Failed()) == 0
}

// Failed returns the outcomes of dependencies that could not be synced.
func (r Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// Synchronizer brings the materialized dependency tree in line with the manifest.
type Synchronizer struct {
	Resolver     Resolver
	Materializer Materializer
}

// Sync processes the project's dependencies one at a time, in manifest order.
// A failing dependency is recorded and the next one is still attempted.
func (s *Synchronizer) Sync(p *project.Project) Report {
	deps := p.Manifest.Dependencies
	logger.Debug("[DEBUG] Starting Sync with %d dependencies\n", len(deps))

	var report Report
	if len(deps) == 0 {
		logger.Info("[INFO] No dependencies to sync\n")
		return report
	}

	prepared := false
	for _, dep := range deps {
		outcome := s.syncOne(p, dep, &prepared)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	if report.OK() {
		logger.Info("[INFO] All dependencies synced successfully\n")
	} else {
		logger.Warn("[WARN] %d of %d dependencies failed to sync\n", len(report.Failed()), len(deps))
	}
	return report
}

// syncOne handles a single dependency. prepared tracks whether the shared
// build directories were already created during this sync.
func (s *Synchronizer) syncOne(p *project.Project, dep manifest.Dependency, prepared *bool) Outcome {
	outcome := Outcome{Name: dep.Name}

	// System libraries are linked from the host, nothing to fetch
	if dep.System {
		logger.Info("[INFO] Skipping '%s', is a system library.\n", dep.Name)
		outcome.Status = StatusSkippedSystem
		return outcome
	}

	// Existence of the directory is the only materialization state there is
	dest := p.DepDir(dep.Name)
	if _, err := os.Stat(dest); err == nil {
		logger.Info("[INFO] Skipping '%s' (already exists)\n", dep.Name)
		outcome.Status = StatusSkippedPresent
		return outcome
	}

	entry, err := s.Resolver.Resolve(dep.Name)
	if err != nil {
		logger.Error("[ERROR] Failed to resolve dependency '%s': %v\n", dep.Name, err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	if !*prepared {
		if err := prepareDirs(p); err != nil {
			logger.Error("[ERROR] %v\n", err)
			outcome.Status = StatusFailed
			outcome.Err = err
			return outcome
		}
		*prepared = true
	}

	logger.Info("[INFO] Fetching '%s' from %s...\n", dep.Name, entry.SourceLocation)
	if err := s.Materializer.Materialize(entry, dest); err != nil {
		logger.Error("[ERROR] Failed to fetch dependency '%s': %v\n", dep.Name, err)
		outcome.Status = StatusFailed
		outcome.Err = err
		return outcome
	}

	if entry.HeaderOnly {
		if err := relocateHeaders(p, dep.Name); err != nil {
			logger.Warn("[WARN] Couldn't move header-only include for '%s': %v\n", dep.Name, err)
			outcome.Warning = err
		}
	}

	logger.Info("[INFO] Successfully synced: %s\n", dep.Name)
	outcome.Status = StatusSynced
	return outcome
}

// prepareDirs creates build/deps and build/includes.
func prepareDirs(p *project.Project) error {
	for _, dir := range []string{p.DepsDir(), p.IncludesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return eris.Wrapf(err, "failed to create %s", dir)
		}
	}
	return nil
}

// Add records a new dependency in the project's manifest after checking that
// the name resolves. The resolved location itself is not stored.
// It returns false without error when the dependency is already listed.
func (s *Synchronizer) Add(p *project.Project, name string) (bool, error) {
	logger.Info("[INFO] Adding dependency: %s\n", name)

	if p.Manifest.Has(name) {
		logger.Warn("[WARN] Dependency '%s' already exists\n", name)
		return false, nil
	}

	if _, err := s.Resolver.Resolve(name); err != nil {
		if resolver.IsNotFound(err) {
			logger.Error("[ERROR] Dependency not found: %s\n", name)
		} else {
			logger.Error("[ERROR] Index unavailable while resolving %s: %v\n", name, err)
		}
		return false, eris.Wrapf(err, "cannot add '%s'", name)
	}

	p.Manifest.Add(manifest.Dependency{Name: name, Version: manifest.DefaultDependencyVersion, System: false})
	if err := p.Save(); err != nil {
		// keep memory and disk in agreement
		p.Manifest.Dependencies = p.Manifest.Dependencies[:len(p.Manifest.Dependencies)-1]
		logger.Error("[ERROR] Failed to save manifest: %v\n", err)
		return false, err
	}

	logger.Info("[INFO] Added dependency '%s' to project\n", name)
	logger.Info("[INFO] Run 'dreamcpp sync' to install dependencies\n")
	return true, nil
}
