package cmd

import (
	"os/exec"

	"dreamcpp/internal/config"
	"dreamcpp/internal/index"
	"dreamcpp/internal/installer"
	"dreamcpp/internal/logger"
	"dreamcpp/internal/project"
	"dreamcpp/internal/resolver"
	"dreamcpp/internal/shell"

	"github.com/rotisserie/eris"
)

// openProject loads the project named by --config.
func openProject() (*project.Project, error) {
	p, err := project.Open(manifestPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Project '%s' at %s\n", p.Manifest.Name, p.Root)
	return p, nil
}

// loadSettings reads the settings file named by --settings, or the default one.
func loadSettings() (config.Settings, error) {
	path := settingsPath
	if path == "" {
		path = config.DefaultSettingsPath()
	}
	return config.LoadSettings(config.ExpandHome(path))
}

// newFetcher returns the index fetcher for the configured URL, wrapped in the
// state file cache when caching is enabled.
func newFetcher(settings config.Settings) index.Fetcher {
	var f index.Fetcher = &index.HTTPFetcher{URL: settings.Index.URL}
	if !settings.Index.Cache.Enabled {
		return f
	}
	logger.Debug("[DEBUG] Index cache enabled (ttl %s, state %s)\n", settings.Index.Cache.TTLDuration(), settings.StateFile)
	return &index.CachingFetcher{
		Inner:     f,
		URL:       settings.Index.URL,
		StatePath: settings.StateFile,
		TTL:       settings.Index.Cache.TTLDuration(),
	}
}

// newSynchronizer wires settings, index, resolution strategies and materialization.
func newSynchronizer() (*installer.Synchronizer, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	res := resolver.New(
		&resolver.LocalIndex{Paths: settings.Index.LocalPaths},
		&resolver.RemoteIndex{Fetcher: newFetcher(settings)},
	)
	return &installer.Synchronizer{
		Resolver:     res,
		Materializer: installer.NewSourceMaterializer(shell.ExecRunner{}),
	}, nil
}

// requireGit fails when git is not on PATH; dependencies are cloned with it.
func requireGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return eris.New("git was not found on PATH; install git to fetch dependencies")
	}
	return nil
}
