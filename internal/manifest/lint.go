package manifest

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Lint returns human-readable findings about fields that are syntactically
// suspicious. Findings never block a command: versions are recorded, not solved.
func (m *Manifest) Lint() []string {
	var findings []string

	if _, err := semver.NewVersion(m.Version); err != nil {
		findings = append(findings, fmt.Sprintf("project version %q is not a semantic version", m.Version))
	}

	for _, dep := range m.Dependencies {
		if dep.Version == DefaultDependencyVersion {
			continue
		}
		if _, err := semver.NewConstraint(dep.Version); err != nil {
			findings = append(findings, fmt.Sprintf("dependency %s has version %q which is neither %q nor a version constraint",
				dep.Name, dep.Version, DefaultDependencyVersion))
		}
	}
	return findings
}
