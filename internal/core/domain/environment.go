package domain

import (
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

const (
	// DefaultsChannel is the implicit channel alias that cannot be vendored.
	DefaultsChannel = "defaults"

	// NoDefaultsChannel is the marker conda uses to opt out of the defaults alias.
	NoDefaultsChannel = "nodefaults"
)

// EnvironmentSpec is the parsed form of a conda environment file.
type EnvironmentSpec struct {
	Name         string
	Channels     []string
	Dependencies []Dependency
}

// ValidateEnvironmentName rejects names that cannot be used as a single
// directory below the output root.
func ValidateEnvironmentName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return zerr.With(zerr.Wrap(ErrInvalidEnvironmentFile, "environment name must be a plain directory name"), "name", name)
	}
	return nil
}

// Dependency is a single requirement from the environment file.
// Version holds the constraint with any leading "=" or "==" removed.
// Build is the optional build string pin.
type Dependency struct {
	Name    string
	Version string
	Build   string
}

// ParseDependency splits a conda match spec shorthand into name, version and build.
// Accepted forms are "name", "name=ver", "name==ver", "name ver",
// "name=ver=build", "name ver build" and comparison forms such as
// "name>=ver", which keep their operator.
func ParseDependency(raw string) (Dependency, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Dependency{}, zerr.Wrap(ErrInvalidEnvironmentFile, "empty dependency")
	}

	idx := strings.IndexAny(s, " =<>!~")
	if idx < 0 {
		return Dependency{Name: s}, nil
	}

	name := s[:idx]
	if name == "" {
		return Dependency{}, zerr.With(zerr.Wrap(ErrInvalidEnvironmentFile, "dependency has no name"), "dependency", raw)
	}

	rest := strings.TrimSpace(s[idx:])
	rest = strings.TrimPrefix(rest, "==")
	rest = strings.TrimPrefix(rest, "=")

	version, build, err := splitBuild(strings.TrimSpace(rest))
	if err != nil {
		return Dependency{}, zerr.With(err, "dependency", raw)
	}

	return Dependency{Name: name, Version: version, Build: build}, nil
}

// splitBuild separates "ver build" or "ver=build" into its two parts.
func splitBuild(rest string) (string, string, error) {
	fields := strings.Fields(rest)
	if len(fields) > 1 && strings.Trim(fields[0], "<>=!~") == "" {
		fields = append([]string{fields[0] + fields[1]}, fields[2:]...)
	}

	switch len(fields) {
	case 0:
		return "", "", nil
	case 1:
	case 2:
		return fields[0], fields[1], nil
	default:
		return "", "", zerr.Wrap(ErrInvalidEnvironmentFile, "dependency has too many parts")
	}

	version := fields[0]
	if strings.ContainsAny(version[:1], "<>!~") {
		return version, "", nil
	}

	ver, build, found := strings.Cut(version, "=")
	if !found {
		return version, "", nil
	}
	if ver == "" || build == "" || strings.Contains(build, "=") {
		return "", "", zerr.Wrap(ErrInvalidEnvironmentFile, "malformed version and build pin")
	}
	return ver, build, nil
}

// Spec renders the dependency as a solver argument: "name", "name==version"
// or "name version build" when a build string is pinned.
// Constraints that carry their own comparison operator are appended as is.
func (d Dependency) Spec() string {
	switch {
	case d.Version == "":
		return d.Name
	case d.Build != "":
		return d.Name + " " + d.Version + " " + d.Build
	case strings.ContainsAny(d.Version[:1], "<>!~"):
		return d.Name + d.Version
	default:
		return d.Name + "==" + d.Version
	}
}

// Specs flattens the dependencies into solver arguments, preserving order.
func (e *EnvironmentSpec) Specs() []string {
	specs := make([]string, 0, len(e.Dependencies))
	for _, dep := range e.Dependencies {
		specs = append(specs, dep.Spec())
	}
	return specs
}

// ValidateChannels rejects channel lists that would make the solver fall back to defaults.
func ValidateChannels(channels []string) error {
	explicit := 0
	for _, ch := range channels {
		switch strings.TrimSpace(ch) {
		case DefaultsChannel:
			return zerr.With(zerr.Wrap(ErrUnsupportedChannelConfiguration, "implicit channel listed"), "channel", ch)
		case NoDefaultsChannel, "":
			continue
		default:
			explicit++
		}
	}

	if explicit == 0 {
		return zerr.Wrap(ErrUnsupportedChannelConfiguration, "no explicit channels listed")
	}
	return nil
}

// SolveChannels returns the channels to pass to the solver, without opt-out markers.
func (e *EnvironmentSpec) SolveChannels() []string {
	channels := make([]string, 0, len(e.Channels))
	for _, ch := range e.Channels {
		if ch == NoDefaultsChannel {
			continue
		}
		channels = append(channels, ch)
	}
	return channels
}
