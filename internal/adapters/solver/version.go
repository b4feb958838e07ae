package solver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"go.trai.ch/zerr"
)

// minimumVersions are the oldest backend releases whose dry-run JSON output
// is known to carry the FETCH and LINK actions.
var minimumVersions = map[string]*semver.Version{
	"conda":      semver.MustParse("4.12.0"),
	"mamba":      semver.MustParse("1.0.0"),
	"micromamba": semver.MustParse("1.0.0"),
}

// checkVersion runs `<backend> --version` once per backend and warns when it is
// older than the supported floor. A backend that cannot be run is an error.
func (s *Solver) checkVersion(ctx context.Context, backend string) error {
	s.mu.Lock()
	done := s.checked[backend]
	s.mu.Unlock()
	if done {
		return nil
	}

	_, err, _ := s.group.Do("version/"+backend, func() (any, error) {
		stdout, runErr := s.runner.Run(ctx, nil, backend, "--version")
		if runErr != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverUnavailable, runErr), "failed to run solver"), "backend", backend)
		}

		version, ok := ParseVersion(string(stdout))
		switch {
		case !ok:
			s.logger.Warn(fmt.Sprintf("could not determine %s version from %q", backend, strings.TrimSpace(string(stdout))))
		case version.LessThan(minimumVersions[backend]):
			s.logger.Warn(fmt.Sprintf("%s %s is older than the supported %s, dry-run output may be incomplete",
				backend, version, minimumVersions[backend]))
		}

		s.mu.Lock()
		s.checked[backend] = true
		s.mu.Unlock()
		return nil, nil
	})

	return err
}

// ParseVersion returns the first semantic version found in a backend's
// --version output, e.g. "conda 23.1.0" or "1.5.1".
func ParseVersion(output string) (*semver.Version, bool) {
	for _, field := range strings.Fields(output) {
		v, err := semver.NewVersion(field)
		if err == nil {
			return v, true
		}
	}
	return nil, false
}
