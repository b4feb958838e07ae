package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidEnvironmentFile is returned when the environment file is malformed or lacks a name.
	ErrInvalidEnvironmentFile = zerr.New("invalid environment file")

	// ErrUnsupportedChannelConfiguration is returned when the environment relies on implicit default channels.
	ErrUnsupportedChannelConfiguration = zerr.New("default channels are not supported")

	// ErrUnsupportedPlatform is returned when the host operating system has no conda platform mapping.
	ErrUnsupportedPlatform = zerr.New("unsupported platform")

	// ErrDestinationExists is returned when an output directory or file is already present.
	ErrDestinationExists = zerr.New("destination already exists")

	// ErrSolveFailed is returned when the solver reports an unsuccessful solve.
	ErrSolveFailed = zerr.New("failed to solve environment")

	// ErrSolverUnavailable is returned when the solver backend cannot be invoked or its output cannot be read.
	ErrSolverUnavailable = zerr.New("solver backend unavailable")

	// ErrUnknownSolver is returned when the requested solver backend is not one of conda, mamba or micromamba.
	ErrUnknownSolver = zerr.New("unknown solver backend")

	// ErrMissingPackageRecord is returned when a linked package has no cached repodata record to rebuild its fetch entry from.
	ErrMissingPackageRecord = zerr.New("missing package record")

	// ErrDigestMismatch is returned when downloaded content does not hash to the expected sha256.
	ErrDigestMismatch = zerr.New("sha256 checksum validation failed")

	// ErrInvalidDigest is returned when a fetch entry carries a malformed sha256 value.
	ErrInvalidDigest = zerr.New("invalid sha256 digest")

	// ErrTransientNetworkFailure is returned when a download still fails after the retry budget is spent.
	ErrTransientNetworkFailure = zerr.New("network failure after retries")

	// ErrInvalidArtifactName is returned when a fetch entry's file name cannot be used as a file in the channel.
	ErrInvalidArtifactName = zerr.New("invalid artifact file name")

	// ErrIndexFailed is returned when the external channel indexer fails.
	ErrIndexFailed = zerr.New("failed to index vendored channel")

	// ErrUnknownManifestFormat is returned when a manifest format other than yaml, json or resources is requested.
	ErrUnknownManifestFormat = zerr.New("unknown manifest format")
)
