package domain

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SolveRequest describes a single dry-run solve.
type SolveRequest struct {
	Backend  string
	Channels []string
	Specs    []string
	Platform PlatformTag
}

// Fingerprint returns a stable hex digest of the request, used to correlate
// a vendored channel with the solve that produced it.
func (r SolveRequest) Fingerprint() string {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}

	write(r.Backend)
	write(string(r.Platform))
	write(strconv.Itoa(len(r.Channels)))
	for _, ch := range r.Channels {
		write(ch)
	}
	write(strconv.Itoa(len(r.Specs)))
	for _, spec := range r.Specs {
		write(spec)
	}

	return strconv.FormatUint(h.Sum64(), 16)
}

// SolveResult is the decoded dry-run output of a solver backend.
type SolveResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Actions SolveActions `json:"actions"`
}

// SolveActions holds the fetch and link plans of a solve.
type SolveActions struct {
	Fetch []FetchEntry `json:"FETCH"`
	Link  []LinkEntry  `json:"LINK"`
}

// FetchEntry is one package artifact the solve requires.
type FetchEntry struct {
	Filename  string `json:"fn"`
	URL       string `json:"url"`
	SHA256    string `json:"sha256"`
	MD5       string `json:"md5,omitempty"`
	Subdir    string `json:"subdir"`
	Size      int64  `json:"size,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Name      string `json:"name"`
	Version   string `json:"version"`
	Build     string `json:"build,omitempty"`
	Channel   string `json:"channel"`
}

// LinkEntry is one package the solve would link into the prefix.
// Solvers differ in how much of the package record they report here.
type LinkEntry struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	DistName    string `json:"dist_name,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`
	BuildString string `json:"build_string,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Filename    string `json:"fn,omitempty"`
	URL         string `json:"url,omitempty"`
	SHA256      string `json:"sha256,omitempty"`
	Subdir      string `json:"subdir,omitempty"`
}

// Dist returns the dist name of the linked package, deriving it from the
// file name when the solver did not report one.
func (l LinkEntry) Dist() string {
	if l.DistName != "" {
		return l.DistName
	}
	name := l.Filename
	for _, ext := range []string{".tar.bz2", ".conda"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

// IsNoarch reports whether the entry belongs in the noarch subdir.
func (e FetchEntry) IsNoarch() bool {
	return e.Subdir == string(NoarchPlatform)
}

// VendoredArtifact is a fetch entry that has been downloaded, verified and written.
type VendoredArtifact struct {
	Entry FetchEntry
	Path  string
}
