package domain

import (
	"net/url"
	"strings"

	"go.trai.ch/zerr"
)

// ManifestFormat selects how a manifest is persisted.
type ManifestFormat string

const (
	// ManifestYAML writes the grouped manifest as YAML.
	ManifestYAML ManifestFormat = "yaml"
	// ManifestJSON writes the grouped manifest as JSON.
	ManifestJSON ManifestFormat = "json"
	// ManifestResources writes a flat list of resources with their sha256 validation.
	ManifestResources ManifestFormat = "resources"
)

// ParseManifestFormat validates a user supplied format name.
func ParseManifestFormat(s string) (ManifestFormat, error) {
	switch f := ManifestFormat(strings.ToLower(s)); f {
	case ManifestYAML, ManifestJSON, ManifestResources:
		return f, nil
	case "":
		return ManifestYAML, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownManifestFormat, "unsupported manifest format"), "format", s)
	}
}

// FileName returns the default file name for the format.
func (f ManifestFormat) FileName() string {
	switch f {
	case ManifestJSON:
		return ManifestJSONFileName
	case ManifestResources:
		return ResourcesFileName
	default:
		return ManifestFileName
	}
}

// ManifestRecord describes one vendored package.
type ManifestRecord struct {
	URL     string `json:"url" yaml:"url"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Channel string `json:"channel" yaml:"channel"`
	Purl    string `json:"purl" yaml:"purl"`
}

// SubdirGroup holds the records of one (channel, subdir) pair.
// Placeholder groups have an empty RepodataURL and no entries.
type SubdirGroup struct {
	Subdir      string
	RepodataURL string
	Entries     []ManifestRecord
}

// IsPlaceholder reports whether no entry has been assigned to the group.
func (g *SubdirGroup) IsPlaceholder() bool {
	return len(g.Entries) == 0
}

// ChannelGroup holds the subdir groups of one channel in insertion order.
type ChannelGroup struct {
	Name    string
	Subdirs []*SubdirGroup
}

func (c *ChannelGroup) subdir(name string) *SubdirGroup {
	for _, g := range c.Subdirs {
		if g.Subdir == name {
			return g
		}
	}
	g := &SubdirGroup{Subdir: name}
	c.Subdirs = append(c.Subdirs, g)
	return g
}

// Manifest groups vendored packages by channel and subdir.
// Channel and subdir order is deterministic and preserved when serialized.
type Manifest struct {
	Channels []*ChannelGroup
}

func (m *Manifest) channel(name string) *ChannelGroup {
	for _, c := range m.Channels {
		if c.Name == name {
			return c
		}
	}
	c := &ChannelGroup{Name: name}
	m.Channels = append(m.Channels, c)
	return c
}

// Group returns the group for a channel and subdir, or nil.
func (m *Manifest) Group(channel, subdir string) *SubdirGroup {
	for _, c := range m.Channels {
		if c.Name != channel {
			continue
		}
		for _, g := range c.Subdirs {
			if g.Subdir == subdir {
				return g
			}
		}
	}
	return nil
}

// Groups returns every non-placeholder group in manifest order.
func (m *Manifest) Groups() []*SubdirGroup {
	var groups []*SubdirGroup
	for _, c := range m.Channels {
		for _, g := range c.Subdirs {
			if !g.IsPlaceholder() {
				groups = append(groups, g)
			}
		}
	}
	return groups
}

// Len returns the number of records across all groups.
func (m *Manifest) Len() int {
	n := 0
	for _, g := range m.Groups() {
		n += len(g.Entries)
	}
	return n
}

type manifestConfig struct {
	channels []string
	platform PlatformTag
}

// ManifestOption configures BuildManifest.
type ManifestOption func(*manifestConfig)

// WithChannels seeds the manifest with the environment's channels, each with
// placeholder groups for platform and noarch, so channel order follows the
// environment file and channels without packages still appear.
func WithChannels(channels []string, platform PlatformTag) ManifestOption {
	return func(c *manifestConfig) {
		c.channels = channels
		c.platform = platform
	}
}

// BuildManifest groups fetch entries by channel and subdir.
// Every entry yields exactly one record; duplicates are kept.
func BuildManifest(entries []FetchEntry, opts ...ManifestOption) *Manifest {
	cfg := &manifestConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	m := &Manifest{}
	for _, ch := range cfg.channels {
		if ch == NoDefaultsChannel {
			continue
		}
		group := m.channel(ShortChannelName(ch))
		if cfg.platform != "" {
			group.subdir(string(cfg.platform))
		}
		group.subdir(string(NoarchPlatform))
	}

	for _, entry := range entries {
		ref := ResolveChannel(entry)
		group := m.channel(ref.Name).subdir(ref.Subdir)
		group.RepodataURL = ref.RepodataURL()
		group.Entries = append(group.Entries, ManifestRecord{
			URL:     entry.URL,
			Name:    entry.Name,
			Version: entry.Version,
			Channel: entry.Channel,
			Purl:    Purl(entry),
		})
	}

	return m
}

// Purl returns the package URL of an entry. The download URL is embedded verbatim.
func Purl(entry FetchEntry) string {
	return "pkg:conda/" + entry.Name + "@" + entry.Version + "?url=" + entry.URL
}

// ChannelRef locates an entry's channel.
type ChannelRef struct {
	// Name is the short channel name, e.g. "conda-forge" or "pkgs/main".
	Name string
	// BaseURL is the channel URL without subdir.
	BaseURL string
	Subdir  string
}

// SubdirURL returns the channel URL including the subdir.
// Without a base URL the channel name stands in for it.
func (r ChannelRef) SubdirURL() string {
	base := r.BaseURL
	if base == "" {
		base = r.Name
	}
	if base == "" {
		return r.Subdir
	}
	return base + "/" + r.Subdir
}

// RepodataURL returns the location of the subdir's repodata.json.
func (r ChannelRef) RepodataURL() string {
	return r.SubdirURL() + "/" + RepodataFileName
}

// ResolveChannel derives the channel name, base URL and subdir of an entry.
// Solvers report the channel either as a full URL that may include the subdir
// or as a bare name; in the latter case the base is taken from the package URL.
func ResolveChannel(entry FetchEntry) ChannelRef {
	ref := ChannelRef{Subdir: entry.Subdir}

	if u, ok := parseRemote(entry.Channel); ok {
		segs := pathSegments(u.Path)
		if n := len(segs); n > 0 {
			last := segs[n-1]
			if ref.Subdir == "" && isSubdir(last) {
				ref.Subdir = last
			}
			if n > 1 && last == ref.Subdir {
				segs = segs[:n-1]
			}
		}
		ref.Name = strings.Join(segs, "/")
		ref.BaseURL = joinBase(u, segs)
		return ref
	}

	ref.Name = strings.Trim(entry.Channel, "/")
	if u, ok := parseRemote(entry.URL); ok {
		segs := pathSegments(u.Path)
		if n := len(segs); n > 1 {
			if ref.Subdir == "" {
				ref.Subdir = segs[n-2]
			}
			segs = segs[:n-2]
		}
		ref.BaseURL = joinBase(u, segs)
		if ref.Name == "" {
			ref.Name = strings.Join(segs, "/")
		}
	}

	return ref
}

// ShortChannelName reduces a channel URL to its path; bare names pass through.
func ShortChannelName(channel string) string {
	if u, ok := parseRemote(channel); ok {
		segs := pathSegments(u.Path)
		if n := len(segs); n > 1 && isSubdir(segs[n-1]) {
			segs = segs[:n-1]
		}
		return strings.Join(segs, "/")
	}
	return strings.Trim(channel, "/")
}

func parseRemote(raw string) (*url.URL, bool) {
	if !strings.Contains(raw, "://") {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}

func pathSegments(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func joinBase(u *url.URL, segs []string) string {
	base := url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/" + strings.Join(segs, "/")}
	return strings.TrimSuffix(base.String(), "/")
}

var subdirFamilies = []string{"linux-", "osx-", "win-", "zos-", "emscripten-", "wasi-"}

func isSubdir(s string) bool {
	if s == string(NoarchPlatform) {
		return true
	}
	for _, family := range subdirFamilies {
		if strings.HasPrefix(s, family) {
			return true
		}
	}
	return false
}

// Resource is a flat manifest item carrying the digest used to validate it.
type Resource struct {
	URL        string     `json:"url" yaml:"url"`
	Name       string     `json:"name" yaml:"name"`
	Validation Validation `json:"validation" yaml:"validation"`
}

// Validation names the digest algorithm and expected value of a resource.
type Validation struct {
	Type  string `json:"type" yaml:"type"`
	Value string `json:"value" yaml:"value"`
}

// BuildResources lists every entry as a resource keyed by file name.
func BuildResources(entries []FetchEntry) []Resource {
	resources := make([]Resource, 0, len(entries))
	for _, e := range entries {
		resources = append(resources, Resource{
			URL:  e.URL,
			Name: e.Filename,
			Validation: Validation{
				Type:  "sha256",
				Value: e.SHA256,
			},
		})
	}
	return resources
}

// Provenance records how a vendored channel was produced.
type Provenance struct {
	Environment    string      `json:"environment" yaml:"environment"`
	Channels       []string    `json:"channels" yaml:"channels"`
	Specs          []string    `json:"specs" yaml:"specs"`
	Platform       PlatformTag `json:"platform" yaml:"platform"`
	Solver         string      `json:"solver" yaml:"solver"`
	Fingerprint    string      `json:"fingerprint" yaml:"fingerprint"`
	Artifacts      int         `json:"artifacts" yaml:"artifacts"`
	ManifestSHA256 string      `json:"manifest_sha256,omitempty" yaml:"manifest_sha256,omitempty"`
}
