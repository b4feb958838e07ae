package domain

import "path/filepath"

const (
	// ManifestFileName is the name of the vendored channel manifest.
	ManifestFileName = "vendor_manifest.yaml"

	// ManifestJSONFileName is the name of the manifest when written as JSON.
	ManifestJSONFileName = "vendor_manifest.json"

	// ResourcesFileName is the name of the resources manifest.
	ResourcesFileName = "vendor_resources.yaml"

	// ProvenanceFileName is the name of the solve provenance record.
	ProvenanceFileName = "vendor_provenance.yaml"

	// RepodataFileName is the name of a subdir's package index.
	RepodataFileName = "repodata.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ChannelLayout is the on-disk structure of a vendored channel.
type ChannelLayout struct {
	// Root is {output}/{environment name}.
	Root        string
	Platform    PlatformTag
	PlatformDir string
	NoarchDir   string
}

// NewChannelLayout computes the layout paths without touching the filesystem.
func NewChannelLayout(outputRoot, environmentName string, platform PlatformTag) *ChannelLayout {
	root := filepath.Join(outputRoot, environmentName)
	return &ChannelLayout{
		Root:        root,
		Platform:    platform,
		PlatformDir: filepath.Join(root, string(platform)),
		NoarchDir:   filepath.Join(root, string(NoarchPlatform)),
	}
}

// DirFor returns the subdir an entry is written to. Only noarch entries go to
// the noarch directory; everything else lands in the platform directory.
func (l *ChannelLayout) DirFor(entry FetchEntry) string {
	if entry.IsNoarch() {
		return l.NoarchDir
	}
	return l.PlatformDir
}

// PathFor returns the destination file path for an entry.
func (l *ChannelLayout) PathFor(entry FetchEntry) string {
	return filepath.Join(l.DirFor(entry), filepath.Base(entry.Filename))
}

// ManifestPath returns where the manifest of the given format is stored.
func (l *ChannelLayout) ManifestPath(format ManifestFormat) string {
	return filepath.Join(l.Root, format.FileName())
}

// ProvenancePath returns where the provenance record is stored.
func (l *ChannelLayout) ProvenancePath() string {
	return filepath.Join(l.Root, ProvenanceFileName)
}
