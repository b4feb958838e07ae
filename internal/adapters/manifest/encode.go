package manifest

import (
	"bytes"
	"encoding/json"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// resourcesDocument is the persisted form of the resources format.
type resourcesDocument struct {
	Resources []domain.Resource `yaml:"resources"`
}

// manifestNode builds the ordered document
// {channel: {subdir: {repodata_url, entries}}}. Placeholder groups are
// written with an empty list for both keys.
func manifestNode(m *domain.Manifest) (*yaml.Node, error) {
	root := mapping()
	for _, ch := range m.Channels {
		subdirs := mapping()
		for _, g := range ch.Subdirs {
			group := mapping()

			if g.IsPlaceholder() {
				addPair(group, "repodata_url", emptySequence())
				addPair(group, "entries", emptySequence())
			} else {
				entries := &yaml.Node{}
				if err := entries.Encode(g.Entries); err != nil {
					return nil, zerr.Wrap(err, "failed to encode manifest entries")
				}
				addPair(group, "repodata_url", str(g.RepodataURL))
				addPair(group, "entries", entries)
			}

			addPair(subdirs, g.Subdir, group)
		}
		addPair(root, ch.Name, subdirs)
	}
	return root, nil
}

func resourcesNode(resources []domain.Resource) (*yaml.Node, error) {
	if resources == nil {
		resources = []domain.Resource{}
	}
	n := &yaml.Node{}
	if err := n.Encode(resourcesDocument{Resources: resources}); err != nil {
		return nil, zerr.Wrap(err, "failed to encode resources")
	}
	return n, nil
}

func mapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func emptySequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func addPair(m *yaml.Node, key string, value *yaml.Node) {
	m.Content = append(m.Content, str(key), value)
}

func encodeYAML(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, zerr.Wrap(err, "failed to encode yaml")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to encode yaml")
	}
	return buf.Bytes(), nil
}

// encodeJSON writes n as compact JSON, keeping mapping order.
func encodeJSON(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}
		return writeJSON(buf, n.Content[0])
	case yaml.AliasNode:
		return writeJSON(buf, n.Alias)
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return zerr.Wrap(err, "failed to decode scalar")
		}
		return writeScalar(buf, v)
	}
	return nil
}

func writeScalar(buf *bytes.Buffer, v any) error {
	var scalar bytes.Buffer
	enc := json.NewEncoder(&scalar)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode json value")
	}
	buf.Write(bytes.TrimSuffix(scalar.Bytes(), []byte("\n")))
	return nil
}
