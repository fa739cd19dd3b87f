package render

import (
	"encoding/json"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/kk/cmd/kk/internal/listing"
)

// document is the structured form of one listing.
type document struct {
	Path       string     `json:"path" yaml:"path"`
	Entries    []entryDoc `json:"entries" yaml:"entries"`
	TotalSize  int64      `json:"total_size" yaml:"total_size"`
	EntryCount int        `json:"entry_count" yaml:"entry_count"`
}

type entryDoc struct {
	Name       string `json:"name" yaml:"name"`
	Kind       string `json:"kind" yaml:"kind"`
	Mode       string `json:"mode" yaml:"mode"`
	Size       int64  `json:"size" yaml:"size"`
	ModifiedAt string `json:"modified_at" yaml:"modified_at"`
	Owner      string `json:"owner" yaml:"owner"`
	Group      string `json:"group" yaml:"group"`
	Links      uint64 `json:"links" yaml:"links"`
	Target     string `json:"target,omitempty" yaml:"target,omitempty"`
	VCS        string `json:"vcs,omitempty" yaml:"vcs,omitempty"`
}

func documents(listings []*listing.Listing, opts Options) []document {
	loc := opts.location()
	docs := make([]document, 0, len(listings))
	for _, l := range listings {
		doc := document{
			Path:       l.Path,
			Entries:    make([]entryDoc, 0, len(l.Entries)),
			TotalSize:  l.TotalSize,
			EntryCount: l.EntryCount,
		}
		for _, e := range l.Entries {
			ed := entryDoc{
				Name:       e.Name,
				Kind:       e.Kind.String(),
				Mode:       FormatMode(e.Mode),
				Size:       e.Size,
				ModifiedAt: e.ModTime.In(loc).Format(time.RFC3339),
				Owner:      e.Owner,
				Group:      e.Group,
				Links:      e.Links,
				Target:     e.Target,
			}
			if e.VCS.IsEnabled() {
				ed.VCS = e.VCS.String()
			}
			doc.Entries = append(doc.Entries, ed)
		}
		docs = append(docs, doc)
	}
	return docs
}

func writeJSON(w io.Writer, listings []*listing.Listing, opts Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(documents(listings, opts))
}

func writeYAML(w io.Writer, listings []*listing.Listing, opts Options) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(documents(listings, opts)); err != nil {
		return err
	}
	return enc.Close()
}
