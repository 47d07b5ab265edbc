package feedback

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/c2nes/alfred-time/internal/format"
)

type document struct {
	Items []documentItem `json:"items" yaml:"items"`
}

type documentItem struct {
	UID      int    `json:"uid" yaml:"uid"`
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	// Arg keeps its type, so the timestamp stays a number.
	Arg any `json:"arg" yaml:"arg"`
}

func newDocument(items []format.Item) document {
	doc := document{Items: make([]documentItem, 0, len(items))}
	for _, item := range items {
		doc.Items = append(doc.Items, documentItem{
			UID:      item.UID,
			Title:    item.Title,
			Subtitle: item.Subtitle,
			Arg:      item.Arg,
		})
	}
	return doc
}

// JSON writes {"items": [...]} for scripts.
type JSON struct{}

func (JSON) Emit(w io.Writer, items []format.Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newDocument(items))
}

type YAML struct{}

func (YAML) Emit(w io.Writer, items []format.Item) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newDocument(items)); err != nil {
		return err
	}
	return enc.Close()
}
