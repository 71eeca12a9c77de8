// Package item defines the rankable payload carried through the engine.
//
// The sorting engine treats items as opaque values; this package only fixes
// their identity. Descriptions are normalized to NFC so that the same text
// entered through different sources (terminal input, YAML, CUE) compares
// equal, and blank descriptions are rejected at construction time.
package item

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Item is a single entry in a ranking run.
type Item struct {
	// Description is the caller-supplied text, NFC-normalized and trimmed.
	Description string `json:"description" yaml:"description"`
}

// New builds an Item from raw text.
//
// The text is normalized to Unicode NFC and stripped of surrounding
// whitespace. Returns an error if nothing remains - a blank item cannot be
// presented in a comparison.
func New(description string) (Item, error) {
	d := strings.TrimSpace(norm.NFC.String(description))
	if d == "" {
		return Item{}, fmt.Errorf("item description is blank")
	}
	return Item{Description: d}, nil
}

// FromDescriptions builds an item list from raw texts, preserving order.
// Any blank entry fails the whole list with its position in the error.
func FromDescriptions(descriptions []string) ([]Item, error) {
	items := make([]Item, 0, len(descriptions))
	for i, d := range descriptions {
		it, err := New(d)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Descriptions flattens a list back to its texts, preserving order.
func Descriptions(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Description
	}
	return out
}
