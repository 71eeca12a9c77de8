package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ranked/internal/item"
)

// itemListSchema is the CUE schema an item list file must satisfy.
// Getting schema errors at load time beats getting half a run in the store.
const itemListSchema = `
{
	name?: string
	items: [...string]
}
`

// LoadItems reads an item list from path. The format is chosen by
// extension:
//
//	.cue         CUE file satisfying {name?: string, items: [...string]}
//	.yaml, .yml  YAML mapping with an "items" list
//	anything else: plain text, one description per line; blank lines and
//	lines starting with '#' are skipped
//
// Descriptions are normalized and validated by the item package, so a
// blank entry fails the load regardless of format.
func LoadItems(path string) ([]item.Item, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return loadCUE(path)
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadText(path)
	}
}

// loadText reads one description per line.
func loadText(path string) ([]item.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open item list: %w", err)
	}
	defer f.Close()

	var descriptions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		descriptions = append(descriptions, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read item list %s: %w", path, err)
	}

	items, err := item.FromDescriptions(descriptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// yamlList is the YAML item list file layout.
type yamlList struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// loadYAML reads an "items" list from a YAML mapping.
func loadYAML(path string) ([]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open item list: %w", err)
	}

	var list yamlList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	items, err := item.FromDescriptions(list.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}

// loadCUE evaluates a CUE file against the item-list schema and extracts
// the items field.
func loadCUE(path string) ([]item.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open item list: %w", err)
	}

	cuectx := cuecontext.New()
	schema := cuectx.CompileString(itemListSchema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile item-list schema: %w", err)
	}

	value := cuectx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	itemsValue := unified.LookupPath(cue.ParsePath("items"))
	iter, err := itemsValue.List()
	if err != nil {
		return nil, fmt.Errorf("%s: items is not a list: %w", path, err)
	}

	var descriptions []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, fmt.Errorf("%s: items[%d]: %w", path, len(descriptions), err)
		}
		descriptions = append(descriptions, s)
	}

	items, err := item.FromDescriptions(descriptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return items, nil
}
