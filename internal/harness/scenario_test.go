package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidScenario(t *testing.T) {
	path := writeScenario(t, `
name: sample
items: [a, b]
decisions: [pivot]
expect:
  status: done
  order: [a, b]
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, []string{"a", "b"}, s.Items)
	assert.Equal(t, []string{"pivot"}, s.Decisions)
	assert.Equal(t, "done", s.Expect.Status)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeScenario(t, "items: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       Scenario
		wantErr string
	}{
		{
			name:    "no name",
			s:       Scenario{Items: []string{"a"}},
			wantErr: "no name",
		},
		{
			name: "decisions and ranking together",
			s: Scenario{
				Name:      "x",
				Items:     []string{"a", "b"},
				Decisions: []string{"pivot"},
				Ranking:   []string{"a", "b"},
			},
			wantErr: "mutually exclusive",
		},
		{
			name:    "items without answers",
			s:       Scenario{Name: "x", Items: []string{"a", "b"}},
			wantErr: "need either decisions or a ranking",
		},
		{
			name: "ranking wrong length",
			s: Scenario{
				Name:    "x",
				Items:   []string{"a", "b"},
				Ranking: []string{"a"},
			},
			wantErr: "ranking has 1 entries",
		},
		{
			name: "ranking not a permutation",
			s: Scenario{
				Name:    "x",
				Items:   []string{"a", "b"},
				Ranking: []string{"a", "a"},
			},
			wantErr: "not an item",
		},
		{
			name: "degenerate needs no answers",
			s:    Scenario{Name: "x", Items: []string{"a"}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
