package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSources(t *testing.T) {
	doc := `
keywords: [election, budget]
sources:
  - name: BBC
    urls: [https://www.bbc.com/news]
  - name: Reuters
    urls: [https://www.reuters.com/world/]
    enabled: false
`
	path := filepath.Join(t.TempDir(), "sources.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	file, err := LoadSources(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"election", "budget"}, file.Keywords)
	require.Len(t, file.Sources, 2)
	assert.Equal(t, "BBC", file.Sources[0].Name)
	assert.True(t, file.Sources[0].Enabled)
	assert.Equal(t, []string{"https://www.bbc.com/news"}, file.Sources[0].URLs)
	assert.False(t, file.Sources[1].Enabled)
}

func TestParseSources_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "keywords: []\n", ErrNoSources},
		{"missing name", "sources:\n  - urls: [https://a.com]\n", ErrSourceName},
		{"duplicate", "sources:\n  - name: A\n  - name: A\n", ErrDuplicateName},
		{"relative url", "sources:\n  - name: A\n    urls: [/news]\n", ErrSourceURL},
		{"ftp url", "sources:\n  - name: A\n    urls: [ftp://a.com/x]\n", ErrSourceURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSources([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadSources_MissingFile(t *testing.T) {
	_, err := LoadSources(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
