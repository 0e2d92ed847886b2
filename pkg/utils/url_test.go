package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashURL_Stable(t *testing.T) {
	a := HashURL("https://example.com/a")
	assert.Equal(t, a, HashURL("https://example.com/a"))
	assert.NotEqual(t, a, HashURL("https://example.com/b"))
	assert.Len(t, a, 64)
}

func TestToAbsoluteURL(t *testing.T) {
	base, err := url.Parse("https://news.example.com/world/")
	require.NoError(t, err)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"relative path", "story-1", "https://news.example.com/world/story-1"},
		{"root relative", "/politics/vote", "https://news.example.com/politics/vote"},
		{"absolute", "https://other.example.org/x", "https://other.example.org/x"},
		{"fragment dropped", "/a#comments", "https://news.example.com/a"},
		{"protocol relative", "//cdn.example.com/p", "https://cdn.example.com/p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToAbsoluteURL(base, tt.href)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsHTTP(t *testing.T) {
	assert.True(t, IsHTTP("https://example.com/a"))
	assert.True(t, IsHTTP("http://example.com"))
	assert.False(t, IsHTTP("javascript:void(0)"))
	assert.False(t, IsHTTP("mailto:desk@example.com"))
	assert.False(t, IsHTTP("/relative"))
}

func TestDomain(t *testing.T) {
	assert.Equal(t, "www.bbc.co.uk", Domain("https://WWW.BBC.co.uk:443/news"))
	assert.Equal(t, "", Domain("::not a url"))
}
