package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsArticlePage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want bool
	}{
		{"article element", `<html><body><article><p>x</p></article></body></html>`, true},
		{"story body class", `<html><body><div class="story-body">x</div></body></html>`, true},
		{"role attribute", `<html><body><main role="article">x</main></body></html>`, true},
		{"listing", `<html><body><ul><li><a href="/a">a</a></li></ul></body></html>`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsArticlePage(mustDoc(t, tt.html)))
		})
	}
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Main Headline", ExtractTitle(mustDoc(t, `<html><head><title>Doc</title></head><body><h1> Main
		Headline </h1></body></html>`)))
	assert.Equal(t, "Doc Title", ExtractTitle(mustDoc(t, `<html><head><title>Doc Title</title></head><body></body></html>`)))
	assert.Equal(t, "News Article", ExtractTitle(mustDoc(t, `<html><body><p>x</p></body></html>`)))
}
