package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/report"
)

func TestPublish_WritesPDF(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	articles := []entity.Article{
		{Source: "Reuters", Title: "Fed raises rates again", URL: "https://example.com/fed", Content: "Rates went up."},
		{Source: "BBC", Title: "Storm hits coast – “live”", URL: "https://example.com/storm", Content: "Winds were strong."},
	}
	dir := filepath.Join(t.TempDir(), "reports")
	p := NewPublisher(dir, zap.NewNop())
	p.now = func() time.Time { return now }

	doc, err := p.Publish(context.Background(), report.Compile(articles, now), "")
	require.NoError(t, err)

	assert.Contains(t, doc.ID, "news-scrape-report-20240305-140709-")
	assert.Equal(t, ".pdf", filepath.Ext(doc.ID))
	assert.Contains(t, doc.URL, "file://")

	data, err := os.ReadFile(filepath.Join(dir, doc.ID))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Contains(t, string(data), "https://example.com/fed")
}

func TestPublish_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPublisher(t.TempDir(), zap.NewNop()).Publish(ctx, &entity.ReportRequest{Title: "x"}, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoveredAndLinkIn(t *testing.T) {
	bold := []entity.TextRange{{Start: 10, End: 20}}
	assert.True(t, covered(bold, 10, 19))
	assert.False(t, covered(bold, 5, 19))
	assert.False(t, covered(bold, 12, 12))

	links := []entity.TextRange{{Start: 30, End: 40, URL: "https://a"}}
	l, ok := linkIn(links, 25, 40)
	require.True(t, ok)
	assert.Equal(t, "https://a", l.URL)
	_, ok = linkIn(links, 40, 50)
	assert.False(t, ok)
}
