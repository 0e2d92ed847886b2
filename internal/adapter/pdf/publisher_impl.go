// Package pdf publishes reports as PDF files on local disk.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/report"
	"github.com/user/newsscrape-service/internal/repository"
)

const lineHeight = 5.5

// PublisherImpl writes each report to its own file under dir.
type PublisherImpl struct {
	dir    string
	logger *zap.Logger
	now    func() time.Time
}

func NewPublisher(dir string, logger *zap.Logger) *PublisherImpl {
	return &PublisherImpl{dir: dir, logger: logger, now: time.Now}
}

// Publish renders req and returns the file name as ID and a file:// URL.
// The credential is ignored.
func (p *PublisherImpl) Publish(ctx context.Context, req *entity.ReportRequest, _ string) (entity.PublishedDocument, error) {
	if err := ctx.Err(); err != nil {
		return entity.PublishedDocument{}, err
	}
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return entity.PublishedDocument{}, fmt.Errorf("%w: %v", repository.ErrDocumentCreate, err)
	}
	name := fmt.Sprintf("news-scrape-report-%s-%s.pdf", p.now().Format("20060102-150405"), uuid.NewString()[:8])
	path, err := filepath.Abs(filepath.Join(p.dir, name))
	if err != nil {
		return entity.PublishedDocument{}, fmt.Errorf("%w: %v", repository.ErrDocumentCreate, err)
	}

	doc := render(req)
	if err := doc.OutputFileAndClose(path); err != nil {
		return entity.PublishedDocument{}, fmt.Errorf("%w: %v", repository.ErrDocumentFormat, err)
	}

	p.logger.Info("pdf report written", zap.String("path", path), zap.Int("articles", len(req.Articles)))
	return entity.PublishedDocument{ID: name, URL: "file://" + filepath.ToSlash(path)}, nil
}

func render(req *entity.ReportRequest) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle(req.Title, true)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	offset := 1
	for _, line := range strings.SplitAfter(req.Text, "\n") {
		content := strings.TrimSuffix(line, "\n")
		units := utf16.Encode([]rune(content))
		start, end := offset, offset+len(units)

		style := ""
		if covered(req.Bold, start, end) {
			style = "B"
		}
		doc.SetFont("Arial", style, 10)

		if l, ok := linkIn(req.Links, start, end); ok && len(units) > 0 {
			from, to := l.Start-start, min(l.End-start, len(units))
			doc.Write(lineHeight, tr(string(utf16.Decode(units[:from]))))
			doc.SetTextColor(0, 0, 200)
			doc.WriteLinkString(lineHeight, tr(string(utf16.Decode(units[from:to]))), l.URL)
			doc.SetTextColor(0, 0, 0)
			doc.Write(lineHeight, tr(string(utf16.Decode(units[to:]))))
		} else if content != "" {
			doc.Write(lineHeight, tr(content))
		}
		if strings.HasSuffix(line, "\n") {
			doc.Ln(lineHeight)
		}
		offset += report.UTF16Len(line)
	}
	return doc
}

// covered reports whether a range spans the whole of [start, end).
func covered(ranges []entity.TextRange, start, end int) bool {
	if start == end {
		return false
	}
	for _, r := range ranges {
		if r.Start <= start && r.End >= end {
			return true
		}
	}
	return false
}

// linkIn returns the first link range that starts inside [start, end).
func linkIn(ranges []entity.TextRange, start, end int) (entity.TextRange, bool) {
	for _, r := range ranges {
		if r.Start >= start && r.Start < end {
			return r, true
		}
	}
	return entity.TextRange{}, false
}
