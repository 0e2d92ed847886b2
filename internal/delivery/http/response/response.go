package response

import (
	"time"

	"github.com/user/newsscrape-service/internal/entity"
)

type SubmitRunResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	RunID   string `json:"run_id"`
}

// RunResponse is a DTO for a scrape run, mirroring entity.ScrapeRun.
type RunResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"` // "idle", "running", "aggregating", "done", "failed"
	Progress     int       `json:"progress"`
	Message      string    `json:"message,omitempty"`
	Sources      []string  `json:"sources"`
	Keywords     []string  `json:"keywords"`
	ArticleCount int       `json:"article_count"`
	DocumentID   string    `json:"document_id,omitempty"`
	DocumentURL  string    `json:"document_url,omitempty"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewRunResponse(run *entity.ScrapeRun) RunResponse {
	names := make([]string, len(run.Sources))
	for i, s := range run.Sources {
		names[i] = s.Name
	}
	keywords := run.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return RunResponse{
		ID:           run.ID.String(),
		Status:       string(run.Status),
		Progress:     run.Progress,
		Message:      run.Message,
		Sources:      names,
		Keywords:     keywords,
		ArticleCount: run.ArticleCount,
		DocumentID:   run.DocumentID,
		DocumentURL:  run.DocumentURL,
		Error:        run.Error,
		CreatedAt:    run.CreatedAt,
		UpdatedAt:    run.UpdatedAt,
	}
}

type ArticleResponse struct {
	Source    string    `json:"source"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	ScrapedAt time.Time `json:"scraped_at"`
}

func NewArticleResponses(articles []entity.Article) []ArticleResponse {
	out := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		out[i] = ArticleResponse{Source: a.Source, Title: a.Title, URL: a.URL, Content: a.Content, ScrapedAt: a.Timestamp}
	}
	return out
}

type SourceResponse struct {
	Name    string   `json:"name"`
	URLs    []string `json:"urls"`
	Enabled bool     `json:"enabled"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
