// Package gdocs publishes reports as Google Docs through the Docs REST API.
package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

const (
	DefaultEndpoint = "https://docs.googleapis.com"
	maxErrorBody    = 2048
)

// DocumentURL is where a user opens the document with the given ID.
func DocumentURL(id string) string {
	return "https://docs.google.com/document/d/" + id + "/edit"
}

type createRequest struct {
	Title string `json:"title"`
}

type createResponse struct {
	DocumentID string `json:"documentId"`
}

type location struct {
	Index int `json:"index"`
}

type insertText struct {
	Location location `json:"location"`
	Text     string   `json:"text"`
}

type textRange struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

type link struct {
	URL string `json:"url"`
}

type textStyle struct {
	Bold bool  `json:"bold,omitempty"`
	Link *link `json:"link,omitempty"`
}

type updateTextStyle struct {
	Range     textRange `json:"range"`
	TextStyle textStyle `json:"textStyle"`
	Fields    string    `json:"fields"`
}

type request struct {
	InsertText      *insertText      `json:"insertText,omitempty"`
	UpdateTextStyle *updateTextStyle `json:"updateTextStyle,omitempty"`
}

type batchUpdateRequest struct {
	Requests []request `json:"requests"`
}

type batchUpdateResponse struct {
	Error json.RawMessage `json:"error,omitempty"`
}

// PublisherImpl implements repository.Publisher against the Docs API.
type PublisherImpl struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewPublisher creates a publisher. An empty endpoint means DefaultEndpoint;
// a nil client gets a 30 second timeout.
func NewPublisher(endpoint string, client *http.Client, logger *zap.Logger) *PublisherImpl {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &PublisherImpl{endpoint: strings.TrimRight(endpoint, "/"), client: client, logger: logger}
}

// Publish creates a document titled req.Title, inserts req.Text and applies
// the bold and link ranges.
func (p *PublisherImpl) Publish(ctx context.Context, req *entity.ReportRequest, credential string) (entity.PublishedDocument, error) {
	var created createResponse
	status, body, err := p.post(ctx, "/v1/documents", credential, createRequest{Title: req.Title}, &created)
	if err != nil {
		return entity.PublishedDocument{}, fmt.Errorf("%w: %v", repository.ErrDocumentCreate, err)
	}
	if authFailure(status) {
		return entity.PublishedDocument{}, fmt.Errorf("%w: create returned %d: %s", repository.ErrPublishAuth, status, body)
	}
	if status/100 != 2 {
		return entity.PublishedDocument{}, fmt.Errorf("%w: status %d: %s", repository.ErrDocumentCreate, status, body)
	}
	if created.DocumentID == "" {
		return entity.PublishedDocument{}, fmt.Errorf("%w: no documentId in response: %s", repository.ErrDocumentCreate, body)
	}

	var updated batchUpdateResponse
	path := "/v1/documents/" + created.DocumentID + ":batchUpdate"
	status, body, err = p.post(ctx, path, credential, buildRequests(req), &updated)
	if err != nil {
		return entity.PublishedDocument{}, fmt.Errorf("%w: %v", repository.ErrDocumentFormat, err)
	}
	if authFailure(status) {
		return entity.PublishedDocument{}, fmt.Errorf("%w: batchUpdate returned %d: %s", repository.ErrPublishAuth, status, body)
	}
	if status/100 != 2 || len(updated.Error) > 0 {
		return entity.PublishedDocument{}, fmt.Errorf("%w: status %d: %s", repository.ErrDocumentFormat, status, body)
	}

	p.logger.Info("document created",
		zap.String("document_id", created.DocumentID),
		zap.Int("articles", len(req.Articles)),
	)
	return entity.PublishedDocument{ID: created.DocumentID, URL: DocumentURL(created.DocumentID)}, nil
}

func buildRequests(req *entity.ReportRequest) batchUpdateRequest {
	requests := make([]request, 0, 1+len(req.Bold)+len(req.Links))
	requests = append(requests, request{InsertText: &insertText{Location: location{Index: 1}, Text: req.Text}})
	for _, r := range req.Bold {
		requests = append(requests, request{UpdateTextStyle: &updateTextStyle{
			Range:     textRange{StartIndex: r.Start, EndIndex: r.End},
			TextStyle: textStyle{Bold: true},
			Fields:    "bold",
		}})
	}
	for _, r := range req.Links {
		requests = append(requests, request{UpdateTextStyle: &updateTextStyle{
			Range:     textRange{StartIndex: r.Start, EndIndex: r.End},
			TextStyle: textStyle{Link: &link{URL: r.URL}},
			Fields:    "link",
		}})
	}
	return batchUpdateRequest{Requests: requests}
}

// post sends a JSON body and decodes a 2xx JSON response into out. It returns
// the status and a truncated copy of the body for error messages.
func (p *PublisherImpl) post(ctx context.Context, path, credential string, in, out any) (int, string, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return 0, "", err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+credential)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, "", err
	}
	snippet := string(raw)
	if len(snippet) > maxErrorBody {
		snippet = snippet[:maxErrorBody]
	}
	if resp.StatusCode/100 == 2 && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, snippet, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, snippet, nil
}

func authFailure(status int) bool {
	return status == http.StatusUnauthorized || status == http.StatusForbidden
}
