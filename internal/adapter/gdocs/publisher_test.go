package gdocs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

func sampleReport() *entity.ReportRequest {
	return &entity.ReportRequest{
		Title: "News Scrape Report - Tuesday, March 5, 2024 • 02:07:09 PM",
		Text:  "News Scraper Report\n1. Fed Raises Rates\nURL: https://example.com/a\n\n",
		Bold:  []entity.TextRange{{Start: 21, End: 41}},
		Links: []entity.TextRange{{Start: 46, End: 67, URL: "https://example.com/a"}},
	}
}

func TestPublish_CreatesAndFormatsDocument(t *testing.T) {
	var batch batchUpdateRequest
	var authHeaders []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/v1/documents":
			var body createRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, sampleReport().Title, body.Title)
			_, _ = w.Write([]byte(`{"documentId":"doc-123","title":"x"}`))
		case "/v1/documents/doc-123:batchUpdate":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
			_, _ = w.Write([]byte(`{"documentId":"doc-123","replies":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	doc, err := NewPublisher(srv.URL, srv.Client(), zap.NewNop()).Publish(context.Background(), sampleReport(), "tok")
	require.NoError(t, err)

	assert.Equal(t, "doc-123", doc.ID)
	assert.Equal(t, "https://docs.google.com/document/d/doc-123/edit", doc.URL)
	assert.Equal(t, []string{"Bearer tok", "Bearer tok"}, authHeaders)

	require.Len(t, batch.Requests, 3)
	require.NotNil(t, batch.Requests[0].InsertText)
	assert.Equal(t, 1, batch.Requests[0].InsertText.Location.Index)
	assert.Equal(t, sampleReport().Text, batch.Requests[0].InsertText.Text)

	bold := batch.Requests[1].UpdateTextStyle
	require.NotNil(t, bold)
	assert.Equal(t, textRange{StartIndex: 21, EndIndex: 41}, bold.Range)
	assert.True(t, bold.TextStyle.Bold)
	assert.Equal(t, "bold", bold.Fields)

	linkStyle := batch.Requests[2].UpdateTextStyle
	require.NotNil(t, linkStyle)
	assert.Equal(t, textRange{StartIndex: 46, EndIndex: 67}, linkStyle.Range)
	require.NotNil(t, linkStyle.TextStyle.Link)
	assert.Equal(t, "https://example.com/a", linkStyle.TextStyle.Link.URL)
	assert.Equal(t, "link", linkStyle.Fields)
}

func TestPublish_Errors(t *testing.T) {
	tests := []struct {
		name       string
		createCode int
		createBody string
		batchCode  int
		batchBody  string
		want       error
	}{
		{"expired token", http.StatusUnauthorized, `{"error":{"code":401}}`, 0, "", repository.ErrPublishAuth},
		{"forbidden", http.StatusForbidden, `{"error":{"code":403}}`, 0, "", repository.ErrPublishAuth},
		{"create failure", http.StatusInternalServerError, `{"error":{}}`, 0, "", repository.ErrDocumentCreate},
		{"missing id", http.StatusOK, `{}`, 0, "", repository.ErrDocumentCreate},
		{"batch failure", http.StatusOK, `{"documentId":"d"}`, http.StatusBadRequest, `{"error":{"code":400}}`, repository.ErrDocumentFormat},
		{"batch error body", http.StatusOK, `{"documentId":"d"}`, http.StatusOK, `{"error":{"message":"bad range"}}`, repository.ErrDocumentFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/v1/documents" {
					w.WriteHeader(tt.createCode)
					_, _ = w.Write([]byte(tt.createBody))
					return
				}
				w.WriteHeader(tt.batchCode)
				_, _ = w.Write([]byte(tt.batchBody))
			}))
			defer srv.Close()

			_, err := NewPublisher(srv.URL, srv.Client(), zap.NewNop()).Publish(context.Background(), sampleReport(), "tok")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStaticToken(t *testing.T) {
	tok, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	_, err = StaticToken("").Token(context.Background())
	assert.ErrorIs(t, err, repository.ErrCredentialUnavailable)
}
