package repository

import (
	"context"

	"github.com/user/newsscrape-service/internal/entity"
)

// Publisher turns a compiled report into a document somewhere.
type Publisher interface {
	Publish(ctx context.Context, req *entity.ReportRequest, credential string) (entity.PublishedDocument, error)
}

// CredentialProvider supplies the credential a Publisher needs.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}
