package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/user/newsscrape-service/internal/entity"
	"github.com/user/newsscrape-service/internal/repository"
)

// RunRepoImpl persists scrape runs in the scrape_runs table.
type RunRepoImpl struct {
	db PgxIface
}

// NewRunRepo creates a new instance of RunRepoImpl.
func NewRunRepo(db PgxIface) *RunRepoImpl {
	return &RunRepoImpl{db: db}
}

const insertRunQuery = `
		INSERT INTO scrape_runs (id, status, sources, keywords, progress, message, article_count, document_id, document_url, error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`

func (r *RunRepoImpl) Create(ctx context.Context, run *entity.ScrapeRun) error {
	sourcesJSON, err := json.Marshal(run.Sources)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, insertRunQuery,
		run.ID,
		string(run.Status),
		sourcesJSON,
		run.Keywords,
		run.Progress,
		run.Message,
		run.ArticleCount,
		run.DocumentID,
		run.DocumentURL,
		run.Error,
		run.CreatedAt,
		run.UpdatedAt,
	)
	return err
}

const updateRunQuery = `
		UPDATE scrape_runs SET
			status = $2,
			progress = $3,
			message = $4,
			article_count = $5,
			document_id = $6,
			document_url = $7,
			error = $8,
			updated_at = $9
		WHERE id = $1;
	`

func (r *RunRepoImpl) Update(ctx context.Context, run *entity.ScrapeRun) error {
	tag, err := r.db.Exec(ctx, updateRunQuery,
		run.ID,
		string(run.Status),
		run.Progress,
		run.Message,
		run.ArticleCount,
		run.DocumentID,
		run.DocumentURL,
		run.Error,
		run.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s: %w", run.ID, repository.ErrNotFound)
	}
	return nil
}

const findRunQuery = `
		SELECT id, status, sources, keywords, progress, message, article_count, document_id, document_url, error, created_at, updated_at
		FROM scrape_runs
		WHERE id = $1;
	`

func (r *RunRepoImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.ScrapeRun, error) {
	var (
		run         entity.ScrapeRun
		status      string
		sourcesJSON []byte
	)
	err := r.db.QueryRow(ctx, findRunQuery, id).Scan(
		&run.ID,
		&status,
		&sourcesJSON,
		&run.Keywords,
		&run.Progress,
		&run.Message,
		&run.ArticleCount,
		&run.DocumentID,
		&run.DocumentURL,
		&run.Error,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}

	run.Status = entity.RunStatus(status)
	if err := json.Unmarshal(sourcesJSON, &run.Sources); err != nil {
		return nil, fmt.Errorf("decode sources of run %s: %w", id, err)
	}
	return &run, nil
}
