package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/user/newsscrape-service/internal/entity"
)

var articleColumns = []string{"run_id", "position", "source", "title", "url", "content", "scraped_at"}

// ArticleRepoImpl archives published articles in the scraped_articles table.
type ArticleRepoImpl struct {
	db PgxIface
}

// NewArticleRepo creates a new instance of ArticleRepoImpl.
func NewArticleRepo(db PgxIface) *ArticleRepoImpl {
	return &ArticleRepoImpl{db: db}
}

// SaveBatch replaces the run's archived articles within a single transaction.
func (r *ArticleRepoImpl) SaveBatch(ctx context.Context, runID uuid.UUID, articles []entity.Article) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM scraped_articles WHERE run_id = $1;`, runID); err != nil {
		return err
	}

	rows := make([][]any, len(articles))
	for i, a := range articles {
		rows[i] = []any{runID, i, a.Source, a.Title, a.URL, a.Content, a.Timestamp}
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"scraped_articles"}, articleColumns, pgx.CopyFromRows(rows)); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

const findArticlesQuery = `
		SELECT source, title, url, content, scraped_at
		FROM scraped_articles
		WHERE run_id = $1
		ORDER BY position ASC;
	`

// FindByRun returns a run's archived articles in report order.
func (r *ArticleRepoImpl) FindByRun(ctx context.Context, runID uuid.UUID) ([]entity.Article, error) {
	rows, err := r.db.Query(ctx, findArticlesQuery, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []entity.Article
	for rows.Next() {
		var a entity.Article
		if err := rows.Scan(&a.Source, &a.Title, &a.URL, &a.Content, &a.Timestamp); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}
