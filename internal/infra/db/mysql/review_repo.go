package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
)

type ReviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Save inserts a review archive record (upsert by id)
func (r *ReviewRepository) Save(ctx context.Context, a *domain.Archive) error {
	const q = `
INSERT INTO creative_reviews
  (id, tenant_id, session_id, image_url, report_url, report_json, score, items_to_address, release_status, created_at)
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  image_url=VALUES(image_url), report_url=VALUES(report_url), report_json=VALUES(report_json),
  score=VALUES(score), items_to_address=VALUES(items_to_address), release_status=VALUES(release_status);
`
	tenant := stringOrDash(a.TenantID)
	session := stringOrDash(a.SessionID)
	report := a.ReportJSON
	if strings.TrimSpace(report) == "" {
		// report_json column requires valid JSON; use empty object
		report = "{}"
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, a.ID, tenant, session, a.ImageURL, a.ReportURL, report,
		a.Score, a.ItemsToAddress, a.Release, createdAt)
	return err
}

// Get returns one archive by id
func (r *ReviewRepository) Get(ctx context.Context, tenant, id string) (*domain.Archive, error) {
	const q = `
SELECT id, tenant_id, session_id, image_url, report_url, report_json, score, items_to_address, release_status, created_at
FROM creative_reviews
WHERE tenant_id=? AND id=?;
`
	return scanArchive(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Paginate returns a page of archives ordered by created_at desc
func (r *ReviewRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Archive, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, session_id, image_url, report_url, report_json, score, items_to_address, release_status, created_at
FROM creative_reviews
WHERE tenant_id=?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Archive
	for rows.Next() {
		var a domain.Archive
		var created time.Time
		if err := rows.Scan(&a.ID, &a.TenantID, &a.SessionID, &a.ImageURL, &a.ReportURL, &a.ReportJSON,
			&a.Score, &a.ItemsToAddress, &a.Release, &created); err != nil {
			return nil, err
		}
		a.CreatedAt = created
		out = append(out, &a)
	}
	return out, rows.Err()
}

// LatestBySession returns the newest archive for one session
func (r *ReviewRepository) LatestBySession(ctx context.Context, tenant, sessionID string) (*domain.Archive, error) {
	const q = `
SELECT id, tenant_id, session_id, image_url, report_url, report_json, score, items_to_address, release_status, created_at
FROM creative_reviews
WHERE tenant_id=? AND session_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;
`
	return scanArchive(r.db.QueryRowContext(ctx, q, tenant, sessionID))
}

func scanArchive(row *sql.Row) (*domain.Archive, error) {
	var a domain.Archive
	var created time.Time
	if err := row.Scan(&a.ID, &a.TenantID, &a.SessionID, &a.ImageURL, &a.ReportURL, &a.ReportJSON,
		&a.Score, &a.ItemsToAddress, &a.Release, &created); err != nil {
		return nil, err
	}
	a.CreatedAt = created
	return &a, nil
}
