package review

import (
	"context"
	"time"
)

// Archive is one finished review persisted for audit.
type Archive struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	SessionID      string    `json:"session_id"`
	ImageURL       string    `json:"image_url"`
	ReportURL      string    `json:"report_url"`
	ReportJSON     string    `json:"report_json"`
	Score          float64   `json:"score"`
	ItemsToAddress int       `json:"items_to_address"`
	Release        string    `json:"release"`
	CreatedAt      time.Time `json:"created_at"`
}

// Repository port (persistence untuk arsip review)
type Repository interface {
	Save(ctx context.Context, a *Archive) error
	Get(ctx context.Context, tenant, id string) (*Archive, error)
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Archive, error)
	LatestBySession(ctx context.Context, tenant, sessionID string) (*Archive, error)
}

// ArtifactStore port (penyimpanan gambar dan laporan)
type ArtifactStore interface {
	UploadBytes(ctx context.Context, data []byte, key, contentType string) (string, error)
}

// ReportRenderer turns a projection into a printable document.
type ReportRenderer interface {
	Render(data ReportData) ([]byte, error)
}

// ReportData is everything the renderer needs for one document.
type ReportData struct {
	SessionID   string
	TenantID    string
	ImageURL    string
	GeneratedAt time.Time
	Projection  Projection
}
