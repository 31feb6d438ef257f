package review

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domai "github.com/bryanwahyu/creative-qc/internal/domain/ai"
	domain "github.com/bryanwahyu/creative-qc/internal/domain/review"
)

var (
	ErrSessionNotFound  = errors.New("review session not found")
	ErrAnalysisInFlight = errors.New("analysis already in progress")
	ErrNotAnalyzed      = errors.New("session has not been analyzed yet")
	ErrCheckNotFound    = errors.New("check not found")
)

// Clock interface supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Config tunes analysis behavior per deployment.
type Config struct {
	SmilePolicy domain.SmilePolicy
	AITimeout   time.Duration
}

// Session holds all live state for one creative under review. All access
// goes through its mutex; the AI round-trip itself runs outside the lock.
type Session struct {
	mu sync.Mutex

	ID         string
	TenantID   string
	CreatedAt  time.Time
	Image      string // data URL, kept for reanalysis round-trips
	ImageURL   string
	Width      int
	Height     int
	Format     domain.Format
	VisualType domain.VisualType

	analyzing bool

	Result      *domain.AnalysisResult
	Overrides   map[string]bool
	Pending     domain.PendingSet
	Regions     map[string]domain.Region
	Interaction *domain.Interaction

	SHeightPct float64
	ClearSpace *domain.Region
	LogoBox    *domain.Region

	CriticalIssues  []string
	Recommendations []string
}

// Service implements use-cases untuk review session
// Service is designed to be used concurrently and is thread-safe
type Service struct {
	AI        domai.Client
	Repo      domain.Repository
	Artifacts domain.ArtifactStore
	Renderer  domain.ReportRenderer
	Clock     Clock
	Cfg       Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewService(client domai.Client, repo domain.Repository, artifacts domain.ArtifactStore, renderer domain.ReportRenderer, clock Clock, cfg Config) *Service {
	if cfg.SmilePolicy == "" {
		cfg.SmilePolicy = domain.SmileEither
	}
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = 60 * time.Second
	}
	return &Service{
		AI:        client,
		Repo:      repo,
		Artifacts: artifacts,
		Renderer:  renderer,
		Clock:     clock,
		Cfg:       cfg,
		sessions:  make(map[string]*Session),
	}
}

//
// ==== USE CASES ====
//

type StartCommand struct {
	TenantID   string
	Image      string // data URL
	Width      int
	Height     int
	Format     string // optional, autodetected from dimensions when empty
	VisualType string
}

// Start creates a session and runs the first full analysis. A failed first
// analysis discards the session; there is no prior state worth keeping.
func (s *Service) Start(ctx context.Context, cmd StartCommand) (*SessionView, error) {
	if cmd.TenantID == "" {
		return nil, fmt.Errorf("tenant is required")
	}
	if cmd.Image == "" {
		return nil, fmt.Errorf("image is required")
	}
	if cmd.Width <= 0 || cmd.Height <= 0 {
		return nil, fmt.Errorf("image dimensions are required")
	}

	format := domain.ParseFormat(cmd.Format)
	if format == "" {
		format = domain.DetectFormat(cmd.Width, cmd.Height)
	}

	sess := &Session{
		ID:          uuid.New().String(),
		TenantID:    cmd.TenantID,
		CreatedAt:   s.Clock.Now(),
		Image:       cmd.Image,
		Width:       cmd.Width,
		Height:      cmd.Height,
		Format:      format,
		VisualType:  domain.VisualType(cmd.VisualType),
		Overrides:   make(map[string]bool),
		Pending:     make(domain.PendingSet),
		Regions:     domain.EnsureRegions(nil),
		Interaction: domain.NewInteraction(),
	}

	if err := s.runFullAnalysis(ctx, sess); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	return s.view(sess), nil
}

// runFullAnalysis builds the session's first result. On success the AI's
// layout logo detection repositions the logo regions; manual state does not
// exist yet so nothing needs preserving.
func (s *Service) runFullAnalysis(ctx context.Context, sess *Session) error {
	analysis, err := s.callAI(ctx, sess, false)
	if err != nil {
		return err
	}

	bctx := s.buildContext(sess)
	if box := analysis.Layout.LayoutLogo.BoundingBox; box != nil {
		logo := domain.Region{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height, Label: "Layout Logo"}
		sess.LogoBox = &logo
		// Snap the logo regions onto the detected box so manual adjustment
		// starts from where the logo actually is.
		for _, id := range []string{domain.RegionLogoAlignment, domain.RegionLogoMinSize, domain.RegionLogoClearspace} {
			// Resize before translating; clamping uses the current width.
			r := sess.Regions[id]
			r = r.ResizedTo(logo.Width, logo.Height)
			r = r.TranslatedTo(logo.X, logo.Y)
			sess.Regions[id] = r
		}
		bctx.LogoBox = sess.LogoBox
	}

	sess.Result = domain.BuildChecks(analysis, bctx)
	sess.Pending = make(domain.PendingSet)
	sess.CriticalIssues = analysis.CriticalIssues
	sess.Recommendations = analysis.Recommendations
	return nil
}

// Reanalyze runs a fresh AI pass and reconciles it with the session's
// manual state. Only one reanalysis may be in flight per session; a failed
// round-trip leaves the session exactly as it was.
func (s *Service) Reanalyze(ctx context.Context, tenant, id string) (*SessionView, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.analyzing {
		sess.mu.Unlock()
		return nil, ErrAnalysisInFlight
	}
	sess.analyzing = true
	sess.mu.Unlock()

	defer func() {
		sess.mu.Lock()
		sess.analyzing = false
		sess.mu.Unlock()
	}()

	analysis, err := s.callAI(ctx, sess, true)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	bctx := s.buildContext(sess)
	next, pending := domain.Reconcile(sess.Result, analysis, bctx)
	sess.Result = next
	sess.Pending = pending
	sess.CriticalIssues = analysis.CriticalIssues
	sess.Recommendations = analysis.Recommendations
	return s.view(sess), nil
}

// callAI performs one bounded AI round-trip. preserve marks a reanalysis
// request, which ships the manual region geometry along for context. The
// request is snapshotted under the session lock; region gestures may commit
// while the round-trip is in flight.
func (s *Service) callAI(ctx context.Context, sess *Session, preserve bool) (*domai.Analysis, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Cfg.AITimeout)
	defer cancel()

	sess.mu.Lock()
	req := domai.Request{
		Image:           sess.Image,
		Width:           sess.Width,
		Height:          sess.Height,
		Format:          string(sess.Format),
		VisualType:      string(sess.VisualType),
		UploadYear:      sess.CreatedAt.Year(),
		PreserveRegions: preserve,
	}
	if preserve {
		req.ManualRegions = make(map[string]domai.Box, len(sess.Regions))
		for id, r := range sess.Regions {
			req.ManualRegions[id] = domai.Box{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
		}
	}
	sess.mu.Unlock()

	return s.AI.Analyze(ctx, req)
}

func (s *Service) buildContext(sess *Session) *domain.BuildContext {
	return &domain.BuildContext{
		Format:      sess.Format,
		VisualType:  sess.VisualType,
		Width:       sess.Width,
		Height:      sess.Height,
		UploadYear:  sess.CreatedAt.Year(),
		Regions:     sess.Regions,
		LogoBox:     sess.LogoBox,
		SmilePolicy: s.Cfg.SmilePolicy,
	}
}

//
// ==== INTERAKSI REGION & PENGUKURAN ====
//

func (s *Service) BeginDrag(tenant, id, regionID string, at domain.Point) error {
	sess, err := s.session(tenant, id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	region, ok := sess.Regions[regionID]
	if !ok {
		return fmt.Errorf("unknown region: %s", regionID)
	}
	return sess.Interaction.BeginDrag(regionID, region, at)
}

func (s *Service) BeginResize(tenant, id, regionID string, at domain.Point) error {
	sess, err := s.session(tenant, id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	region, ok := sess.Regions[regionID]
	if !ok {
		return fmt.Errorf("unknown region: %s", regionID)
	}
	return sess.Interaction.BeginResize(regionID, region, at)
}

func (s *Service) BeginDraw(tenant, id string, mode domain.DrawMode, at domain.Point) error {
	sess, err := s.session(tenant, id)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Interaction.BeginDraw(mode, at)
}

// PointerMove advances the live gesture and returns the clamped preview.
func (s *Service) PointerMove(tenant, id string, at domain.Point) (domain.InteractionOutcome, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return domain.InteractionOutcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.Interaction.Move(at)
}

// Release commits the gesture: region gestures re-evaluate their checks,
// draw gestures resolve their measurement.
func (s *Service) Release(tenant, id string, at domain.Point) (*SessionView, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out, err := sess.Interaction.Release(at)
	if err != nil {
		return nil, err
	}
	if sess.Result == nil {
		return nil, ErrNotAnalyzed
	}

	bctx := s.buildContext(sess)
	switch out.Kind {
	case domain.KindDragging, domain.KindResizing:
		sess.Regions[out.RegionID] = out.Region
		domain.RecalculateRegion(sess.Result, out.RegionID, out.Region, bctx, sess.Pending)
	case domain.KindDrawing:
		mo, err := domain.ApplyMeasurement(sess.Result, domain.Measurement{Mode: out.Mode, Line: out.Line}, bctx, sess.Pending)
		if err != nil {
			return nil, err
		}
		if mo.SHeightPct > 0 {
			sess.SHeightPct = mo.SHeightPct
			sess.ClearSpace = mo.ClearSpace
		}
	}
	return s.view(sess), nil
}

// ToggleOverride flips a manual pass override for one check.
func (s *Service) ToggleOverride(tenant, id, checkID string) (*SessionView, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Result == nil {
		return nil, ErrNotAnalyzed
	}
	if sess.Result.Find(checkID) == nil {
		return nil, ErrCheckNotFound
	}
	if sess.Overrides[checkID] {
		delete(sess.Overrides, checkID)
	} else {
		sess.Overrides[checkID] = true
	}
	return s.view(sess), nil
}

//
// ==== REPORT & ARSIP ====
//

func (s *Service) Get(tenant, id string) (*SessionView, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// Report projects the session into the report read model.
func (s *Service) Report(tenant, id string) (domain.Projection, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return domain.Projection{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.Result == nil {
		return domain.Projection{}, ErrNotAnalyzed
	}
	return s.project(sess), nil
}

func (s *Service) project(sess *Session) domain.Projection {
	p := domain.Project(sess.Result, sess.Overrides)
	p.CriticalIssues = sess.CriticalIssues
	p.Recommendations = sess.Recommendations
	return p
}

// Export renders the report document, uploads image and document to the
// artifact store, and archives the outcome.
func (s *Service) Export(ctx context.Context, tenant, id string) (*domain.Archive, error) {
	sess, err := s.session(tenant, id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	if sess.Result == nil {
		sess.mu.Unlock()
		return nil, ErrNotAnalyzed
	}
	projection := s.project(sess)
	imageURL := sess.ImageURL
	image := sess.Image
	sess.mu.Unlock()

	now := s.Clock.Now()

	if imageURL == "" {
		data, contentType, derr := decodeDataURL(image)
		if derr == nil {
			key := fmt.Sprintf("%s/%s/creative%s", tenant, sess.ID, extFor(contentType))
			if url, uerr := s.Artifacts.UploadBytes(ctx, data, key, contentType); uerr == nil {
				imageURL = url
				sess.mu.Lock()
				sess.ImageURL = url
				sess.mu.Unlock()
			}
		}
	}

	doc, err := s.Renderer.Render(domain.ReportData{
		SessionID:   sess.ID,
		TenantID:    tenant,
		ImageURL:    imageURL,
		GeneratedAt: now,
		Projection:  projection,
	})
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s/report.html", tenant, sess.ID)
	reportURL, err := s.Artifacts.UploadBytes(ctx, doc, key, "text/html; charset=utf-8")
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(projection)
	if err != nil {
		return nil, err
	}

	archive := &domain.Archive{
		ID:             uuid.New().String(),
		TenantID:       tenant,
		SessionID:      sess.ID,
		ImageURL:       imageURL,
		ReportURL:      reportURL,
		ReportJSON:     string(raw),
		Score:          projection.Score,
		ItemsToAddress: projection.ItemsToAddress,
		Release:        string(projection.Release),
		CreatedAt:      now,
	}
	if err := s.Repo.Save(ctx, archive); err != nil {
		return nil, err
	}
	return archive, nil
}

// ListArchives ambil arsip review per tenant, paginated.
func (s *Service) ListArchives(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Archive, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// Reset discards a session and all its manual state.
func (s *Service) Reset(tenant, id string) error {
	sess, err := s.session(tenant, id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	return nil
}

//
// ==== HELPERS ====
//

func (s *Service) session(tenant, id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || sess.TenantID != tenant {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// SessionView is the API shape of a session.
type SessionView struct {
	ID            string                   `json:"id"`
	CreatedAt     time.Time                `json:"created_at"`
	Analyzing     bool                     `json:"analyzing"`
	Projection    domain.Projection        `json:"projection"`
	Regions       map[string]domain.Region `json:"regions"`
	PendingChecks []string                 `json:"pending_checks"`
	SHeightPct    float64                  `json:"s_height_pct,omitempty"`
	ClearSpace    *domain.Region           `json:"clear_space,omitempty"`
	LayoutLogoBox *domain.Region           `json:"layout_logo_box,omitempty"`
}

// view snapshots the session. Caller must hold sess.mu, except right after
// Start where the session is not yet published.
func (s *Service) view(sess *Session) *SessionView {
	regions := make(map[string]domain.Region, len(sess.Regions))
	for k, v := range sess.Regions {
		regions[k] = v
	}
	return &SessionView{
		ID:            sess.ID,
		CreatedAt:     sess.CreatedAt,
		Analyzing:     sess.analyzing,
		Projection:    s.project(sess),
		Regions:       regions,
		PendingChecks: sess.Pending.IDs(),
		SHeightPct:    sess.SHeightPct,
		ClearSpace:    sess.ClearSpace,
		LayoutLogoBox: sess.LogoBox,
	}
}

// decodeDataURL splits "data:<type>;base64,<payload>" into bytes and type.
func decodeDataURL(s string) ([]byte, string, error) {
	if !strings.HasPrefix(s, "data:") {
		return nil, "", fmt.Errorf("not a data URL")
	}
	rest := s[len("data:"):]
	semi := strings.Index(rest, ";base64,")
	if semi < 0 {
		return nil, "", fmt.Errorf("data URL is not base64 encoded")
	}
	contentType := rest[:semi]
	data, err := base64.StdEncoding.DecodeString(rest[semi+len(";base64,"):])
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func extFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
