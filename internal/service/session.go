package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"hotelsearch/internal/facet"
	"hotelsearch/internal/filter"
	"hotelsearch/internal/model"
	"hotelsearch/internal/normalize"
	"hotelsearch/internal/repository"
	"hotelsearch/internal/slider"

	"github.com/google/uuid"
)

// Service errors surfaced to the HTTP layer.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownFacet    = errors.New("unknown facet item for group")
	ErrNoListings      = errors.New("no listings provided")
)

// SearchService owns the filter sessions. Each session holds an immutable
// listing snapshot, the facet groups built from it, the current selection,
// and one price slider. Facet groups are rebuilt only when the listing set
// changes; selections are re-applied on every toggle or drag.
type SearchService struct {
	repo    *repository.PostgresRepository // nil when persistence is disabled
	builder *facet.Builder
	ttl     time.Duration

	mu       sync.RWMutex
	sessions map[string]*session
}

type session struct {
	mu        sync.Mutex
	id        string
	listings  []model.Listing
	groups    []model.FacetGroup
	selection filter.Selection
	slider    *slider.Slider
	touched   time.Time
}

// NewSearchService creates the session service. repo may be nil for an
// in-memory-only deployment.
func NewSearchService(repo *repository.PostgresRepository, builder *facet.Builder, ttl time.Duration) *SearchService {
	if builder == nil {
		builder = facet.NewBuilder(nil)
	}
	return &SearchService{
		repo:     repo,
		builder:  builder,
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// CreateSession starts a filter session over an inline listing array or a
// stored snapshot, building the facet groups and the slider bounds.
func (s *SearchService) CreateSession(ctx context.Context, req *model.CreateSessionRequest) (*model.SessionResponse, error) {
	start := time.Now()

	listings := []model.Listing(req.Listings)
	if len(listings) == 0 && req.SnapshotID != "" {
		if s.repo == nil {
			return nil, fmt.Errorf("snapshot storage is not configured")
		}
		stored, err := s.repo.GetSnapshot(ctx, req.SnapshotID)
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		listings = stored
	}
	if len(listings) == 0 {
		return nil, ErrNoListings
	}

	lo, hi := priceBounds(listings)
	sess := &session{
		id:        uuid.NewString(),
		listings:  listings,
		groups:    s.builder.Build(listings),
		selection: filter.New(),
		slider:    slider.New(lo, hi, nil),
		touched:   time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return s.response(sess, start), nil
}

// Facets returns the facet groups and current state for a session.
func (s *SearchService) Facets(sessionID string) (*model.SessionResponse, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.response(sess, time.Now()), nil
}

// Results re-applies the current selection and returns the filtered view.
func (s *SearchService) Results(sessionID string) (*model.SessionResponse, error) {
	return s.Facets(sessionID)
}

// Toggle flips a facet item and re-filters. The id must be drawn from the
// session's facet groups for that key; anything else is rejected so the
// selection never holds an id the sidebar cannot display.
func (s *SearchService) Toggle(sessionID, group, id string) (*model.SessionResponse, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.hasItem(group, id) {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownFacet, group, id)
	}

	start := time.Now()
	sess.selection = filter.Toggle(sess.selection, group, id)
	resp := s.response(sess, start)
	s.logApply(sess, resp)
	return resp, nil
}

// ClearGroup removes one group's selections, or the entire selection
// (including price bounds) when group is empty.
func (s *SearchService) ClearGroup(sessionID, group string) (*model.SessionResponse, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()
	if group == "" {
		sess.selection = filter.Clear(sess.selection)
		sess.slider.Reset()
	} else {
		sess.selection = filter.ClearGroup(sess.selection, group)
	}
	resp := s.response(sess, start)
	s.logApply(sess, resp)
	return resp, nil
}

// SliderEvent drives the session's price slider. A committed move feeds the
// new (min, max) pair straight into the selection's price bounds.
func (s *SearchService) SliderEvent(sessionID string, req *model.SliderEventRequest) (*model.SessionResponse, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()
	if req.Width > 0 {
		sess.slider.SetWidth(req.Width)
	}

	switch req.Event {
	case "start":
		if !sess.slider.Start(slider.Handle(req.Handle)) {
			return nil, fmt.Errorf("cannot start drag on handle %q", req.Handle)
		}
	case "move":
		before := sess.slider.Active()
		sess.slider.Move(req.DX)
		if before != slider.HandleNone {
			lo, hi := sess.slider.Values()
			sess.selection = filter.SetPriceBounds(sess.selection, &lo, &hi)
		}
	case "end":
		sess.slider.End()
	case "cancel":
		sess.slider.Cancel()
	default:
		return nil, fmt.Errorf("unknown slider event %q", req.Event)
	}

	resp := s.response(sess, start)
	if req.Event == "end" {
		s.logApply(sess, resp)
	}
	return resp, nil
}

// DeleteSession drops a session.
func (s *SearchService) DeleteSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// SaveSnapshot persists a fetched listing array for later sessions.
func (s *SearchService) SaveSnapshot(ctx context.Context, query string, listings model.Listings) (string, error) {
	if s.repo == nil {
		return "", fmt.Errorf("snapshot storage is not configured")
	}
	return s.repo.SaveSnapshot(ctx, query, listings)
}

// StartJanitor sweeps expired sessions until the context is done.
func (s *SearchService) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

func (s *SearchService) sweep() {
	if s.ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if sess.touched.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

func (s *SearchService) get(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.mu.Lock()
	sess.touched = time.Now()
	sess.mu.Unlock()
	return sess, nil
}

// response assembles the full controlled-component state. Callers hold the
// session lock where mutation is possible.
func (s *SearchService) response(sess *session, start time.Time) *model.SessionResponse {
	results := filter.Apply(sess.listings, sess.selection)
	lo, hi := sess.slider.Bounds()
	min, max := sess.slider.Values()
	selected := make(map[string][]string, len(sess.selection.Selected))
	for group := range sess.selection.Selected {
		selected[group] = sess.selection.IDs(group)
	}
	return &model.SessionResponse{
		SessionID: sess.id,
		Groups:    sess.groups,
		Selection: model.SelectionDTO{
			PriceMin: sess.selection.PriceMin,
			PriceMax: sess.selection.PriceMax,
			Selected: selected,
		},
		Slider: model.SliderDTO{
			GlobalMin: lo,
			GlobalMax: hi,
			Min:       min,
			Max:       max,
			Active:    string(sess.slider.Active()),
		},
		Results: results,
		Total:   len(results),
		Took:    time.Since(start).Milliseconds(),
	}
}

// logApply records the filter application for analytics (non-blocking).
func (s *SearchService) logApply(sess *session, resp *model.SessionResponse) {
	if s.repo == nil {
		return
	}
	sel := resp.Selection
	total := resp.Total
	took := resp.Took
	id := sess.id
	go func() {
		if err := s.repo.LogFilter(context.Background(), id, sel, total, took); err != nil {
			log.Printf("failed to log filter application: %v", err)
		}
	}()
}

func (sess *session) hasItem(group, id string) bool {
	for _, g := range sess.groups {
		if g.Key == group {
			return g.HasItem(id)
		}
	}
	return false
}

// priceBounds derives the slider's global bounds from the observed prices,
// rounded outward to the slider step. Falls back to [0, 1000] when no
// listing has a resolvable price.
func priceBounds(listings []model.Listing) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, l := range listings {
		if p, ok := normalize.Price(l); ok {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 1000
	}
	step := float64(slider.DefaultStep)
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	if hi-lo < slider.DefaultMinGap {
		hi = lo + slider.DefaultMinGap
	}
	return lo, hi
}
