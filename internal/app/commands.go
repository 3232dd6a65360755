package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hotel_merge/internal/adapters/observability"
	"hotel_merge/internal/domain"
	"hotel_merge/internal/reconcile"
)

// Cache key prefixes owned by QueryService; every run purges both.
const (
	hotelKeyPrefix  = "hotel:"
	hotelsKeyPrefix = "hotels:"
)

// Suppliers carries one client per feed. A nil client is a feed with no data.
type Suppliers struct {
	Acme       domain.SupplierClient
	Patagonia  domain.SupplierClient
	Paperflies domain.SupplierClient
}

type SourceStatus struct {
	Available bool `json:"available"`
	Records   int  `json:"records"`
	Skipped   int  `json:"skipped"`
}

type RunReport struct {
	Sources   map[reconcile.Supplier]SourceStatus `json:"sources"`
	Count     int                                 `json:"count"`
	Persisted bool                                `json:"persisted"`
	Duration  time.Duration                       `json:"duration_ns"`
	Hotels    []domain.Hotel                      `json:"hotels,omitempty"`
}

type IngestionService struct {
	sup    Suppliers
	repo   domain.HotelRepository
	cache  domain.Cache
	dryRun bool
}

func NewIngestionService(s Suppliers, r domain.HotelRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{sup: s, repo: r, cache: cache}
}

// DryRun makes Run stop after reconciliation: nothing is written or purged and
// the report carries the hotels.
func (s *IngestionService) DryRun(on bool) *IngestionService {
	s.dryRun = on
	return s
}

// Run fetches every supplier, reconciles once and replaces the stored set.
// An unavailable supplier counts as empty; a malformed one aborts the run.
func (s *IngestionService) Run(ctx context.Context) (RunReport, error) {
	start := time.Now()

	payloads, avail, err := s.fetchAll(ctx)
	if err != nil {
		observability.ObserveRun("fetch_failed", 0, time.Since(start))
		return RunReport{}, err
	}

	rec, err := reconcile.ReconcileReport(payloads[0], payloads[1], payloads[2])
	if err != nil {
		var se *reconcile.SourceError
		if errors.As(err, &se) {
			log.Error().Str("supplier", string(se.Supplier)).Str("stage", se.Stage).Err(err).Msg("malformed supplier payload")
		}
		observability.ObserveRun("malformed", 0, time.Since(start))
		return RunReport{}, err
	}

	rep := RunReport{
		Sources: make(map[reconcile.Supplier]SourceStatus, len(reconcile.Suppliers)),
		Count:   len(rec.Hotels),
	}
	for i, sup := range reconcile.Suppliers {
		rep.Sources[sup] = SourceStatus{Available: avail[i], Records: rec.Records[sup], Skipped: rec.Skipped[sup]}
		if n := rec.Skipped[sup]; n > 0 {
			log.Warn().Str("supplier", string(sup)).Int("skipped", n).Msg("listings without hotel id")
			observability.ObserveSkipped(string(sup), n)
		}
	}

	if s.dryRun {
		rep.Hotels = rec.Hotels
		rep.Duration = time.Since(start)
		observability.ObserveRun("dry_run", rep.Count, rep.Duration)
		return rep, nil
	}

	if err := s.repo.ReplaceAll(ctx, rec.Hotels); err != nil {
		observability.ObserveRun("persist_failed", 0, time.Since(start))
		return RunReport{}, fmt.Errorf("replace hotels: %w", err)
	}
	rep.Persisted = true
	s.purge(ctx)

	rep.Duration = time.Since(start)
	observability.ObserveRun("ok", rep.Count, rep.Duration)
	log.Info().Int("hotels", rep.Count).Dur("duration", rep.Duration).Msg("reconcile run complete")
	return rep, nil
}

// fetchAll returns the payloads in reconcile.Suppliers order. Only context
// cancellation is an error; every other fetch failure leaves a nil payload.
func (s *IngestionService) fetchAll(ctx context.Context) ([3]json.RawMessage, [3]bool, error) {
	var (
		out   [3]json.RawMessage
		avail [3]bool
	)
	clients := [3]domain.SupplierClient{s.sup.Acme, s.sup.Patagonia, s.sup.Paperflies}

	var g errgroup.Group
	for i, c := range clients {
		if c == nil {
			continue
		}
		g.Go(func() error {
			raw, err := c.Fetch(ctx)
			if err == nil {
				out[i], avail[i] = raw, true
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Warn().Str("supplier", c.Name()).
				Bool("expected", errors.Is(err, domain.ErrSourceUnavailable)).
				Err(err).Msg("supplier unavailable")
			observability.ObserveSourceFailure(c.Name())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, avail, fmt.Errorf("fetch suppliers: %w", err)
	}
	return out, avail, nil
}

func (s *IngestionService) purge(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, p := range []string{hotelKeyPrefix, hotelsKeyPrefix} {
		if err := s.cache.DelPrefix(ctx, p); err != nil {
			log.Warn().Str("prefix", p).Err(err).Msg("cache purge failed")
		}
	}
}
