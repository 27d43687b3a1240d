package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/agorai/climate-profiler/internal/observability"
)

// ProfileSink writes a completed batch document to a destination.
type ProfileSink interface {
	WriteBatch(ctx context.Context, doc domain.BatchDocument) error
}

// RunStatus summarizes the most recent completed batch.
type RunStatus struct {
	LastRun    time.Time
	Zones      int
	ZoneErrors int
}

// Assembler fetches climate records for each zone, builds climate profiles,
// and writes the assembled batch document to the configured sinks.
type Assembler struct {
	fetcher   domain.RecordFetcher
	sinks     []ProfileSink
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
	startYear int
	endYear   int
	zoneDelay time.Duration

	mu     sync.Mutex
	status RunStatus
}

// New creates an Assembler over the given fetcher and sinks.
func New(fetcher domain.RecordFetcher, sinks []ProfileSink, logger *slog.Logger, metrics *observability.Metrics, startYear, endYear int, zoneDelay time.Duration) *Assembler {
	return &Assembler{
		fetcher:   fetcher,
		sinks:     sinks,
		logger:    logger,
		metrics:   metrics,
		startYear: startYear,
		endYear:   endYear,
		zoneDelay: zoneDelay,
	}
}

// CheckReadiness returns nil once at least one batch has completed, or an
// error describing why the service is not yet ready.
func (a *Assembler) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no batch completed yet")
	}
	return nil
}

// LastRun returns a snapshot of the most recent completed batch.
func (a *Assembler) LastRun() RunStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status
}

// Run processes every zone in the registry in sorted id order and writes the
// resulting batch document to each sink. A zone whose fetch fails is recorded
// in the document with its error string; it never aborts the batch. Run
// returns an error only for registry-level problems, sink failures, or
// context cancellation.
func (a *Assembler) Run(ctx context.Context, registry map[string]domain.Zone) (domain.BatchDocument, error) {
	if len(registry) == 0 {
		return domain.BatchDocument{}, errors.New("zone registry is empty")
	}

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	a.logger.Info("batch started",
		"zones", len(ids),
		"start_year", a.startYear,
		"end_year", a.endYear,
	)
	a.metrics.BatchRunning.Set(1)
	defer a.metrics.BatchRunning.Set(0)

	start := time.Now()
	doc := domain.BatchDocument{
		Metadata: domain.NewMetadata(a.startYear, a.endYear, domain.DefaultParameters),
		Zones:    make(map[string]domain.ZoneDocument, len(ids)),
	}

	var zoneErrors int
	for i, id := range ids {
		if ctx.Err() != nil {
			return domain.BatchDocument{}, ctx.Err()
		}

		zoneDoc := a.assembleZone(ctx, id, registry[id])
		if zoneDoc.Failed() {
			zoneErrors++
		}
		doc.Zones[id] = zoneDoc

		if i < len(ids)-1 {
			if !sleepWithContext(ctx, a.zoneDelay) {
				return domain.BatchDocument{}, ctx.Err()
			}
		}
	}

	for _, sink := range a.sinks {
		if err := sink.WriteBatch(ctx, doc); err != nil {
			return domain.BatchDocument{}, fmt.Errorf("write batch: %w", err)
		}
	}

	a.metrics.BatchesCompleted.Inc()
	a.metrics.BatchDuration.Observe(time.Since(start).Seconds())
	a.ready.Store(true)

	a.mu.Lock()
	a.status = RunStatus{
		LastRun:    domain.Now(),
		Zones:      len(ids),
		ZoneErrors: zoneErrors,
	}
	a.mu.Unlock()

	a.logger.Info("batch completed",
		"zones", len(ids),
		"zone_errors", zoneErrors,
		"duration", time.Since(start),
	)
	return doc, nil
}

// assembleZone fetches one zone's climate record and builds its profile.
// Any fetch or parse error is captured in the returned document.
func (a *Assembler) assembleZone(ctx context.Context, id string, zone domain.Zone) domain.ZoneDocument {
	a.logger.Info("processing zone",
		"zone", id,
		"name", zone.Name,
		"lat", zone.RepresentativePoint.Lat,
		"lon", zone.RepresentativePoint.Lon,
	)

	record, err := a.fetcher.FetchRecord(ctx, zone.RepresentativePoint, a.startYear, a.endYear)
	if err != nil {
		a.logger.Error("zone failed", "zone", id, "error", err)
		a.metrics.ZoneErrors.Inc()
		return domain.ZoneDocument{
			ZoneName:            zone.Name,
			RepresentativePoint: zone.RepresentativePoint,
			Error:               err.Error(),
		}
	}

	profile := domain.BuildProfile(record, domain.DefaultParameters, a.startYear, a.endYear)
	a.metrics.ZonesProcessed.Inc()
	return domain.ZoneDocument{
		ZoneName:            zone.Name,
		RepresentativePoint: zone.RepresentativePoint,
		ClimateProfile:      &profile,
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
