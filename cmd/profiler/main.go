package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	fileadapter "github.com/agorai/climate-profiler/internal/adapter/file"
	httpadapter "github.com/agorai/climate-profiler/internal/adapter/http"
	kafkaadapter "github.com/agorai/climate-profiler/internal/adapter/kafka"
	"github.com/agorai/climate-profiler/internal/adapter/power"
	"github.com/agorai/climate-profiler/internal/adapter/zones"
	"github.com/agorai/climate-profiler/internal/config"
	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/agorai/climate-profiler/internal/observability"
	"github.com/agorai/climate-profiler/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	registry, err := zones.Load(cfg.ZonesPath)
	if err != nil {
		logger.Error("failed to load zone registry", "path", cfg.ZonesPath, "error", err)
		os.Exit(1)
	}
	logger.Info("zone registry loaded", "path", cfg.ZonesPath, "zones", len(registry))

	var fetcher domain.RecordFetcher = power.NewClient(cfg, metrics, logger)
	if cfg.PowerCacheSize > 0 {
		fetcher = power.NewCachedFetcher(fetcher, cfg.PowerCacheSize, metrics)
		logger.Info("power response cache enabled", "cache_size", cfg.PowerCacheSize)
	}

	sinks := []pipeline.ProfileSink{fileadapter.NewSink(cfg.OutputPath, logger)}

	var kafkaWriter *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
		sinks = append(sinks, kafkaWriter)
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	}

	assembler := pipeline.New(fetcher, sinks, logger, metrics, cfg.StartYear, cfg.EndYear, cfg.ZoneDelay)

	srv := httpadapter.NewServer(cfg.HTTPAddr, assembler, statusAdapter{assembler}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go runBatches(ctx, stop, assembler, registry, cfg, logger)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// runBatches executes a single batch when no interval is configured, or keeps
// rerunning on the interval until the context is cancelled. In one-shot mode
// it requests shutdown once the batch finishes.
func runBatches(ctx context.Context, stop context.CancelFunc, a *pipeline.Assembler, registry map[string]domain.Zone, cfg *config.Config, logger *slog.Logger) {
	for {
		doc, err := a.Run(ctx, registry)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("batch failed", "error", err)
		} else {
			logBatchSummary(logger, doc)
		}

		if cfg.RunInterval <= 0 {
			stop()
			return
		}

		logger.Info("next batch scheduled", "interval", cfg.RunInterval)
		timer := time.NewTimer(cfg.RunInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// logBatchSummary emits one concise line per zone with the headline numbers
// an operator cares about.
func logBatchSummary(logger *slog.Logger, doc domain.BatchDocument) {
	ids := make([]string, 0, len(doc.Zones))
	for id := range doc.Zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		zone := doc.Zones[id]
		if zone.Failed() {
			logger.Warn("zone summary", "zone", id, "name", zone.ZoneName, "error", zone.Error)
			continue
		}

		attrs := []any{"zone", id, "name", zone.ZoneName}
		summary := zone.ClimateProfile.AnnualSummary
		if stat, ok := summary[domain.AnnualSummaryLabel(domain.ParamPrecip)]; ok {
			attrs = append(attrs, "precip_mm_per_year", stat.Mean)
		}
		if stat, ok := summary[domain.AnnualSummaryLabel(domain.ParamTemp)]; ok {
			attrs = append(attrs, "temp_mean_c", stat.Mean)
		}
		if precip := zone.ClimateProfile.Variability.Precipitation; precip != nil {
			attrs = append(attrs, "drought_frequency", precip.DroughtFrequency)
		}
		logger.Info("zone summary", attrs...)
	}
}

// statusAdapter bridges the assembler's run status to the HTTP status route.
type statusAdapter struct {
	assembler *pipeline.Assembler
}

func (s statusAdapter) Status() httpadapter.BatchStatus {
	last := s.assembler.LastRun()
	return httpadapter.BatchStatus{
		LastRun:    last.LastRun,
		Zones:      last.Zones,
		ZoneErrors: last.ZoneErrors,
	}
}
