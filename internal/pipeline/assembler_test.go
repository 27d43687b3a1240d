package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/agorai/climate-profiler/internal/observability"
	"github.com/agorai/climate-profiler/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockFetcher struct {
	failZones map[string]error
	fetched   []domain.Point
}

func (m *mockFetcher) FetchRecord(_ context.Context, point domain.Point, startYear, endYear int) (domain.RawClimateRecord, error) {
	m.fetched = append(m.fetched, point)
	if err, ok := m.failZones[point.Label]; ok {
		return nil, err
	}
	record := domain.RawClimateRecord{
		"T2M":         map[string]float64{},
		"PRECTOTCORR": map[string]float64{},
	}
	for year := startYear; year <= endYear; year++ {
		for month := 1; month <= 12; month++ {
			key := fmt.Sprintf("%04d%02d", year, month)
			record["T2M"][key] = 18.0
			record["PRECTOTCORR"][key] = 1.5
		}
	}
	return record, nil
}

type captureSink struct {
	docs []domain.BatchDocument
	err  error
}

func (s *captureSink) WriteBatch(_ context.Context, doc domain.BatchDocument) error {
	if s.err != nil {
		return s.err
	}
	s.docs = append(s.docs, doc)
	return nil
}

func testRegistry() map[string]domain.Zone {
	return map[string]domain.Zone{
		"souss": {
			Name:                "Souss Valley",
			RepresentativePoint: domain.Point{Lat: 30.4, Lon: -9.1, Label: "souss"},
		},
		"saiss": {
			Name:                "Saiss Plain",
			RepresentativePoint: domain.Point{Lat: 33.93, Lon: -5.05, Label: "saiss"},
		},
	}
}

func newAssembler(t *testing.T, fetcher domain.RecordFetcher, sinks ...pipeline.ProfileSink) *pipeline.Assembler {
	t.Helper()
	return pipeline.New(fetcher, sinks, slog.Default(), observability.NewMetricsForTesting(), 2021, 2024, 0)
}

// --- tests ---

func TestAssembler_Run_HappyPath(t *testing.T) {
	fakeClock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC))
	domain.SetClock(fakeClock)
	t.Cleanup(func() { domain.SetClock(nil) })

	fetcher := &mockFetcher{}
	sink := &captureSink{}
	a := newAssembler(t, fetcher, sink)

	doc, err := a.Run(context.Background(), testRegistry())
	require.NoError(t, err)

	assert.Len(t, doc.Zones, 2)
	assert.Equal(t, "2021-2024", doc.Metadata.Period)
	assert.Equal(t, fakeClock.Now().UTC(), doc.Metadata.GeneratedAt)

	saiss := doc.Zones["saiss"]
	assert.False(t, saiss.Failed())
	require.NotNil(t, saiss.ClimateProfile)
	assert.InDelta(t, 18.0, saiss.ClimateProfile.MonthlyClimatology[0]["T2M"].Mean, 1e-9)

	require.Len(t, sink.docs, 1)
	assert.NoError(t, a.CheckReadiness(context.Background()))

	status := a.LastRun()
	assert.Equal(t, 2, status.Zones)
	assert.Zero(t, status.ZoneErrors)
}

func TestAssembler_Run_ZonesInSortedOrder(t *testing.T) {
	fetcher := &mockFetcher{}
	a := newAssembler(t, fetcher, &captureSink{})

	_, err := a.Run(context.Background(), testRegistry())
	require.NoError(t, err)

	require.Len(t, fetcher.fetched, 2)
	assert.Equal(t, "saiss", fetcher.fetched[0].Label)
	assert.Equal(t, "souss", fetcher.fetched[1].Label)
}

func TestAssembler_Run_ZoneErrorIsolation(t *testing.T) {
	fetcher := &mockFetcher{
		failZones: map[string]error{"souss": errors.New("power api: status 502")},
	}
	sink := &captureSink{}
	a := newAssembler(t, fetcher, sink)

	doc, err := a.Run(context.Background(), testRegistry())
	require.NoError(t, err)

	souss := doc.Zones["souss"]
	assert.True(t, souss.Failed())
	assert.Nil(t, souss.ClimateProfile)
	assert.Equal(t, "power api: status 502", souss.Error)

	assert.False(t, doc.Zones["saiss"].Failed())
	require.Len(t, sink.docs, 1)
	assert.Equal(t, 1, a.LastRun().ZoneErrors)
}

func TestAssembler_Run_ErroredZoneSerialization(t *testing.T) {
	fetcher := &mockFetcher{
		failZones: map[string]error{
			"saiss": errors.New("timeout"),
			"souss": errors.New("timeout"),
		},
	}
	a := newAssembler(t, fetcher, &captureSink{})

	doc, err := a.Run(context.Background(), testRegistry())
	require.NoError(t, err)

	data, err := json.Marshal(doc.Zones["saiss"])
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "zone_name")
	assert.Contains(t, fields, "representative_point")
	assert.Contains(t, fields, "error")
}

func TestAssembler_Run_EmptyRegistry(t *testing.T) {
	a := newAssembler(t, &mockFetcher{}, &captureSink{})

	_, err := a.Run(context.Background(), map[string]domain.Zone{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry is empty")
}

func TestAssembler_Run_SinkError(t *testing.T) {
	a := newAssembler(t, &mockFetcher{}, &captureSink{err: errors.New("disk full")})

	_, err := a.Run(context.Background(), testRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write batch")
	assert.Error(t, a.CheckReadiness(context.Background()))
}

func TestAssembler_Run_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := newAssembler(t, &mockFetcher{}, &captureSink{})

	_, err := a.Run(ctx, testRegistry())
	require.ErrorIs(t, err, context.Canceled)
}

func TestAssembler_Run_WritesToAllSinks(t *testing.T) {
	first := &captureSink{}
	second := &captureSink{}
	a := newAssembler(t, &mockFetcher{}, first, second)

	_, err := a.Run(context.Background(), testRegistry())
	require.NoError(t, err)
	assert.Len(t, first.docs, 1)
	assert.Len(t, second.docs, 1)
}
