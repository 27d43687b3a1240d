// Package power fetches monthly climate records from the NASA POWER
// temporal/monthly point API.
package power

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agorai/climate-profiler/internal/config"
	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/agorai/climate-profiler/internal/observability"
)

const userAgent = "AgorAI-ClimateProfiler/1.0"

// Client implements domain.RecordFetcher against the POWER API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a POWER API client with the configured base URL and
// request timeout.
func NewClient(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.PowerTimeout},
		baseURL:    cfg.PowerBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// FetchRecord requests all default parameters for one point over the
// inclusive year range and parses the body into a RawClimateRecord. Transport
// failures and malformed bodies both surface as errors; per-month gaps inside
// a well-formed body do not.
func (c *Client) FetchRecord(ctx context.Context, point domain.Point, startYear, endYear int) (domain.RawClimateRecord, error) {
	params := url.Values{
		"parameters": {strings.Join(domain.DefaultParameters, ",")},
		"community":  {"AG"},
		"longitude":  {formatCoord(point.Lon)},
		"latitude":   {formatCoord(point.Lat)},
		"start":      {strconv.Itoa(startYear)},
		"end":        {strconv.Itoa(endYear)},
		"format":     {"JSON"},
	}
	fullURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("fetching climate record",
		"lat", point.Lat, "lon", point.Lon, "start", startYear, "end", endYear)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch climate record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("power API error: status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("read response body: %w", err)
	}

	record, err := domain.ParseRawRecord(body)
	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	return record, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
