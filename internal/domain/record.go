package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// missingSentinel is the POWER marker for "no observation available".
const missingSentinel = -999

// ErrMalformedResponse indicates an upstream response whose shape does not
// match the POWER monthly-point contract, e.g. a missing parameter container.
var ErrMalformedResponse = errors.New("malformed climate response")

// RawClimateRecord maps parameter code → period key ("YYYYMM") → observed
// value. Only present observations are stored; sentinel and null entries are
// dropped when the record is parsed. The record is immutable once built.
type RawClimateRecord map[string]map[string]float64

// RecordFetcher supplies one zone's raw climate record for an inclusive year
// range. Implementations own transport concerns (timeouts, retries).
type RecordFetcher interface {
	FetchRecord(ctx context.Context, point Point, startYear, endYear int) (RawClimateRecord, error)
}

// PeriodKey builds the zero-padded year+month key, e.g. (2021, 7) → "202107".
func PeriodKey(year, month int) string {
	return fmt.Sprintf("%04d%02d", year, month)
}

// HasParameter reports whether the upstream supplied the parameter at all,
// even if every one of its observations was missing.
func (r RawClimateRecord) HasParameter(param string) bool {
	_, ok := r[param]
	return ok
}

// Value returns the observation for (param, year, month) and whether it exists.
func (r RawClimateRecord) Value(param string, year, month int) (float64, bool) {
	series, ok := r[param]
	if !ok {
		return 0, false
	}
	v, ok := series[PeriodKey(year, month)]
	return v, ok
}

// yearSeries collects the available monthly values for (param, year) in
// month order, alongside the 1-based month numbers they belong to.
func (r RawClimateRecord) yearSeries(param string, year int) (values []float64, months []int) {
	series, ok := r[param]
	if !ok {
		return nil, nil
	}
	for month := 1; month <= 12; month++ {
		if v, ok := series[PeriodKey(year, month)]; ok {
			values = append(values, v)
			months = append(months, month)
		}
	}
	return values, months
}

// powerResponse mirrors the slice of the POWER monthly-point response this
// service consumes. Values are pointers so JSON nulls survive decoding and
// can be filtered alongside the numeric sentinel.
type powerResponse struct {
	Properties *struct {
		Parameter map[string]map[string]*float64 `json:"parameter"`
	} `json:"properties"`
}

// ParseRawRecord converts a raw POWER response body into a RawClimateRecord.
// This is the single ingestion boundary where -999 sentinels and nulls become
// absent entries. A body without the properties.parameter container fails
// with ErrMalformedResponse.
func ParseRawRecord(data []byte) (RawClimateRecord, error) {
	var resp powerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if resp.Properties == nil || resp.Properties.Parameter == nil {
		return nil, fmt.Errorf("%w: missing properties.parameter container", ErrMalformedResponse)
	}

	record := make(RawClimateRecord, len(resp.Properties.Parameter))
	for param, series := range resp.Properties.Parameter {
		observations := make(map[string]float64, len(series))
		for period, val := range series {
			if val == nil || *val == missingSentinel {
				continue
			}
			observations[period] = *val
		}
		record[param] = observations
	}
	return record, nil
}
