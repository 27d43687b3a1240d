package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MonthValueStats summarizes one (parameter, calendar month) pair across the
// contributing years.
type MonthValueStats struct {
	Mean   float64 `json:"mean"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Std    float64 `json:"std"`
	NYears int     `json:"n_years"`
}

// MonthlyClimatology holds per-parameter statistics for each calendar month,
// indexed 0 (January) through 11 (December).
type MonthlyClimatology [12]map[string]MonthValueStats

// AggregateMonthlyClimatology reduces a raw record into a 12-month
// climatology over the inclusive year range. For each month and parameter the
// values of every year with an observation are pooled; a parameter with zero
// contributing years is omitted from that month entirely. Pure function of
// its inputs.
func AggregateMonthlyClimatology(record RawClimateRecord, params []string, startYear, endYear int) MonthlyClimatology {
	var clim MonthlyClimatology
	for m := 0; m < 12; m++ {
		monthStats := make(map[string]MonthValueStats)
		for _, param := range params {
			if !record.HasParameter(param) {
				continue
			}
			var values []float64
			for year := startYear; year <= endYear; year++ {
				if v, ok := record.Value(param, year, m+1); ok {
					values = append(values, v)
				}
			}
			if len(values) == 0 {
				continue
			}
			minVal, maxVal := minMax(values)
			monthStats[param] = MonthValueStats{
				Mean:   roundTo(Mean(values), 2),
				Min:    roundTo(minVal, 2),
				Max:    roundTo(maxVal, 2),
				Std:    roundTo(SampleStdDev(values), 2),
				NYears: len(values),
			}
		}
		clim[m] = monthStats
	}
	return clim
}

// MarshalJSON emits months as an object in calendar order Jan→Dec. The
// default map marshaling would sort month names alphabetically.
func (mc MonthlyClimatology) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range MonthNames {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:", name)
		stats := mc[i]
		if stats == nil {
			stats = map[string]MonthValueStats{}
		}
		b, err := json.Marshal(stats)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts the month-keyed object form produced by MarshalJSON.
func (mc *MonthlyClimatology) UnmarshalJSON(data []byte) error {
	byName := make(map[string]map[string]MonthValueStats, 12)
	if err := json.Unmarshal(data, &byName); err != nil {
		return err
	}
	for i, name := range MonthNames {
		if stats, ok := byName[name]; ok {
			mc[i] = stats
		} else {
			mc[i] = map[string]MonthValueStats{}
		}
	}
	return nil
}
