package domain

import (
	"fmt"
	"time"
)

// Point is the representative coordinate used to fetch a zone's climate data.
type Point struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Zone is one entry of the zone registry.
type Zone struct {
	Name                string `json:"name"`
	RepresentativePoint Point  `json:"representative_point"`
}

// ClimateProfile is the full statistical reduction for one zone.
type ClimateProfile struct {
	MonthlyClimatology MonthlyClimatology           `json:"monthly_climatology"`
	AnnualSummary      map[string]AnnualSummaryStat `json:"annual_summary"`
	YearlyData         map[string]YearlyRecord      `json:"yearly_data"`
	Variability        VariabilityMetrics           `json:"variability"`
}

// BuildProfile runs all four reductions over one zone's raw record.
func BuildProfile(record RawClimateRecord, params []string, startYear, endYear int) ClimateProfile {
	return ClimateProfile{
		MonthlyClimatology: AggregateMonthlyClimatology(record, params, startYear, endYear),
		AnnualSummary:      AggregateAnnualSummary(record, params, startYear, endYear),
		YearlyData:         ExtractYearlySeries(record, params, startYear, endYear),
		Variability:        AnalyzeVariability(record, startYear, endYear),
	}
}

// ZoneDocument is the per-zone batch result: a populated profile on success,
// or an error string with a nil profile when the zone's fetch or parse
// failed. An errored zone serializes to exactly
// {zone_name, representative_point, error}.
type ZoneDocument struct {
	ZoneName            string          `json:"zone_name"`
	RepresentativePoint Point           `json:"representative_point"`
	ClimateProfile      *ClimateProfile `json:"climate_profile,omitempty"`
	Error               string          `json:"error,omitempty"`
}

// Failed reports whether the zone produced an error instead of a profile.
func (z ZoneDocument) Failed() bool {
	return z.Error != ""
}

// Metadata describes the provenance of a batch document.
type Metadata struct {
	Source             string            `json:"source"`
	Community          string            `json:"community"`
	TemporalResolution string            `json:"temporal_resolution"`
	Period             string            `json:"period"`
	Parameters         map[string]string `json:"parameters"`
	GeneratedAt        time.Time         `json:"generated_at"`
	Notes              string            `json:"notes"`
}

// BatchDocument wraps all zone documents under a metadata block. It always
// carries one entry per registry zone, success or error.
type BatchDocument struct {
	Metadata Metadata                `json:"metadata"`
	Zones    map[string]ZoneDocument `json:"zones"`
}

// NewMetadata builds the metadata block for a batch over the given year range
// and parameter set. GeneratedAt comes from the package clock so fixtures and
// tests stay deterministic.
func NewMetadata(startYear, endYear int, params []string) Metadata {
	descriptions := make(map[string]string, len(params))
	for _, p := range params {
		if d, ok := ParameterDescriptions[p]; ok {
			descriptions[p] = d
		}
	}
	return Metadata{
		Source:             "NASA POWER API v2.0 (https://power.larc.nasa.gov/)",
		Community:          "Agroclimatology (AG)",
		TemporalResolution: "monthly",
		Period:             fmt.Sprintf("%d-%d", startYear, endYear),
		Parameters:         descriptions,
		GeneratedAt:        clock.Now().UTC(),
		Notes:              "PRECTOTCORR annual totals are converted from mm/day to mm/year using days-per-month weighting.",
	}
}
