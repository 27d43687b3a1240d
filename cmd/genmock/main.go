// Command genmock generates deterministic mock POWER API responses and the
// matching expected batch document. It uses the actual domain package for the
// reductions so the fixture output matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -zones data/zones.json \
//	  -raw-out data/mock/power \
//	  -profile-out data/mock/climate_profiles_expected.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/agorai/climate-profiler/internal/adapter/zones"
	"github.com/agorai/climate-profiler/internal/domain"
	"github.com/jonboulle/clockwork"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	zonesPath := flag.String("zones", "", "path to the zone registry JSON")
	rawOut := flag.String("raw-out", "", "output directory for per-zone raw POWER JSON")
	profileOut := flag.String("profile-out", "", "output path for the expected batch document")
	startYear := flag.Int("start-year", 2021, "first year of the mock range")
	endYear := flag.Int("end-year", 2024, "last year of the mock range")
	flag.Parse()

	if *zonesPath == "" || *rawOut == "" || *profileOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -zones, -raw-out, -profile-out")
	}

	registry, err := zones.Load(*zonesPath)
	if err != nil {
		return fmt.Errorf("load zone registry: %w", err)
	}

	// Fix the clock so generated_at in the expected document is reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.January, 15, 6, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	doc := domain.BatchDocument{
		Metadata: domain.NewMetadata(*startYear, *endYear, domain.DefaultParameters),
		Zones:    make(map[string]domain.ZoneDocument, len(ids)),
	}

	for _, id := range ids {
		zone := registry[id]
		raw := syntheticResponse(zone.RepresentativePoint, *startYear, *endYear)

		rawPath := filepath.Join(*rawOut, id+".json")
		if err := writeJSON(rawPath, raw); err != nil {
			return fmt.Errorf("writing raw fixture for %s: %w", id, err)
		}

		// Round-trip through the real parse boundary so sentinel handling in
		// the fixture matches production behavior.
		data, err := json.Marshal(raw)
		if err != nil {
			return fmt.Errorf("marshal raw response for %s: %w", id, err)
		}
		record, err := domain.ParseRawRecord(data)
		if err != nil {
			return fmt.Errorf("parse raw response for %s: %w", id, err)
		}

		profile := domain.BuildProfile(record, domain.DefaultParameters, *startYear, *endYear)
		doc.Zones[id] = domain.ZoneDocument{
			ZoneName:            zone.Name,
			RepresentativePoint: zone.RepresentativePoint,
			ClimateProfile:      &profile,
		}
		log.Printf("%s: %d parameters", id, len(record))
	}

	if err := writeJSON(*profileOut, doc); err != nil {
		return fmt.Errorf("writing expected document: %w", err)
	}
	log.Printf("wrote expected document: %s", *profileOut)

	printStats(doc, ids)
	return nil
}

// powerResponse mirrors the shape of a POWER monthly API reply.
type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// syntheticResponse builds a deterministic POWER-shaped reply for one point.
// Values follow a sinusoidal seasonal cycle seeded from the coordinates, with
// a small per-year drift. December of the final year carries the -999
// sentinel for precipitation so fixtures exercise the missing-value path.
func syntheticResponse(point domain.Point, startYear, endYear int) powerResponse {
	var resp powerResponse
	resp.Properties.Parameter = make(map[string]map[string]float64, len(domain.DefaultParameters))

	seed := math.Abs(point.Lat) + math.Abs(point.Lon)/10

	for _, param := range domain.DefaultParameters {
		series := make(map[string]float64)
		for year := startYear; year <= endYear; year++ {
			for month := 1; month <= 12; month++ {
				key := fmt.Sprintf("%04d%02d", year, month)
				if param == domain.ParamPrecip && year == endYear && month == 12 {
					series[key] = -999
					continue
				}
				series[key] = syntheticValue(param, seed, year-startYear, month)
			}
		}
		resp.Properties.Parameter[param] = series
	}
	return resp
}

func syntheticValue(param string, seed float64, yearOffset, month int) float64 {
	season := math.Sin(2 * math.Pi * float64(month-1) / 12)
	drift := 0.1 * float64(yearOffset)

	var base, amplitude float64
	switch param {
	case domain.ParamPrecip:
		// Winter-wet regime: mm/day peaking in January.
		base, amplitude = 1.5, 1.2
		season = math.Cos(2 * math.Pi * float64(month-1) / 12)
	case domain.ParamTemp:
		base, amplitude = 18, 8
	case domain.ParamTempMax:
		base, amplitude = 25, 9
	case domain.ParamTempMin:
		base, amplitude = 11, 7
	case domain.ParamTempRange:
		base, amplitude = 14, 2
	case domain.ParamHumidity:
		base, amplitude = 55, 15
		season = -season
	case domain.ParamWindSpeed:
		base, amplitude = 3.5, 0.8
	case domain.ParamSolar:
		base, amplitude = 5.5, 2.5
	default:
		base, amplitude = 10, 1
	}

	v := base + amplitude*(-season) + drift + math.Mod(seed, 1.0)
	return math.Round(v*100) / 100
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(doc domain.BatchDocument, ids []string) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Zones: %d\n", len(ids))
	fmt.Printf("Generated at: %s\n", doc.Metadata.GeneratedAt.Format(time.RFC3339))

	for _, id := range ids {
		zone := doc.Zones[id]
		profile := zone.ClimateProfile
		fmt.Printf("\n%s (%s):\n", id, zone.ZoneName)

		if stat, ok := profile.AnnualSummary[domain.AnnualSummaryLabel(domain.ParamPrecip)]; ok {
			fmt.Printf("  Precip annual total: mean=%g min=%g max=%g\n", stat.Mean, stat.Min, stat.Max)
		}
		if stat, ok := profile.AnnualSummary[domain.AnnualSummaryLabel(domain.ParamTemp)]; ok {
			fmt.Printf("  Temp annual mean: mean=%g std=%g\n", stat.Mean, stat.Std)
		}
		if precip := profile.Variability.Precipitation; precip != nil {
			if precip.CoefficientOfVariation != nil {
				fmt.Printf("  Precip CV: %g\n", *precip.CoefficientOfVariation)
			}
			fmt.Printf("  Drought: freq=%g threshold=%g mm\n", precip.DroughtFrequency, precip.DroughtThresholdMM)
			fmt.Printf("  Wet: freq=%g threshold=%g mm\n", precip.WetFrequency, precip.WetThresholdMM)
		}
		if temp := profile.Variability.Temperature; temp != nil {
			fmt.Printf("  Thermal amplitude: %g\n", temp.ThermalAmplitudeMean)
		}
		fmt.Printf("  Years with data: %d\n", len(profile.YearlyData))
	}
}
