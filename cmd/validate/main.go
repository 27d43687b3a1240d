// Command validate performs structural integrity checks on a produced batch
// document: metadata completeness, per-zone profile/error exclusivity,
// statistical consistency of the reductions, and variability constraints.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -doc data/climate_profiles.json \
//	  -zones data/zones.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/agorai/climate-profiler/internal/adapter/zones"
	"github.com/agorai/climate-profiler/internal/domain"
)

var periodRe = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	docPath := flag.String("doc", "", "path to the batch document JSON")
	zonesPath := flag.String("zones", "", "optional path to the zone registry for coverage cross-check")
	flag.Parse()

	if *docPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*docPath, *zonesPath); code != 0 {
		os.Exit(code)
	}
}

func run(docPath, zonesPath string) int {
	fmt.Println("=== Climate Profile Document Validation ===")
	fmt.Println()

	data, err := os.ReadFile(docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read document: %v\n", err)
		return 1
	}

	var doc domain.BatchDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: parse document: %v\n", err)
		return 1
	}

	var registry map[string]domain.Zone
	if zonesPath != "" {
		registry, err = zones.Load(zonesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load zone registry: %v\n", err)
			return 1
		}
	}

	startYear, endYear := parsePeriod(doc.Metadata.Period)

	phases := []*phase{
		validateMetadata(doc),
		validateZoneExclusivity(doc, registry),
		validateProfiles(doc, startYear, endYear),
		validateVariability(doc),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	var profiled, errored int
	for _, zone := range doc.Zones {
		if zone.Failed() {
			errored++
		} else {
			profiled++
		}
	}
	fmt.Println()
	fmt.Printf("Zones: %d total, %d profiled, %d errored\n", len(doc.Zones), profiled, errored)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func parsePeriod(period string) (int, int) {
	m := periodRe.FindStringSubmatch(period)
	if m == nil {
		return 0, 0
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return start, end
}

// ── Phase 1: Metadata ──

func validateMetadata(doc domain.BatchDocument) *phase {
	p := &phase{name: "Phase 1: Metadata"}

	if doc.Metadata.Source == "" {
		p.errorf("metadata.source is empty")
	}
	if doc.Metadata.TemporalResolution != "monthly" {
		p.errorf("metadata.temporal_resolution is %q (expected \"monthly\")", doc.Metadata.TemporalResolution)
	}
	if doc.Metadata.GeneratedAt.IsZero() {
		p.errorf("metadata.generated_at is zero")
	}

	start, end := parsePeriod(doc.Metadata.Period)
	if start == 0 {
		p.errorf("metadata.period %q does not match YYYY-YYYY", doc.Metadata.Period)
	} else if start > end {
		p.errorf("metadata.period %q has start year after end year", doc.Metadata.Period)
	}

	if len(doc.Metadata.Parameters) == 0 {
		p.errorf("metadata.parameters is empty")
	}
	for param := range doc.Metadata.Parameters {
		if _, ok := domain.ParameterDescriptions[param]; !ok {
			p.errorf("metadata.parameters has unknown code %q", param)
		}
	}

	if len(doc.Zones) == 0 {
		p.errorf("document has no zones")
	}
	return p
}

// ── Phase 2: Zone Exclusivity ──
// Each zone carries either a climate profile or an error string, never both.

func validateZoneExclusivity(doc domain.BatchDocument, registry map[string]domain.Zone) *phase {
	p := &phase{name: "Phase 2: Zone Exclusivity"}

	for id, zone := range doc.Zones {
		if zone.ZoneName == "" {
			p.errorf("zone %s: zone_name is empty", id)
		}
		if zone.RepresentativePoint.Lat < -90 || zone.RepresentativePoint.Lat > 90 {
			p.errorf("zone %s: latitude %g out of range", id, zone.RepresentativePoint.Lat)
		}
		if zone.RepresentativePoint.Lon < -180 || zone.RepresentativePoint.Lon > 180 {
			p.errorf("zone %s: longitude %g out of range", id, zone.RepresentativePoint.Lon)
		}

		hasProfile := zone.ClimateProfile != nil
		hasError := zone.Error != ""
		switch {
		case hasProfile && hasError:
			p.errorf("zone %s: carries both a profile and error %q", id, zone.Error)
		case !hasProfile && !hasError:
			p.errorf("zone %s: carries neither a profile nor an error", id)
		}
	}

	if registry != nil {
		for id := range registry {
			if _, ok := doc.Zones[id]; !ok {
				p.errorf("registry zone %s missing from document", id)
			}
		}
		for id := range doc.Zones {
			if _, ok := registry[id]; !ok {
				p.errorf("document zone %s not present in registry", id)
			}
		}
	}
	return p
}

// ── Phase 3: Profile Consistency ──

func validateProfiles(doc domain.BatchDocument, startYear, endYear int) *phase {
	p := &phase{name: "Phase 3: Profile Consistency"}

	maxYears := endYear - startYear + 1
	for id, zone := range doc.Zones {
		if zone.ClimateProfile == nil {
			continue
		}
		checkClimatology(p, id, zone.ClimateProfile, maxYears)
		checkAnnualSummary(p, id, zone.ClimateProfile)
		checkYearlyData(p, id, zone.ClimateProfile, startYear, endYear)
	}
	return p
}

func checkClimatology(p *phase, id string, profile *domain.ClimateProfile, maxYears int) {
	for month, params := range profile.MonthlyClimatology {
		label := domain.MonthNames[month]
		for param, stats := range params {
			if stats.Min > stats.Mean || stats.Mean > stats.Max {
				p.errorf("zone %s %s %s: min/mean/max out of order (%g/%g/%g)",
					id, label, param, stats.Min, stats.Mean, stats.Max)
			}
			if stats.Std < 0 {
				p.errorf("zone %s %s %s: negative std %g", id, label, param, stats.Std)
			}
			if stats.NYears < 1 {
				p.errorf("zone %s %s %s: n_years %d below 1", id, label, param, stats.NYears)
			}
			if maxYears > 0 && stats.NYears > maxYears {
				p.errorf("zone %s %s %s: n_years %d exceeds period span %d",
					id, label, param, stats.NYears, maxYears)
			}
		}
	}
}

func checkAnnualSummary(p *phase, id string, profile *domain.ClimateProfile) {
	for label, stat := range profile.AnnualSummary {
		if !strings.HasSuffix(label, "_annual_total_mm") && !strings.HasSuffix(label, "_annual_mean") {
			p.errorf("zone %s: annual summary label %q has unknown suffix", id, label)
		}
		if stat.Min > stat.Mean || stat.Mean > stat.Max {
			p.errorf("zone %s %s: min/mean/max out of order (%g/%g/%g)",
				id, label, stat.Min, stat.Mean, stat.Max)
		}
		if stat.Std < 0 {
			p.errorf("zone %s %s: negative std %g", id, label, stat.Std)
		}
	}
}

func checkYearlyData(p *phase, id string, profile *domain.ClimateProfile, startYear, endYear int) {
	for yearKey, record := range profile.YearlyData {
		year, err := strconv.Atoi(yearKey)
		if err != nil || len(yearKey) != 4 {
			p.errorf("zone %s: yearly data key %q is not a 4-digit year", id, yearKey)
			continue
		}
		if startYear > 0 && (year < startYear || year > endYear) {
			p.errorf("zone %s: yearly data year %d outside period %d-%d", id, year, startYear, endYear)
		}
		for label := range record {
			if !strings.HasSuffix(label, "_monthly_mean") && !strings.HasSuffix(label, "_annual_total_mm") {
				p.errorf("zone %s year %s: label %q has unknown suffix", id, yearKey, label)
			}
		}
	}
}

// ── Phase 4: Variability Constraints ──

func validateVariability(doc domain.BatchDocument) *phase {
	p := &phase{name: "Phase 4: Variability Constraints"}

	for id, zone := range doc.Zones {
		if zone.ClimateProfile == nil {
			continue
		}

		if precip := zone.ClimateProfile.Variability.Precipitation; precip != nil {
			if precip.CoefficientOfVariation != nil && *precip.CoefficientOfVariation < 0 {
				p.errorf("zone %s: negative coefficient of variation %g", id, *precip.CoefficientOfVariation)
			}
			checkFrequency(p, id, "drought_frequency", precip.DroughtFrequency)
			checkFrequency(p, id, "wet_frequency", precip.WetFrequency)
			if precip.DroughtThresholdMM > precip.WetThresholdMM {
				p.errorf("zone %s: drought threshold %g above wet threshold %g",
					id, precip.DroughtThresholdMM, precip.WetThresholdMM)
			}
		}

		if temp := zone.ClimateProfile.Variability.Temperature; temp != nil {
			if temp.JanuaryStd < 0 {
				p.errorf("zone %s: negative january_std %g", id, temp.JanuaryStd)
			}
			if temp.JulyStd < 0 {
				p.errorf("zone %s: negative july_std %g", id, temp.JulyStd)
			}
		}
	}
	return p
}

func checkFrequency(p *phase, id, name string, v float64) {
	if v < 0 || v > 1 {
		p.errorf("zone %s: %s %g outside [0, 1]", id, name, v)
	}
}
