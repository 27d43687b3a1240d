package domain

// PrecipitationVariability captures inter-annual precipitation event metrics
// over the full-coverage annual totals. CoefficientOfVariation is null when
// the mean total is not positive.
type PrecipitationVariability struct {
	CoefficientOfVariation *float64 `json:"coefficient_of_variation"`
	DroughtFrequency       float64  `json:"drought_frequency"`
	DroughtThresholdMM     float64  `json:"drought_threshold_mm"`
	WetFrequency           float64  `json:"wet_frequency"`
	WetThresholdMM         float64  `json:"wet_threshold_mm"`
}

// TemperatureVariability captures inter-annual temperature variability from
// the January-only and July-only mean-temperature series.
type TemperatureVariability struct {
	JanuaryStd           float64 `json:"january_std"`
	JulyStd              float64 `json:"july_std"`
	ThermalAmplitudeMean float64 `json:"thermal_amplitude_mean"`
}

// VariabilityMetrics holds both variability blocks. Either block is omitted
// when its prerequisite series is empty.
type VariabilityMetrics struct {
	Precipitation *PrecipitationVariability `json:"precipitation,omitempty"`
	Temperature   *TemperatureVariability   `json:"temperature,omitempty"`
}

// AnalyzeVariability derives inter-annual event-frequency and amplitude
// metrics from a raw record.
//
// The precipitation analysis pools the same full-coverage annual totals the
// annual summary uses. A drought year falls strictly below mean - std, a wet
// year strictly above mean + std; frequencies are fractions of the qualifying
// year count.
//
// The temperature analysis collects January and July means independently: a
// year missing January still contributes its July value and vice versa. The
// block is emitted only when both series are non-empty.
func AnalyzeVariability(record RawClimateRecord, startYear, endYear int) VariabilityMetrics {
	var metrics VariabilityMetrics

	if record.HasParameter(ParamPrecip) {
		totals := fullCoverageAnnualTotals(record, startYear, endYear)
		if len(totals) > 0 {
			mean := Mean(totals)
			std := SampleStdDev(totals)

			var cv *float64
			if mean > 0 {
				v := roundTo(std/mean, 3)
				cv = &v
			}

			droughtThreshold := mean - std
			wetThreshold := mean + std
			var droughtYears, wetYears int
			for _, total := range totals {
				if total < droughtThreshold {
					droughtYears++
				}
				if total > wetThreshold {
					wetYears++
				}
			}

			n := float64(len(totals))
			metrics.Precipitation = &PrecipitationVariability{
				CoefficientOfVariation: cv,
				DroughtFrequency:       roundTo(float64(droughtYears)/n, 3),
				DroughtThresholdMM:     roundTo(droughtThreshold, 1),
				WetFrequency:           roundTo(float64(wetYears)/n, 3),
				WetThresholdMM:         roundTo(wetThreshold, 1),
			}
		}
	}

	if record.HasParameter(ParamTemp) {
		var janTemps, julTemps []float64
		for year := startYear; year <= endYear; year++ {
			if v, ok := record.Value(ParamTemp, year, 1); ok {
				janTemps = append(janTemps, v)
			}
			if v, ok := record.Value(ParamTemp, year, 7); ok {
				julTemps = append(julTemps, v)
			}
		}
		if len(janTemps) > 0 && len(julTemps) > 0 {
			metrics.Temperature = &TemperatureVariability{
				JanuaryStd:           roundTo(SampleStdDev(janTemps), 2),
				JulyStd:              roundTo(SampleStdDev(julTemps), 2),
				ThermalAmplitudeMean: roundTo(Mean(julTemps)-Mean(janTemps), 2),
			}
		}
	}

	return metrics
}
