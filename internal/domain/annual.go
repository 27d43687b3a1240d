package domain

// AnnualSummaryStat reduces one parameter's per-year aggregates across all
// qualifying years in the range.
type AnnualSummaryStat struct {
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Std  float64 `json:"std"`
}

// Derived-metric label suffixes. Precipitation carries a total, every other
// parameter a mean; the two are different physical quantities and must not
// share a label.
const (
	annualTotalSuffix = "_annual_total_mm"
	annualMeanSuffix  = "_annual_mean"
	monthlyMeanSuffix = "_monthly_mean"
)

// AnnualSummaryLabel returns the output key for a parameter's annual
// statistic: "<param>_annual_total_mm" for precipitation,
// "<param>_annual_mean" otherwise.
func AnnualSummaryLabel(param string) string {
	if param == ParamPrecip {
		return param + annualTotalSuffix
	}
	return param + annualMeanSuffix
}

// AggregateAnnualSummary reduces a raw record into one statistic per
// parameter across qualifying years. A year qualifies only with all twelve
// months present for the parameter; incomplete years are excluded, never
// estimated. Precipitation's per-year value is the day-weighted mm/year
// total, every other parameter's is the mean of its twelve monthly values.
func AggregateAnnualSummary(record RawClimateRecord, params []string, startYear, endYear int) map[string]AnnualSummaryStat {
	summary := make(map[string]AnnualSummaryStat)
	for _, param := range params {
		if !record.HasParameter(param) {
			continue
		}

		var yearValues []float64
		if param == ParamPrecip {
			yearValues = fullCoverageAnnualTotals(record, startYear, endYear)
		} else {
			for year := startYear; year <= endYear; year++ {
				values, _ := record.yearSeries(param, year)
				if len(values) != 12 {
					continue
				}
				yearValues = append(yearValues, Mean(values))
			}
		}
		if len(yearValues) == 0 {
			continue
		}

		minVal, maxVal := minMax(yearValues)
		summary[AnnualSummaryLabel(param)] = AnnualSummaryStat{
			Mean: roundTo(Mean(yearValues), 2),
			Min:  roundTo(minVal, 2),
			Max:  roundTo(maxVal, 2),
			Std:  roundTo(SampleStdDev(yearValues), 2),
		}
	}
	return summary
}

// fullCoverageAnnualTotals returns the day-weighted annual precipitation
// total for every year in range with all twelve months present. Shared by the
// annual summary and the variability analysis so both apply the identical
// coverage rule and weighting.
func fullCoverageAnnualTotals(record RawClimateRecord, startYear, endYear int) []float64 {
	var totals []float64
	for year := startYear; year <= endYear; year++ {
		values, months := record.yearSeries(ParamPrecip, year)
		if len(values) != 12 {
			continue
		}
		totals = append(totals, dayWeightedTotal(values, months))
	}
	return totals
}

// dayWeightedTotal converts monthly mm/day rates into a mm total by weighting
// each value with its month's entry in the smoothed day-count table. months
// holds the 1-based month number of each value.
func dayWeightedTotal(values []float64, months []int) float64 {
	var total float64
	for i, v := range values {
		total += v * daysPerMonth[months[i]-1]
	}
	return total
}
