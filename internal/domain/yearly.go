package domain

import "strconv"

// YearlyRecord holds one year's derived values keyed by derived-metric label:
// "<param>_monthly_mean" for every parameter with data, plus
// "PRECTOTCORR_annual_total_mm" when any precipitation month exists.
type YearlyRecord map[string]float64

// ExtractYearlySeries reduces a raw record into one record per year in the
// inclusive range, keyed by the year as a string. Unlike the annual summary
// there is no coverage requirement: partial years are included with whatever
// months exist, and the precipitation total is a partial estimate over the
// available months only. The two consumers serve different purposes, so this
// asymmetry is deliberate.
func ExtractYearlySeries(record RawClimateRecord, params []string, startYear, endYear int) map[string]YearlyRecord {
	series := make(map[string]YearlyRecord, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		rec := make(YearlyRecord)
		for _, param := range params {
			if !record.HasParameter(param) {
				continue
			}
			values, months := record.yearSeries(param, year)
			if len(values) == 0 {
				continue
			}
			if param == ParamPrecip {
				rec[param+annualTotalSuffix] = roundTo(dayWeightedTotal(values, months), 1)
			}
			rec[param+monthlyMeanSuffix] = roundTo(Mean(values), 2)
		}
		series[strconv.Itoa(year)] = rec
	}
	return series
}
