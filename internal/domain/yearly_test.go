package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractYearlySeries(t *testing.T) {
	t.Run("partial year included with available months", func(t *testing.T) {
		record := RawClimateRecord{}
		fillYears(record, ParamTemp, 10.0, 2021, 2021)
		delete(record[ParamTemp], PeriodKey(2021, 12)) // 11 of 12 months

		series := ExtractYearlySeries(record, []string{ParamTemp}, 2021, 2021)

		rec, ok := series["2021"]
		require.True(t, ok)
		assert.Equal(t, 10.0, rec["T2M_monthly_mean"], "mean over the 11 available months")
	})

	t.Run("asymmetry with annual summary on partial years", func(t *testing.T) {
		record := RawClimateRecord{}
		fillYears(record, ParamTemp, 10.0, 2021, 2021)
		delete(record[ParamTemp], PeriodKey(2021, 12))

		summary := AggregateAnnualSummary(record, []string{ParamTemp}, 2021, 2021)
		series := ExtractYearlySeries(record, []string{ParamTemp}, 2021, 2021)

		assert.Empty(t, summary, "annual summary excludes the incomplete year")
		assert.Contains(t, series["2021"], "T2M_monthly_mean", "yearly series keeps it")
	})

	t.Run("precipitation gets partial day weighted total", func(t *testing.T) {
		// Only January and February present, 2 mm/day each.
		record := RawClimateRecord{ParamPrecip: {
			PeriodKey(2021, 1): 2.0,
			PeriodKey(2021, 2): 2.0,
		}}

		series := ExtractYearlySeries(record, []string{ParamPrecip}, 2021, 2021)

		rec := series["2021"]
		assert.InDelta(t, 2.0*31+2.0*28.25, rec["PRECTOTCORR_annual_total_mm"], 0.05)
		assert.Equal(t, 2.0, rec["PRECTOTCORR_monthly_mean"])
	})

	t.Run("year with no data yields an empty record, not a missing year", func(t *testing.T) {
		record := RawClimateRecord{}
		fillYears(record, ParamTemp, 10.0, 2021, 2021)

		series := ExtractYearlySeries(record, []string{ParamTemp}, 2021, 2022)

		require.Contains(t, series, "2022")
		assert.Empty(t, series["2022"])
	})

	t.Run("rounding", func(t *testing.T) {
		record := RawClimateRecord{ParamTemp: {
			PeriodKey(2021, 1): 10.123,
			PeriodKey(2021, 2): 10.456,
		}}

		series := ExtractYearlySeries(record, []string{ParamTemp}, 2021, 2021)
		assert.Equal(t, 10.29, series["2021"]["T2M_monthly_mean"])
	})
}
