// Package domain models NASA POWER monthly climate observations and the
// statistical reductions that turn them into per-zone climate profiles.
//
// # Data Source
//
// Observations come from the NASA POWER temporal/monthly point API
// (https://power.larc.nasa.gov/), agroclimatology (AG) community. Each response
// carries, per parameter, a map of period keys to monthly values.
//
// # POWER Data Conventions
//
// Period keys:
//
//	Zero-padded four-digit year + two-digit month, no separator:
//	"202107" = July 2021. Built by [PeriodKey].
//
// Missing data:
//
//	-999 is the POWER sentinel for "no observation available". JSON nulls
//	occur in some responses and mean the same thing. Both are dropped at the
//	single parse boundary ([ParseRawRecord]); everything downstream reasons
//	only about present-or-absent values, never about the magic number.
//
// Units:
//
//	Temperatures in °C, relative humidity in %, wind speed in m/s, solar
//	irradiance in kW-hr/m²/day. Precipitation (PRECTOTCORR) is reported as a
//	monthly mean rate in mm/day; annual totals convert it to mm/year by
//	weighting each month with a smoothed day-count table in which February is
//	fixed at 28.25 days. The table is deliberately not leap-year aware:
//	downstream consumers are calibrated against the smoothed totals.
//
// # Coverage Rules
//
// The annual summary and the precipitation variability metrics only admit
// years with all twelve months present for the parameter; an incomplete year
// is skipped outright, never interpolated. The yearly series is the loose
// counterpart: it keeps partial years and derives values from whatever months
// exist, because it feeds per-year exploratory inspection rather than
// long-run statistics. The two rules are intentionally different.
//
// # Statistics
//
// All reductions use the arithmetic mean and the sample standard deviation
// (n-1 denominator). With fewer than two samples the standard deviation is
// defined as exactly 0 so that no NaN ever reaches a serialized document.
package domain
