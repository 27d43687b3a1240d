package domain

// NASA POWER parameter codes (agroclimatology community).
const (
	ParamTemp      = "T2M"               // mean temperature at 2m (°C)
	ParamTempMax   = "T2M_MAX"           // max temperature at 2m (°C)
	ParamTempMin   = "T2M_MIN"           // min temperature at 2m (°C)
	ParamPrecip    = "PRECTOTCORR"       // precipitation corrected (mm/day)
	ParamTempRange = "T2M_RANGE"         // diurnal temperature range (°C)
	ParamHumidity  = "RH2M"              // relative humidity at 2m (%)
	ParamWindSpeed = "WS2M"              // wind speed at 2m (m/s)
	ParamSolar     = "ALLSKY_SFC_SW_DWN" // solar irradiance (kW-hr/m²/day)
)

// DefaultParameters is the ordered set of parameters fetched and aggregated
// for every zone.
var DefaultParameters = []string{
	ParamTemp,
	ParamTempMax,
	ParamTempMin,
	ParamPrecip,
	ParamTempRange,
	ParamHumidity,
	ParamWindSpeed,
	ParamSolar,
}

// ParameterDescriptions provides the human-readable descriptions embedded in
// the batch document metadata.
var ParameterDescriptions = map[string]string{
	ParamTemp:      "Temperature at 2 Meters (°C) - monthly mean",
	ParamTempMax:   "Temperature at 2 Meters Maximum (°C)",
	ParamTempMin:   "Temperature at 2 Meters Minimum (°C)",
	ParamPrecip:    "Precipitation Corrected (mm/day)",
	ParamTempRange: "Temperature Range at 2 Meters (°C)",
	ParamHumidity:  "Relative Humidity at 2 Meters (%)",
	ParamWindSpeed: "Wind Speed at 2 Meters (m/s)",
	ParamSolar:     "All Sky Surface Shortwave Downward Irradiance (kW-hr/m²/day)",
}

// MonthNames holds calendar month labels in Jan..Dec order, used as keys in
// the monthly climatology output.
var MonthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// daysPerMonth is the smoothed day-count table used to convert mm/day rates
// into annual totals. February is fixed at 28.25 days regardless of the year
// being aggregated; the table sums to 365.25.
var daysPerMonth = [12]float64{31, 28.25, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
