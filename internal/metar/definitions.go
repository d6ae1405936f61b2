package metar

import (
	"regexp"
	"time"
)

// Intensity and proximity qualifiers that may lead a weather group
var weatherQualifiers = map[string]string{
	"-":  "light",
	"+":  "heavy",
	"VC": "in the vicinity",
}

// Descriptors sit between the qualifier and the phenomena. SH and TS are
// phrased separately in describeWeather.
var weatherDescriptors = map[string]string{
	"MI": "shallow",
	"PR": "partial",
	"BC": "patches of",
	"DR": "low drifting",
	"BL": "blowing",
	"SH": "showers",
	"TS": "thunderstorm",
	"FZ": "freezing",
}

// Common weather phenomena mapping
var weatherPhenomena = map[string]string{
	"DZ": "drizzle",
	"RA": "rain",
	"SN": "snow",
	"SG": "snow grains",
	"IC": "ice crystals",
	"PL": "ice pellets",
	"GR": "hail",
	"GS": "small hail",
	"UP": "unknown precipitation",
	"BR": "mist",
	"FG": "fog",
	"FU": "smoke",
	"VA": "volcanic ash",
	"DU": "widespread dust",
	"SA": "sand",
	"HZ": "haze",
	"PY": "spray",
	"PO": "dust whirls",
	"SQ": "squalls",
	"FC": "funnel cloud",
	"SS": "sandstorm",
	"DS": "duststorm",
}

// Common cloud coverage mapping
var cloudCoverage = map[string]string{
	"SKC":   "clear sky",
	"CLR":   "clear sky",
	"FEW":   "few clouds",
	"SCT":   "scattered clouds",
	"BKN":   "broken clouds",
	"OVC":   "overcast",
	"VV":    "vertical visibility",
	"NSC":   "no significant clouds",
	"NCD":   "no clouds detected",
	"CAVOK": "ceiling and visibility OK",
}

// Common cloud type mapping
var cloudTypes = map[string]string{
	"CB":  "cumulonimbus",
	"TCU": "towering cumulus",
}

// Special aerodrome conditions
var specialConditions = map[string]string{
	"NOSIG": "no significant changes expected",
	"AUTO":  "automated observation",
	"COR":   "corrected report",
	"CCA":   "corrected report",
	"NSW":   "no significant weather",
	"NIL":   "missing report",
	"RTD":   "routine delayed (late) observation",
}

// Tokens that end the main body of a report. Remarks and trend groups are
// not decoded.
var sectionMarkers = map[string]bool{
	"RMK":   true,
	"TEMPO": true,
	"BECMG": true,
	"INTER": true,
}

// Commonly used regular expressions
var (
	timeRegex       = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})Z$`)
	windRegex       = regexp.MustCompile(`^(VRB|\d{3})(\d{2,3})(G(\d{2,3}))?(KT|MPS)$`)
	windVarRegex    = regexp.MustCompile(`^(\d{3})V(\d{3})$`)
	visRegexSM      = regexp.MustCompile(`^([PM])?(\d+(?:/\d+)?)SM$`)
	visRegexWhole   = regexp.MustCompile(`^\d$`)
	visRegexFrac    = regexp.MustCompile(`^\d/\d{1,2}SM$`)
	visRegexNum     = regexp.MustCompile(`^(\d{4})(NDV)?$`)
	cloudRegex      = regexp.MustCompile(`^(SKC|CLR|FEW|SCT|BKN|OVC)(\d{3})?(CB|TCU)?$`)
	vvRegex         = regexp.MustCompile(`^VV(\d{3})$`)
	noCloudRegex    = regexp.MustCompile(`^(NSC|NCD|CAVOK)$`)
	tempRegex       = regexp.MustCompile(`^(M?)(\d{2})/(M?)(\d{2})$`)
	tempOnlyRegex   = regexp.MustCompile(`^(M?)(\d{2})/$`)
	pressureRegex   = regexp.MustCompile(`^A(\d{4})$`)
	qnhRegex        = regexp.MustCompile(`^Q(\d{4})$`)
	specialRegex    = regexp.MustCompile(`^(NOSIG|AUTO|COR|CCA|NSW|NIL|RTD)$`)
	weatherRegex    = regexp.MustCompile(`^([+-]|VC)?(MI|PR|BC|DR|BL|SH|TS|FZ)?((?:DZ|RA|SN|SG|IC|PL|GR|GS|UP|BR|FG|FU|VA|DU|SA|HZ|PY|PO|SQ|FC|SS|DS)*)$`)
	reportTypeRegex = regexp.MustCompile(`^(METAR|SPECI)$`)
)

// WeatherData contains common fields for different weather reports
type WeatherData struct {
	Raw     string
	Station string
	Time    time.Time
}

// Wind represents wind information in a weather report
type Wind struct {
	Direction string // three digit heading or "VRB"
	Speed     int
	Gust      int
	Unit      string // "KT" or "MPS"
}

// Cloud represents a single sky layer. Coverage is one of the cloudCoverage
// keys; Height is in feet and nil when the group carried no base.
type Cloud struct {
	Coverage string
	Height   *int
	Type     string // CB, TCU, etc.
}

// METAR represents a decoded METAR weather report
type METAR struct {
	WeatherData
	Wind          *Wind
	WindVariation string // e.g. "150V210"
	Visibility    string // raw visibility group, "1 1/2SM" when split over two tokens
	Weather       []string
	Clouds        []Cloud
	Temperature   *int
	DewPoint      *int
	Pressure      float64
	PressureUnit  string // "hPa" or "inHg"
	SpecialCodes  []string
	Unhandled     []string
}
