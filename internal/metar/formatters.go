package metar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report is the plain-language breakdown of a METAR. An empty string or nil
// slice means the report carried no group for that field.
type Report struct {
	Raw         string
	Station     string
	Observed    time.Time
	Wind        string
	Visibility  string
	Sky         []string
	Weather     []string
	Temperature string
	Pressure    string

	// Unrecognized lists tokens that were skipped while decoding.
	Unrecognized []string
}

// Field is one named entry of a Report.
type Field struct {
	Name   string
	Values []string
}

// Field names used by Report.Fields.
const (
	FieldWind        = "Wind"
	FieldVisibility  = "Visibility"
	FieldSky         = "Sky condition"
	FieldWeather     = "Weather phenomena"
	FieldTemperature = "Temperature"
	FieldPressure    = "Pressure"
)

// Fields returns the present fields in display order.
func (r Report) Fields() []Field {
	var fields []Field
	add := func(name string, values ...string) {
		var present []string
		for _, v := range values {
			if v != "" {
				present = append(present, v)
			}
		}
		if len(present) > 0 {
			fields = append(fields, Field{Name: name, Values: present})
		}
	}

	add(FieldWind, r.Wind)
	add(FieldVisibility, r.Visibility)
	add(FieldSky, r.Sky...)
	add(FieldWeather, r.Weather...)
	add(FieldTemperature, r.Temperature)
	add(FieldPressure, r.Pressure)
	return fields
}

// Empty reports whether no field could be decoded.
func (r Report) Empty() bool {
	return len(r.Fields()) == 0
}

// Describe converts a decoded METAR to its plain-language Report.
func Describe(m METAR) Report {
	r := Report{
		Raw:          m.Raw,
		Station:      m.Station,
		Observed:     m.Time,
		Wind:         formatWind(m.Wind, m.WindVariation),
		Visibility:   formatVisibility(m.Visibility),
		Temperature:  formatTemperature(m.Temperature, m.DewPoint),
		Pressure:     formatPressure(m.Pressure, m.PressureUnit),
		Unrecognized: m.Unhandled,
	}
	for _, cloud := range m.Clouds {
		r.Sky = append(r.Sky, formatCloud(cloud))
	}
	for _, wx := range m.Weather {
		r.Weather = append(r.Weather, describeWeather(wx))
	}
	return r
}

// formatWind converts a Wind struct to a human-readable string
func formatWind(wind *Wind, variation string) string {
	if wind == nil {
		return ""
	}

	unitLabel := "knots"
	if wind.Unit == "MPS" {
		unitLabel = "meters per second"
	}

	if wind.Speed == 0 && wind.Gust == 0 {
		return "calm wind"
	}

	var windStr string
	switch {
	case wind.Speed == 0 && (wind.Direction == "VRB" || wind.Direction == "000"):
		// Gusts with no sustained wind, e.g. 00000G15KT.
		windStr = "variable direction wind"
	case wind.Speed == 0:
		windStr = fmt.Sprintf("wind from %s°", trimHeading(wind.Direction))
	case wind.Direction == "VRB":
		windStr = fmt.Sprintf("variable direction wind at %d %s", wind.Speed, unitLabel)
	default:
		windStr = fmt.Sprintf("wind from %s° at %d %s", trimHeading(wind.Direction), wind.Speed, unitLabel)
	}

	if wind.Gust > 0 {
		windStr += fmt.Sprintf(", gusting to %d %s", wind.Gust, unitLabel)
	}

	if from, to, ok := parseWindVariation(variation); ok {
		windStr += fmt.Sprintf(", variable between %d° and %d°", from, to)
	}

	return windStr
}

// trimHeading drops leading zeros so "090" reads as 90.
func trimHeading(direction string) string {
	deg, err := strconv.Atoi(direction)
	if err != nil {
		return direction
	}
	return strconv.Itoa(deg)
}

// formatVisibility converts raw visibility string to human-readable format
func formatVisibility(visibility string) string {
	if visibility == "" {
		return ""
	}

	if matches := visRegexNum.FindStringSubmatch(visibility); matches != nil {
		if matches[1] == "9999" {
			return "visibility 10 kilometers or more"
		}
		meters, _ := strconv.Atoi(matches[1])
		return fmt.Sprintf("visibility %d meters", meters)
	}

	value := strings.TrimSuffix(visibility, "SM")
	qualifier := ""
	switch {
	case strings.HasPrefix(value, "P"):
		qualifier = "greater than "
		value = value[1:]
	case strings.HasPrefix(value, "M"):
		qualifier = "less than "
		value = value[1:]
	}

	miles, err := parseFraction(value)
	if err != nil {
		return ""
	}

	return fmt.Sprintf("visibility %s%s statute miles", qualifier, strconv.FormatFloat(miles, 'g', -1, 64))
}

// formatCloud converts a single sky layer to a human-readable string
func formatCloud(cloud Cloud) string {
	coverStr := cloud.Coverage
	if c, ok := cloudCoverage[cloud.Coverage]; ok {
		coverStr = c
	}

	var cloudDesc string
	switch cloud.Coverage {
	case "SKC", "CLR", "NSC", "NCD", "CAVOK":
		cloudDesc = coverStr
	case "VV":
		if cloud.Height != nil {
			cloudDesc = fmt.Sprintf("%s %d feet", coverStr, *cloud.Height)
		} else {
			cloudDesc = coverStr
		}
	default:
		cloudDesc = coverStr
		if cloud.Height != nil {
			cloudDesc = fmt.Sprintf("%s at %d feet", coverStr, *cloud.Height)
		}
	}

	if cloud.Type != "" {
		typeDesc := cloud.Type
		if t, ok := cloudTypes[cloud.Type]; ok {
			typeDesc = t
		}
		cloudDesc = fmt.Sprintf("%s (%s)", cloudDesc, typeDesc)
	}

	return cloudDesc
}

// describeWeather turns a present weather group into a phrase, e.g.
// "+TSRA" into "heavy thunderstorm with rain".
func describeWeather(code string) string {
	if code == "+FC" {
		return "tornado or waterspout"
	}

	matches := weatherRegex.FindStringSubmatch(code)
	if matches == nil {
		return code
	}
	qualifier, descriptor, phenomena := matches[1], matches[2], matches[3]

	var names []string
	for i := 0; i+2 <= len(phenomena); i += 2 {
		names = append(names, weatherPhenomena[phenomena[i:i+2]])
	}
	phrase := strings.Join(names, " and ")

	switch descriptor {
	case "":
	case "TS":
		if phrase == "" {
			phrase = weatherDescriptors[descriptor]
		} else {
			phrase = weatherDescriptors[descriptor] + " with " + phrase
		}
	case "SH":
		if phrase == "" {
			phrase = weatherDescriptors[descriptor]
		} else {
			phrase += " " + weatherDescriptors[descriptor]
		}
	default:
		phrase = weatherDescriptors[descriptor] + " " + phrase
	}

	switch qualifier {
	case "":
	case "VC":
		phrase += " " + weatherQualifiers[qualifier]
	default:
		phrase = weatherQualifiers[qualifier] + " " + phrase
	}

	return phrase
}

func formatTemperature(temp, dew *int) string {
	if temp == nil {
		return ""
	}
	if dew == nil {
		return fmt.Sprintf("temperature %d°C", *temp)
	}
	return fmt.Sprintf("temperature %d°C, dewpoint %d°C", *temp, *dew)
}

func formatPressure(pressure float64, unit string) string {
	switch unit {
	case "inHg":
		return fmt.Sprintf("altimeter %.2f inHg", pressure)
	case "hPa":
		return fmt.Sprintf("QNH %.0f hPa", pressure)
	}
	return ""
}

// SpecialConditions describes special codes such as AUTO or NOSIG.
func SpecialConditions(codes []string) []string {
	var descriptions []string
	for _, code := range codes {
		if desc, ok := specialConditions[code]; ok {
			descriptions = append(descriptions, desc)
		} else {
			descriptions = append(descriptions, code)
		}
	}
	return descriptions
}
