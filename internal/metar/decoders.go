package metar

import (
	"strings"
	"time"
)

// clock is replaced in tests to pin observation time resolution.
var clock = time.Now

// DecodeMETAR decodes a raw METAR string into a METAR struct.
//
// The first two tokens (after an optional METAR/SPECI prefix) are the station
// and observation time. Every other token up to the first remark or trend
// marker is classified on its own; anything unrecognised is kept in Unhandled
// rather than treated as an error.
func DecodeMETAR(raw string) METAR {
	m := METAR{WeatherData: WeatherData{Raw: raw}}
	parts := strings.Fields(raw)

	if len(parts) > 0 && reportTypeRegex.MatchString(parts[0]) {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return m
	}

	// Station code
	m.Station = parts[0]
	if len(parts) < 2 {
		return m
	}

	// Time
	if parsedTime, err := parseTime(parts[1], clock()); err == nil {
		m.Time = parsedTime
	}

	endIndex := len(parts)
	for i := 2; i < len(parts); i++ {
		if sectionMarkers[parts[i]] {
			endIndex = i
			break
		}
	}

	for i := 2; i < endIndex; i++ {
		part := parts[i]

		// Visibility split across two tokens, e.g. "1 1/2SM"
		if visRegexWhole.MatchString(part) && i+1 < endIndex && visRegexFrac.MatchString(parts[i+1]) {
			if merged := part + " " + parts[i+1]; formatVisibility(merged) != "" {
				if m.Visibility == "" {
					m.Visibility = merged
				}
				i++
				continue
			}
		}

		if !m.classify(part) {
			m.Unhandled = append(m.Unhandled, part)
		}
	}

	return m
}

// classify records a single token on m and reports whether it was recognised.
// The first wind, visibility, temperature and pressure group wins; sky layers
// and weather groups accumulate in input order.
func (m *METAR) classify(part string) bool {
	switch {
	case specialRegex.MatchString(part):
		m.SpecialCodes = append(m.SpecialCodes, part)

	case windRegex.MatchString(part):
		if m.Wind == nil {
			m.Wind = parseWind(part)
		}

	case windVarRegex.MatchString(part):
		if m.WindVariation == "" {
			m.WindVariation = part
		}

	case visRegexSM.MatchString(part), visRegexNum.MatchString(part):
		// A group that cannot be read, such as 1/0SM, leaves the slot open.
		if formatVisibility(part) == "" {
			return false
		}
		if m.Visibility == "" {
			m.Visibility = part
		}

	case isWeatherCode(part):
		m.Weather = append(m.Weather, part)

	case tempRegex.MatchString(part), tempOnlyRegex.MatchString(part):
		if m.Temperature == nil {
			m.Temperature, m.DewPoint, _ = parseTemperature(part)
		}

	case pressureRegex.MatchString(part), qnhRegex.MatchString(part):
		if m.PressureUnit == "" {
			m.Pressure, m.PressureUnit, _ = parsePressure(part)
		}

	default:
		cloud, ok := parseCloud(part)
		if !ok {
			return false
		}
		m.Clouds = append(m.Clouds, cloud)
	}

	return true
}

// Decode decodes raw and describes it in plain language.
func Decode(raw string) Report {
	return Describe(DecodeMETAR(raw))
}
