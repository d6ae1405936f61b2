package metar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"k8s.io/utils/ptr"
)

// parseTime parses a time string in the format "DDHHMM"Z relative to now.
// Reports from a day later in the month than now belong to the previous month.
func parseTime(timeStr string, now time.Time) (time.Time, error) {
	matches := timeRegex.FindStringSubmatch(timeStr)
	if matches == nil {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	day, _ := strconv.Atoi(matches[1])
	hour, _ := strconv.Atoi(matches[2])
	minute, _ := strconv.Atoi(matches[3])
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return time.Time{}, fmt.Errorf("invalid time value: %s", timeStr)
	}

	now = now.UTC()
	result := time.Date(now.Year(), now.Month(), day, hour, minute, 0, 0, time.UTC)

	// Handle month rollover
	if now.Day() < day {
		result = time.Date(now.Year(), now.Month()-1, day, hour, minute, 0, 0, time.UTC)
	}

	return result, nil
}

// parseWind parses a wind string in the format "DDDSSKT", "DDDSSGGKT", "DDDSSMPS", or "DDDSSGGMPS"
func parseWind(windStr string) *Wind {
	matches := windRegex.FindStringSubmatch(windStr)
	if matches == nil {
		return nil
	}

	wind := &Wind{
		Direction: matches[1],
		Unit:      matches[5],
	}
	wind.Speed, _ = strconv.Atoi(matches[2])
	if matches[4] != "" {
		wind.Gust, _ = strconv.Atoi(matches[4])
	}

	return wind
}

// parseWindVariation splits "DDDVDDD" into its two headings.
func parseWindVariation(varStr string) (from, to int, ok bool) {
	matches := windVarRegex.FindStringSubmatch(varStr)
	if matches == nil {
		return 0, 0, false
	}
	from, _ = strconv.Atoi(matches[1])
	to, _ = strconv.Atoi(matches[2])
	return from, to, true
}

// parseCloud parses a cloud string in the format "CCCHHH", "CCCHHHTTT", "VVHHH" or a
// no-cloud code such as "NSC" or "CAVOK".
func parseCloud(cloudStr string) (Cloud, bool) {
	if matches := cloudRegex.FindStringSubmatch(cloudStr); matches != nil {
		cloud := Cloud{
			Coverage: matches[1],
			Type:     matches[3],
		}
		if matches[2] != "" {
			height, _ := strconv.Atoi(matches[2])
			cloud.Height = ptr.To(height * 100)
		}
		return cloud, true
	}

	if matches := vvRegex.FindStringSubmatch(cloudStr); matches != nil {
		height, _ := strconv.Atoi(matches[1])
		return Cloud{Coverage: "VV", Height: ptr.To(height * 100)}, true
	}

	if noCloudRegex.MatchString(cloudStr) {
		return Cloud{Coverage: cloudStr}, true
	}

	return Cloud{}, false
}

// parseTemperature parses "TT/DD" or "TT/" where a leading M marks a negative value.
func parseTemperature(tempStr string) (temp, dew *int, ok bool) {
	signed := func(sign, digits string) *int {
		v, _ := strconv.Atoi(digits)
		if sign == "M" {
			v = -v
		}
		return ptr.To(v)
	}

	if matches := tempRegex.FindStringSubmatch(tempStr); matches != nil {
		return signed(matches[1], matches[2]), signed(matches[3], matches[4]), true
	}
	if matches := tempOnlyRegex.FindStringSubmatch(tempStr); matches != nil {
		return signed(matches[1], matches[2]), nil, true
	}
	return nil, nil, false
}

// parsePressure parses an altimeter ("A2992") or QNH ("Q1013") group.
func parsePressure(pressureStr string) (value float64, unit string, ok bool) {
	if matches := pressureRegex.FindStringSubmatch(pressureStr); matches != nil {
		hundredths, _ := strconv.Atoi(matches[1])
		return float64(hundredths) / 100.0, "inHg", true
	}
	if matches := qnhRegex.FindStringSubmatch(pressureStr); matches != nil {
		hpa, _ := strconv.Atoi(matches[1])
		return float64(hpa), "hPa", true
	}
	return 0, "", false
}

// isWeatherCode reports whether s is a present weather group such as "-RA" or "+TSRA".
func isWeatherCode(s string) bool {
	matches := weatherRegex.FindStringSubmatch(s)
	if matches == nil {
		return false
	}
	descriptor, phenomena := matches[2], matches[3]
	if phenomena != "" {
		return true
	}
	// Thunderstorms and showers may stand alone ("TS", "VCSH").
	return descriptor == "TS" || descriptor == "SH"
}

// parseFraction converts "10", "1/2" or "1 1/2" to a float.
func parseFraction(s string) (float64, error) {
	var total float64
	for _, part := range strings.Fields(s) {
		num, den, isFrac := strings.Cut(part, "/")
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("invalid visibility value %q: %w", s, err)
		}
		if !isFrac {
			total += float64(n)
			continue
		}
		d, err := strconv.Atoi(den)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid visibility fraction %q", s)
		}
		total += float64(n) / float64(d)
	}
	return total, nil
}
