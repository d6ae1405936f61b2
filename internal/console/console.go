// Package console renders decoded METARs for a terminal.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/rmitchellscott/WxCraft/internal/metar"
)

var (
	labelColor   = color.New(color.FgCyan)
	dateColor    = color.New(color.FgGreen)
	sectionColor = color.New(color.FgMagenta)
	skippedColor = color.New(color.FgYellow)

	// Age-based colors
	freshColor   = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	expiredColor = color.New(color.FgRed)
)

// ErrNoInput is returned by ReadReport when the input holds no report line.
var ErrNoInput = errors.New("no METAR on input")

type Options struct {
	NoRaw bool
}

// Print writes the raw report followed by its decoded breakdown.
func Print(w io.Writer, raw string, now time.Time, opts Options) {
	if !opts.NoRaw {
		sectionColor.Fprintln(w, "----- Raw METAR -----")
		fmt.Fprintln(w, raw)
		fmt.Fprintln(w)
	}

	sectionColor.Fprintln(w, "--- Decoded METAR ---")
	fmt.Fprint(w, FormatMETAR(metar.DecodeMETAR(raw), now))
}

// ReadReport returns the first non-blank line of r.
func ReadReport(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	return "", ErrNoInput
}

// FormatMETAR formats a METAR for display with colors. Temperatures are
// also given in Fahrenheit and pressure in the other common unit.
func FormatMETAR(m metar.METAR, now time.Time) string {
	var sb strings.Builder
	report := metar.Describe(m)

	labelColor.Fprint(&sb, "Station: ")
	sb.WriteString(m.Station + "\n")

	if !m.Time.IsZero() {
		labelColor.Fprint(&sb, "Time: ")
		dateColor.Fprint(&sb, m.Time.Format("2006-01-02 15:04 UTC"))
		sb.WriteString(" ")
		ageColor(m.Time, now).Fprint(&sb, relativeTime(m.Time, now))
		sb.WriteString("\n")
	}

	writeLine(&sb, "Wind", windWithCardinal(m.Wind, report.Wind))
	writeLine(&sb, "Visibility", capitalizeFirst(report.Visibility))
	writeLine(&sb, "Weather", capitalizeFirst(strings.Join(report.Weather, ", ")))
	writeLine(&sb, "Clouds", capitalizeFirst(strings.Join(report.Sky, ", ")))

	if m.Temperature != nil {
		writeLine(&sb, "Temperature", fmt.Sprintf("%d°C | %d°F", *m.Temperature, metar.CelsiusToFahrenheit(*m.Temperature)))
		if m.DewPoint == nil {
			writeLine(&sb, "Dew Point", "Not available")
		} else {
			writeLine(&sb, "Dew Point", fmt.Sprintf("%d°C | %d°F", *m.DewPoint, metar.CelsiusToFahrenheit(*m.DewPoint)))
		}
	}

	switch m.PressureUnit {
	case "inHg":
		writeLine(&sb, "Pressure", fmt.Sprintf("%.2f inHg | %.1f hPa", m.Pressure, metar.InHgToMillibars(m.Pressure)))
	case "hPa":
		writeLine(&sb, "Pressure", fmt.Sprintf("%.0f hPa | %.2f inHg", m.Pressure, metar.MillibarsToInHg(m.Pressure)))
	}

	writeLine(&sb, "Conditions", capitalizeFirst(strings.Join(metar.SpecialConditions(m.SpecialCodes), ", ")))

	if len(m.Unhandled) > 0 {
		labelColor.Fprint(&sb, "Not decoded: ")
		skippedColor.Fprint(&sb, strings.Join(m.Unhandled, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeLine(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	labelColor.Fprint(sb, label+": ")
	sb.WriteString(value + "\n")
}

// windWithCardinal names the compass point next to the heading, as in
// "Wind from the south (180°) at 12 knots".
func windWithCardinal(wind *metar.Wind, phrase string) string {
	if wind == nil || phrase == "" {
		return ""
	}
	name := metar.Cardinal(wind.Direction)
	if name == "" || (wind.Speed == 0 && wind.Gust == 0) {
		return capitalizeFirst(phrase)
	}

	deg, _ := strconv.Atoi(wind.Direction)
	rest, ok := strings.CutPrefix(phrase, fmt.Sprintf("wind from %d°", deg))
	if !ok {
		return capitalizeFirst(phrase)
	}
	return fmt.Sprintf("Wind from the %s (%d°)%s", name, deg, rest)
}

func ageColor(t, now time.Time) *color.Color {
	minutes := int(now.Sub(t).Minutes())
	if minutes > 60 {
		return expiredColor
	} else if minutes > 30 {
		return warningColor
	}
	return freshColor
}

func relativeTime(t, now time.Time) string {
	minutes := int(now.Sub(t).Minutes())

	switch {
	case minutes < 0:
		return "(in the future)"
	case minutes < 1:
		return "(just now)"
	case minutes < 60:
		return fmt.Sprintf("(%d minutes ago)", minutes)
	case minutes < 1440:
		hours, mins := minutes/60, minutes%60
		if mins == 0 {
			return fmt.Sprintf("(%d hours ago)", hours)
		}
		return fmt.Sprintf("(%d hours, %d minutes ago)", hours, mins)
	default:
		days, hours := minutes/1440, (minutes%1440)/60
		if hours == 0 {
			return fmt.Sprintf("(%d days ago)", days)
		}
		return fmt.Sprintf("(%d days, %d hours ago)", days, hours)
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
