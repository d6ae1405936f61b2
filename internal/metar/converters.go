package metar

import (
	"math"
	"strconv"

	"github.com/martinlindhe/unit"
)

const pascalsPerInHg = 3386.39

var cardinalDirections = []string{
	"north", "north-northeast", "northeast", "east-northeast",
	"east", "east-southeast", "southeast", "south-southeast",
	"south", "south-southwest", "southwest", "west-southwest",
	"west", "west-northwest", "northwest", "north-northwest",
}

// CelsiusToFahrenheit converts temperature from Celsius to Fahrenheit
func CelsiusToFahrenheit(celsius int) int {
	return int(math.Round(unit.FromCelsius(float64(celsius)).Fahrenheit()))
}

// InHgToMillibars converts pressure from inches of mercury to millibars (hPa)
func InHgToMillibars(inHg float64) float64 {
	p := unit.Pressure(inHg*pascalsPerInHg) * unit.Pascal
	return float64(p / unit.Millibar)
}

// MillibarsToInHg converts pressure from millibars (hPa) to inches of mercury
func MillibarsToInHg(hpa float64) float64 {
	p := unit.Pressure(hpa) * unit.Millibar
	return float64(p/unit.Pascal) / pascalsPerInHg
}

// Cardinal names the 16-point compass direction for a three digit heading.
// It returns "" for VRB or anything that is not a number.
func Cardinal(direction string) string {
	deg, err := strconv.Atoi(direction)
	if err != nil {
		return ""
	}
	index := int(float64(deg%360)/22.5+0.5) % len(cardinalDirections)
	return cardinalDirections[index]
}
