package rf

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// VoltageRatioToDB converts an amplitude ratio to decibels (20·log10).
func VoltageRatioToDB(ratio float64) (float64, error) {
	if err := checkFinite("VoltageRatioToDB", "ratio", ratio); err != nil {
		return 0, err
	}
	if ratio <= 0 {
		return 0, domainErr("VoltageRatioToDB", "ratio", ratio, "must be positive")
	}
	return 20 * math.Log10(ratio), nil
}

// DBToVoltageRatio converts decibels to an amplitude ratio.
func DBToVoltageRatio(db float64) (float64, error) {
	return fromDB("DBToVoltageRatio", db, 20)
}

// PowerRatioToDB converts a power ratio to decibels (10·log10).
func PowerRatioToDB(ratio float64) (float64, error) {
	if err := checkFinite("PowerRatioToDB", "ratio", ratio); err != nil {
		return 0, err
	}
	if ratio <= 0 {
		return 0, domainErr("PowerRatioToDB", "ratio", ratio, "must be positive")
	}
	return 10 * math.Log10(ratio), nil
}

// DBToPowerRatio converts decibels to a power ratio.
func DBToPowerRatio(db float64) (float64, error) {
	return fromDB("DBToPowerRatio", db, 10)
}

// fromDB returns 10^(db/scale). Results that overflow, or underflow to
// zero, are out of range.
func fromDB(op string, db, scale float64) (float64, error) {
	if err := checkFinite(op, "db", db); err != nil {
		return 0, err
	}
	ratio := math.Pow(10, db/scale)
	if math.IsInf(ratio, 0) || ratio == 0 {
		return 0, domainErr(op, "db", db, "outside the representable range")
	}
	return ratio, nil
}

// FrequencyUnit is a frequency scale.
type FrequencyUnit string

const (
	Hz  FrequencyUnit = "Hz"
	KHz FrequencyUnit = "kHz"
	MHz FrequencyUnit = "MHz"
	GHz FrequencyUnit = "GHz"
)

var frequencyMultipliers = map[FrequencyUnit]float64{
	Hz:  1,
	KHz: 1e3,
	MHz: 1e6,
	GHz: 1e9,
}

// ParseFrequencyUnit matches a unit token case-insensitively ("ghz", "MHZ", "Hz").
func ParseFrequencyUnit(s string) (FrequencyUnit, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "HZ":
		return Hz, true
	case "KHZ":
		return KHz, true
	case "MHZ":
		return MHz, true
	case "GHZ":
		return GHz, true
	}
	return "", false
}

// Multiplier returns the number of hertz in one unit, or 0 for an unknown unit.
func (u FrequencyUnit) Multiplier() float64 {
	return frequencyMultipliers[u]
}

// ConvertFrequency rescales v from one unit to another.
func ConvertFrequency(v float64, from, to FrequencyUnit) (float64, error) {
	f, t := from.Multiplier(), to.Multiplier()
	if f == 0 {
		return 0, fmt.Errorf("rf: unknown frequency unit %q", from)
	}
	if t == 0 {
		return 0, fmt.Errorf("rf: unknown frequency unit %q", to)
	}
	return v * f / t, nil
}

// PolarToRect builds a complex value from a linear magnitude and a phase in degrees.
func PolarToRect(magnitude, phaseDeg float64) complex128 {
	return cmplx.Rect(magnitude, phaseDeg*math.Pi/180)
}

// RectToPolar returns the linear magnitude and phase in degrees of c.
func RectToPolar(c complex128) (magnitude, phaseDeg float64) {
	r, theta := cmplx.Polar(c)
	return r, theta * 180 / math.Pi
}

var siPrefixes = []struct {
	exp    int
	prefix string
}{
	{12, "T"}, {9, "G"}, {6, "M"}, {3, "k"}, {0, ""},
	{-3, "m"}, {-6, "µ"}, {-9, "n"}, {-12, "p"}, {-15, "f"},
}

// FormatSI renders v with an engineering prefix, e.g. FormatSI(7.9577e-8, "H") = "79.577 nH".
func FormatSI(v float64, unit string) string {
	if v == 0 || !finite(v) {
		return fmt.Sprintf("%g %s", v, unit)
	}
	abs := math.Abs(v)
	for _, p := range siPrefixes {
		scale := math.Pow(10, float64(p.exp))
		if abs >= scale {
			return fmt.Sprintf("%.3f %s%s", v/scale, p.prefix, unit)
		}
	}
	last := siPrefixes[len(siPrefixes)-1]
	return fmt.Sprintf("%.3f %s%s", v/math.Pow(10, float64(last.exp)), last.prefix, unit)
}
