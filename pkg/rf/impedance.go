package rf

import (
	"fmt"
	"math"
)

// Form tells whether an R/X pair describes a series or a parallel circuit.
type Form string

const (
	Series   Form = "series"
	Parallel Form = "parallel"
)

// Immittance is a resistance/reactance pair in one form. Positive reactance
// is inductive, negative capacitive, zero means no reactive element.
type Immittance struct {
	Form       Form    `json:"form"`
	Resistance float64 `json:"resistance"`
	Reactance  float64 `json:"reactance"`
	Q          float64 `json:"q"`
}

// SeriesToParallel converts a series Rs + jXs into the parallel pair with
// the same impedance at one frequency:
//
//	Q  = |Xs/Rs|
//	Rp = Rs + Xs²/Rs = |Z|²/Rs
//	Xp = Xs + Rs²/Xs = |Z|²/Xs
func SeriesToParallel(rs, xs float64) (Immittance, error) {
	if err := checkFinite("SeriesToParallel", "resistance", rs); err != nil {
		return Immittance{}, err
	}
	if err := checkFinite("SeriesToParallel", "reactance", xs); err != nil {
		return Immittance{}, err
	}
	if rs <= 0 {
		return Immittance{}, domainErr("SeriesToParallel", "resistance", rs, "must be positive")
	}
	if xs == 0 {
		return Immittance{Form: Parallel, Resistance: rs}, nil
	}
	// |Z| via Hypot so neither Rs² nor Xs² is formed
	z := math.Hypot(rs, xs)
	out := Immittance{
		Form:       Parallel,
		Resistance: (z / rs) * z,
		Reactance:  (z / xs) * z,
		Q:          math.Abs(xs / rs),
	}
	return out, checkImmittance("SeriesToParallel", rs, xs, out)
}

// ParallelToSeries converts a parallel Rp ∥ jXp into its series equivalent:
//
//	Q  = |Rp/Xp|
//	Rs = Rp·Xp²/(Rp²+Xp²)
//	Xs = Xp·Rp²/(Rp²+Xp²)
func ParallelToSeries(rp, xp float64) (Immittance, error) {
	if err := checkFinite("ParallelToSeries", "resistance", rp); err != nil {
		return Immittance{}, err
	}
	if err := checkFinite("ParallelToSeries", "reactance", xp); err != nil {
		return Immittance{}, err
	}
	if rp <= 0 {
		return Immittance{}, domainErr("ParallelToSeries", "resistance", rp, "must be positive")
	}
	if xp == 0 {
		return Immittance{}, domainErr("ParallelToSeries", "reactance", xp, "must not be zero")
	}
	// a and b are at most 1 in magnitude, so the products below cannot overflow
	h := math.Hypot(rp, xp)
	a, b := rp/h, xp/h
	out := Immittance{
		Form:       Series,
		Resistance: (rp * b) * b,
		Reactance:  (xp * a) * a,
		Q:          math.Abs(rp / xp),
	}
	return out, checkImmittance("ParallelToSeries", rp, xp, out)
}

// checkImmittance rejects conversions whose result overflowed, or whose
// non-zero terms underflowed to zero.
func checkImmittance(op string, r, x float64, out Immittance) error {
	if !finite(out.Resistance) || out.Resistance <= 0 || !finite(out.Q) {
		return domainErr(op, "resistance", r, "outside the representable range")
	}
	if !finite(out.Reactance) || out.Reactance == 0 {
		return domainErr(op, "reactance", x, "outside the representable range")
	}
	return nil
}

// Convert applies SeriesToParallel or ParallelToSeries depending on the
// form of the input pair.
func Convert(from Form, r, x float64) (Immittance, error) {
	switch from {
	case Series:
		return SeriesToParallel(r, x)
	case Parallel:
		return ParallelToSeries(r, x)
	}
	return Immittance{}, fmt.Errorf("rf: unknown impedance form %q", from)
}

// ComponentKind is the lumped element that realizes a reactance.
type ComponentKind string

const (
	Inductor  ComponentKind = "inductor"
	Capacitor ComponentKind = "capacitor"
)

// Component is a lumped element value realizing a reactance at one frequency.
type Component struct {
	Kind    ComponentKind `json:"kind"`
	Value   float64       `json:"value"`
	Unit    string        `json:"unit"`
	Display string        `json:"display"`
}

// ComponentFromReactance returns L = X/(2πf) for X > 0 and C = 1/(2πf|X|) for X < 0.
func ComponentFromReactance(x, frequencyHz float64) (Component, error) {
	if err := checkFinite("ComponentFromReactance", "reactance", x); err != nil {
		return Component{}, err
	}
	if err := checkFinite("ComponentFromReactance", "frequency_hz", frequencyHz); err != nil {
		return Component{}, err
	}
	if frequencyHz <= 0 {
		return Component{}, domainErr("ComponentFromReactance", "frequency_hz", frequencyHz, "must be positive")
	}
	if x == 0 {
		return Component{}, domainErr("ComponentFromReactance", "reactance", x, "zero reactance has no component")
	}
	omega := 2 * math.Pi * frequencyHz
	if x > 0 {
		l := x / omega
		return Component{Kind: Inductor, Value: l, Unit: "H", Display: FormatSI(l, "H")}, nil
	}
	c := 1 / (omega * math.Abs(x))
	return Component{Kind: Capacitor, Value: c, Unit: "F", Display: FormatSI(c, "F")}, nil
}
