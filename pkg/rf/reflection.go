package rf

import (
	"errors"
	"fmt"
	"math"
)

// VSWRToReflection returns |Γ| = (VSWR−1)/(VSWR+1). VSWR must be ≥ 1.
func VSWRToReflection(vswr float64) (float64, error) {
	if err := checkFinite("VSWRToReflection", "vswr", vswr); err != nil {
		return 0, err
	}
	if vswr < 1 {
		return 0, domainErr("VSWRToReflection", "vswr", vswr, "must be at least 1")
	}
	return (vswr - 1) / (vswr + 1), nil
}

// ReflectionToVSWR returns (1+|Γ|)/(1−|Γ|). |Γ| = 1 is a total reflection and
// gives an infinite VSWR, so it is rejected along with anything above it.
func ReflectionToVSWR(gamma float64) (float64, error) {
	if err := checkReflection("ReflectionToVSWR", gamma); err != nil {
		return 0, err
	}
	return (1 + gamma) / (1 - gamma), nil
}

// ReflectionToReturnLossDB returns −20·log10|Γ|. A zero reflection is a
// perfect match and returns ErrPerfectMatch.
func ReflectionToReturnLossDB(gamma float64) (float64, error) {
	if err := checkReflection("ReflectionToReturnLossDB", gamma); err != nil {
		return 0, err
	}
	if gamma == 0 {
		return 0, ErrPerfectMatch
	}
	return -20 * math.Log10(gamma), nil
}

// ReturnLossToReflection returns |Γ| = 10^(−RL/20). RL must be positive.
func ReturnLossToReflection(returnLossDB float64) (float64, error) {
	if err := checkFinite("ReturnLossToReflection", "return_loss_db", returnLossDB); err != nil {
		return 0, err
	}
	if returnLossDB <= 0 {
		return 0, domainErr("ReturnLossToReflection", "return_loss_db", returnLossDB, "must be greater than 0 dB")
	}
	return math.Pow(10, -returnLossDB/20), nil
}

// ReflectionToMismatchLossDB returns −10·log10(1−|Γ|²).
func ReflectionToMismatchLossDB(gamma float64) (float64, error) {
	if err := checkReflection("ReflectionToMismatchLossDB", gamma); err != nil {
		return 0, err
	}
	return -10 * math.Log10(1-gamma*gamma), nil
}

func checkReflection(op string, gamma float64) error {
	if err := checkFinite(op, "reflection", gamma); err != nil {
		return err
	}
	if gamma < 0 {
		return domainErr(op, "reflection", gamma, "must not be negative")
	}
	if gamma >= 1 {
		return domainErr(op, "reflection", gamma, "must be below 1 (VSWR would be infinite)")
	}
	return nil
}

// MatchQuantity names the field a match calculation starts from.
type MatchQuantity string

const (
	FromVSWR       MatchQuantity = "vswr"
	FromReflection MatchQuantity = "reflection"
	FromReturnLoss MatchQuantity = "return_loss"
)

// Match holds every metric derived from a single mismatch value.
type Match struct {
	VSWR       float64 `json:"vswr"`
	Reflection float64 `json:"reflection"`
	// ReturnLossDB is 0 when PerfectMatch is set.
	ReturnLossDB        float64 `json:"return_loss_db"`
	PerfectMatch        bool    `json:"perfect_match"`
	MismatchLossDB      float64 `json:"mismatch_loss_db"`
	PowerTransmittedPct float64 `json:"power_transmitted_pct"`
	PowerReflectedPct   float64 `json:"power_reflected_pct"`
}

// MatchFrom derives the full set of match metrics from whichever quantity
// was entered last.
func MatchFrom(known MatchQuantity, value float64) (Match, error) {
	var gamma float64
	var err error
	switch known {
	case FromVSWR:
		gamma, err = VSWRToReflection(value)
	case FromReflection:
		gamma, err = value, checkReflection("MatchFrom", value)
	case FromReturnLoss:
		gamma, err = ReturnLossToReflection(value)
	default:
		return Match{}, fmt.Errorf("rf: unknown match quantity %q", known)
	}
	if err != nil {
		return Match{}, err
	}
	if gamma >= 1 {
		// large VSWR or tiny return loss can round |Γ| up to exactly 1
		return Match{}, domainErr("MatchFrom", string(known), value, "too close to total reflection")
	}
	return matchFromReflection(gamma)
}

func matchFromReflection(gamma float64) (Match, error) {
	vswr, err := ReflectionToVSWR(gamma)
	if err != nil {
		return Match{}, err
	}
	m := Match{VSWR: vswr, Reflection: gamma}

	rl, err := ReflectionToReturnLossDB(gamma)
	switch {
	case errors.Is(err, ErrPerfectMatch):
		m.PerfectMatch = true
	case err != nil:
		return Match{}, err
	default:
		m.ReturnLossDB = rl
	}

	if m.MismatchLossDB, err = ReflectionToMismatchLossDB(gamma); err != nil {
		return Match{}, err
	}
	reflected := gamma * gamma
	m.PowerReflectedPct = reflected * 100
	m.PowerTransmittedPct = (1 - reflected) * 100
	return m, nil
}
