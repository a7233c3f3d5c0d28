package rf

import (
	"fmt"
	"math"
)

// DBmToWatts returns 10^(dBm/10)/1000.
func DBmToWatts(dbm float64) (float64, error) {
	if err := checkFinite("DBmToWatts", "dbm", dbm); err != nil {
		return 0, err
	}
	ratio, err := DBToPowerRatio(dbm - 30)
	if err != nil {
		return 0, domainErr("DBmToWatts", "dbm", dbm, "outside the representable range")
	}
	return ratio, nil
}

// WattsToDBm returns 10·log10(W) + 30. W must be positive.
func WattsToDBm(watts float64) (float64, error) {
	if err := checkFinite("WattsToDBm", "watts", watts); err != nil {
		return 0, err
	}
	if watts <= 0 {
		return 0, domainErr("WattsToDBm", "watts", watts, "must be positive")
	}
	return 10*math.Log10(watts) + 30, nil
}

// WattsToVrms returns √(W·Z0).
func WattsToVrms(watts, z0 float64) (float64, error) {
	if err := checkImpedance("WattsToVrms", z0); err != nil {
		return 0, err
	}
	if err := checkFinite("WattsToVrms", "watts", watts); err != nil {
		return 0, err
	}
	if watts < 0 {
		return 0, domainErr("WattsToVrms", "watts", watts, "must not be negative")
	}
	// √W·√Z0 stays finite where W·Z0 would overflow
	v := math.Sqrt(watts) * math.Sqrt(z0)
	if !finite(v) {
		return 0, domainErr("WattsToVrms", "watts", watts, "outside the representable range")
	}
	return v, nil
}

// VrmsToWatts returns V²/Z0.
func VrmsToWatts(vrms, z0 float64) (float64, error) {
	if err := checkImpedance("VrmsToWatts", z0); err != nil {
		return 0, err
	}
	if err := checkFinite("VrmsToWatts", "vrms", vrms); err != nil {
		return 0, err
	}
	if vrms < 0 {
		return 0, domainErr("VrmsToWatts", "vrms", vrms, "must not be negative")
	}
	w := (vrms / z0) * vrms
	if !finite(w) {
		return 0, domainErr("VrmsToWatts", "vrms", vrms, "outside the representable range")
	}
	return w, nil
}

func checkImpedance(op string, z0 float64) error {
	if err := checkFinite(op, "z0", z0); err != nil {
		return err
	}
	if z0 <= 0 {
		return domainErr(op, "z0", z0, "must be positive")
	}
	return nil
}

// PowerQuantity names the field a power conversion starts from.
type PowerQuantity string

const (
	FromDBm   PowerQuantity = "dbm"
	FromWatts PowerQuantity = "watts"
	FromVrms  PowerQuantity = "vrms"
)

// PowerLevel is one signal level expressed three ways across Z0.
type PowerLevel struct {
	DBm   float64 `json:"dbm"`
	Watts float64 `json:"watts"`
	Vrms  float64 `json:"vrms"`
	Z0    float64 `json:"z0"`
}

// ConvertPower derives all three representations from the known one. Every
// path goes through watts so the results agree with each other.
func ConvertPower(known PowerQuantity, value, z0 float64) (PowerLevel, error) {
	if err := checkImpedance("ConvertPower", z0); err != nil {
		return PowerLevel{}, err
	}

	var watts float64
	var err error
	switch known {
	case FromDBm:
		watts, err = DBmToWatts(value)
	case FromWatts:
		watts, err = value, checkFinite("ConvertPower", "watts", value)
	case FromVrms:
		watts, err = VrmsToWatts(value, z0)
	default:
		return PowerLevel{}, fmt.Errorf("rf: unknown power quantity %q", known)
	}
	if err != nil {
		return PowerLevel{}, err
	}
	if watts <= 0 {
		return PowerLevel{}, domainErr("ConvertPower", string(known), value, "zero power has no dBm value")
	}

	level := PowerLevel{Watts: watts, Z0: z0}
	if known == FromDBm {
		level.DBm = value
	} else if level.DBm, err = WattsToDBm(watts); err != nil {
		return PowerLevel{}, err
	}
	if known == FromVrms {
		level.Vrms = value
	} else if level.Vrms, err = WattsToVrms(watts, z0); err != nil {
		return PowerLevel{}, err
	}
	return level, nil
}
