package rf

import (
	"fmt"
	"math"
)

// Topology is a resistive attenuator arrangement.
type Topology string

const (
	Pi  Topology = "pi"
	Tee Topology = "tee"
)

// Attenuator is a matched, symmetric three-resistor pad. For Pi, R1 and R3
// are the shunt arms and R2 the series arm. For Tee, R1 and R3 are the series
// arms and R2 the shunt arm.
type Attenuator struct {
	Topology      Topology `json:"topology"`
	Z0            float64  `json:"z0"`
	AttenuationDB float64  `json:"attenuation_db"`
	K             float64  `json:"k"`
	R1            float64  `json:"r1"`
	R2            float64  `json:"r2"`
	R3            float64  `json:"r3"`
}

// DesignAttenuator synthesizes a pad for the given topology.
func DesignAttenuator(topology Topology, z0, attenuationDB float64) (Attenuator, error) {
	switch topology {
	case Pi:
		return AttenuatorPi(z0, attenuationDB)
	case Tee:
		return AttenuatorTee(z0, attenuationDB)
	}
	return Attenuator{}, fmt.Errorf("rf: unknown attenuator topology %q", topology)
}

// AttenuatorPi returns a Π pad with K = 10^(A/20):
//
//	R1 = R3 = Z0(K+1)/(K−1)
//	R2      = Z0(K²−1)/(2K)
func AttenuatorPi(z0, attenuationDB float64) (Attenuator, error) {
	k, err := padFactor("AttenuatorPi", z0, attenuationDB)
	if err != nil {
		return Attenuator{}, err
	}
	shunt := z0 * (k + 1) / (k - 1)
	return Attenuator{
		Topology:      Pi,
		Z0:            z0,
		AttenuationDB: attenuationDB,
		K:             k,
		R1:            shunt,
		R2:            z0 * (k*k - 1) / (2 * k),
		R3:            shunt,
	}, nil
}

// AttenuatorTee returns a T pad with K = 10^(A/20):
//
//	R1 = R3 = Z0(K−1)/(K+1)
//	R2      = 2·Z0·K/(K²−1)
func AttenuatorTee(z0, attenuationDB float64) (Attenuator, error) {
	k, err := padFactor("AttenuatorTee", z0, attenuationDB)
	if err != nil {
		return Attenuator{}, err
	}
	series := z0 * (k - 1) / (k + 1)
	return Attenuator{
		Topology:      Tee,
		Z0:            z0,
		AttenuationDB: attenuationDB,
		K:             k,
		R1:            series,
		R2:            2 * z0 * k / (k*k - 1),
		R3:            series,
	}, nil
}

// padFactor validates the inputs and returns K. K−1 is the divisor in every
// formula, so K must stay strictly above 1 in floating point as well.
func padFactor(op string, z0, attenuationDB float64) (float64, error) {
	if err := checkFinite(op, "z0", z0); err != nil {
		return 0, err
	}
	if err := checkFinite(op, "attenuation_db", attenuationDB); err != nil {
		return 0, err
	}
	if z0 <= 0 {
		return 0, domainErr(op, "z0", z0, "must be positive")
	}
	if attenuationDB <= 0 {
		return 0, domainErr(op, "attenuation_db", attenuationDB, "must be greater than 0 dB")
	}
	k := math.Pow(10, attenuationDB/20)
	if k-1 <= 0 || math.IsInf(k, 0) {
		return 0, domainErr(op, "attenuation_db", attenuationDB, "outside the representable range")
	}
	return k, nil
}

// abcd is a real-valued two-port transmission matrix.
type abcd struct{ a, b, c, d float64 }

func (m abcd) mul(n abcd) abcd {
	return abcd{
		a: m.a*n.a + m.b*n.c,
		b: m.a*n.b + m.b*n.d,
		c: m.c*n.a + m.d*n.c,
		d: m.c*n.b + m.d*n.d,
	}
}

func seriesArm(r float64) abcd { return abcd{a: 1, b: r, c: 0, d: 1} }
func shuntArm(r float64) abcd  { return abcd{a: 1, b: 0, c: 1 / r, d: 1} }

func (at Attenuator) matrix() abcd {
	if at.Topology == Tee {
		return seriesArm(at.R1).mul(shuntArm(at.R2)).mul(seriesArm(at.R3))
	}
	return shuntArm(at.R1).mul(seriesArm(at.R2)).mul(shuntArm(at.R3))
}

// InsertionLossDB recomputes the pad's loss between Z0 terminations from its
// resistor values: S21 = 2/(A + B/Z0 + C·Z0 + D).
func (at Attenuator) InsertionLossDB() float64 {
	m := at.matrix()
	s21 := 2 / (m.a + m.b/at.Z0 + m.c*at.Z0 + m.d)
	return -20 * math.Log10(math.Abs(s21))
}

// InputResistance is the resistance seen at port 1 with port 2 terminated in Z0.
func (at Attenuator) InputResistance() float64 {
	m := at.matrix()
	return (m.a*at.Z0 + m.b) / (m.c*at.Z0 + m.d)
}
