// Package touchstone reads Touchstone (.s1p/.s2p) S-parameter files.
//
// Port count is inferred from the column count of the first data row: nine
// or more columns is a 2-port file, anything else a 1-port file. Touchstone
// 1.x does not declare the port count in the file body, so this is a
// convention of this reader rather than a guarantee of the format.
package touchstone

import "github.com/RMahshie/rfdesk/pkg/rf"

// Format is the pair encoding used by a data row.
type Format string

const (
	MagnitudeAngle Format = "MA"
	DecibelAngle   Format = "DB"
	RealImaginary  Format = "RI"
)

// Option line defaults.
const (
	DefaultVersion            = "2.0"
	DefaultFrequencyUnit      = rf.GHz
	DefaultParameter          = "S"
	DefaultFormat             = MagnitudeAngle
	DefaultReferenceImpedance = 50.0
)

// MagnitudeFloorDB stands in for a zero linear magnitude.
const MagnitudeFloorDB = -200.0

// Document is a parsed Touchstone file. All samples share the port count and
// canonical units: frequency in MHz, phase in degrees.
type Document struct {
	Version            string           `json:"version"`
	FrequencyUnit      rf.FrequencyUnit `json:"frequency_unit"`
	Parameter          string           `json:"parameter"`
	Format             Format           `json:"format"`
	ReferenceImpedance float64          `json:"reference_impedance"`
	Ports              int              `json:"ports"`
	Samples            []Sample         `json:"samples"`
	// Skipped counts data rows that could not be read.
	Skipped int `json:"skipped"`
}

// Polar is a linear magnitude with a phase in degrees.
type Polar struct {
	Magnitude float64 `json:"magnitude"`
	PhaseDeg  float64 `json:"phase"`
}

// TwoPort holds the four S-parameters of one 2-port row in dB and degrees.
type TwoPort struct {
	S11DB    float64 `json:"s11_db"`
	S11Phase float64 `json:"s11_phase"`
	S21DB    float64 `json:"s21_db"`
	S21Phase float64 `json:"s21_phase"`
	S12DB    float64 `json:"s12_db"`
	S12Phase float64 `json:"s12_phase"`
	S22DB    float64 `json:"s22_db"`
	S22Phase float64 `json:"s22_phase"`
}

// Sample is one frequency point. S11 is set for 1-port documents, TwoPort
// for 2-port documents.
type Sample struct {
	FrequencyMHz float64  `json:"frequency_mhz"`
	S11          *Polar   `json:"s11,omitempty"`
	TwoPort      *TwoPort `json:"s2p,omitempty"`
}

func newDocument() *Document {
	return &Document{
		Version:            DefaultVersion,
		FrequencyUnit:      DefaultFrequencyUnit,
		Parameter:          DefaultParameter,
		Format:             DefaultFormat,
		ReferenceImpedance: DefaultReferenceImpedance,
		Ports:              1,
		Samples:            []Sample{},
	}
}
