package models

import "github.com/RMahshie/rfdesk/pkg/rf"

// VSWRInput is the last-edited field of the VSWR calculator
type VSWRInput struct {
	Known string  `json:"known" enum:"vswr,reflection,return_loss" required:"true" doc:"Which quantity the value holds"`
	Value float64 `json:"value" required:"true" doc:"VSWR (≥1), reflection coefficient magnitude (0 to <1) or return loss in dB (>0)"`
}

// VSWRRequest represents a VSWR / return loss conversion request
type VSWRRequest struct {
	Body VSWRInput
}

// VSWRResponse carries every match metric derived from the input
type VSWRResponse struct {
	Body struct {
		Success bool     `json:"success"`
		Data    rf.Match `json:"data"`
	}
}

// AttenuatorInput describes a resistive pad to synthesize
type AttenuatorInput struct {
	Topology      string  `json:"topology" enum:"pi,tee" required:"true" doc:"Pad topology"`
	Z0            float64 `json:"z0,omitempty" default:"50" doc:"Characteristic impedance in ohms"`
	AttenuationDB float64 `json:"attenuation_db" required:"true" doc:"Attenuation in dB (>0)"`
}

// AttenuatorRequest represents an attenuator design request
type AttenuatorRequest struct {
	Body AttenuatorInput
}

// AttenuatorResponse carries the resistor values of the designed pad
type AttenuatorResponse struct {
	Body struct {
		Success bool          `json:"success"`
		Data    rf.Attenuator `json:"data"`
	}
}

// Impedance conversion modes
const (
	SeriesToParallel = "series_to_parallel"
	ParallelToSeries = "parallel_to_series"
)

// ImpedanceInput is a resistance/reactance pair to convert
type ImpedanceInput struct {
	Mode         string   `json:"mode" enum:"series_to_parallel,parallel_to_series" required:"true" doc:"Conversion direction"`
	Resistance   float64  `json:"resistance" required:"true" doc:"Resistance in ohms (>0)"`
	Reactance    float64  `json:"reactance" required:"true" doc:"Reactance in ohms, positive inductive, negative capacitive"`
	FrequencyMHz *float64 `json:"frequency_mhz,omitempty" doc:"Optional operating frequency used to size the reactive component"`
}

// ImpedanceRequest represents a series/parallel conversion request
type ImpedanceRequest struct {
	Body ImpedanceInput
}

// ImpedanceResult is the converted pair and, when a frequency was given,
// the component realizing its reactance
type ImpedanceResult struct {
	Input     rf.Immittance `json:"input"`
	Output    rf.Immittance `json:"output"`
	Component *rf.Component `json:"component,omitempty"`
}

// ImpedanceResponse wraps an ImpedanceResult
type ImpedanceResponse struct {
	Body struct {
		Success bool            `json:"success"`
		Data    ImpedanceResult `json:"data"`
	}
}

// PowerInput is the last-edited field of the power calculator
type PowerInput struct {
	Known string  `json:"known" enum:"dbm,watts,vrms" required:"true" doc:"Which quantity the value holds"`
	Value float64 `json:"value" required:"true" doc:"Power in dBm, power in watts or RMS voltage"`
	Z0    float64 `json:"z0,omitempty" default:"50" doc:"System impedance in ohms"`
}

// PowerRequest represents a dBm / watts / Vrms conversion request
type PowerRequest struct {
	Body PowerInput
}

// PowerResponse carries the converted power level
type PowerResponse struct {
	Body struct {
		Success bool          `json:"success"`
		Data    rf.PowerLevel `json:"data"`
	}
}
