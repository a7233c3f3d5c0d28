package handlers

import (
	"context"

	"github.com/RMahshie/rfdesk/pkg/models"
	"github.com/RMahshie/rfdesk/pkg/rf"
	"github.com/rs/zerolog/log"
)

// CalculatorHandler serves the RF calculators
type CalculatorHandler struct {
	metrics CalculatorMetrics
}

// NewCalculatorHandler creates a new calculator handler. metrics may be nil.
func NewCalculatorHandler(metrics CalculatorMetrics) *CalculatorHandler {
	return &CalculatorHandler{metrics: metrics}
}

func (h *CalculatorHandler) reject(calculator string, err error) error {
	if h.metrics != nil {
		h.metrics.CalculatorError(calculator, err)
	}
	log.Debug().Err(err).Str("calculator", calculator).Msg("Calculator input rejected")
	return domainError(err)
}

// VSWR derives every match metric from a VSWR, reflection coefficient or return loss
func (h *CalculatorHandler) VSWR(ctx context.Context, req *models.VSWRRequest) (*models.VSWRResponse, error) {
	match, err := rf.MatchFrom(rf.MatchQuantity(req.Body.Known), req.Body.Value)
	if err != nil {
		return nil, h.reject("vswr", err)
	}

	resp := &models.VSWRResponse{}
	resp.Body.Success = true
	resp.Body.Data = match
	return resp, nil
}

// Attenuator designs a matched Pi or Tee pad
func (h *CalculatorHandler) Attenuator(ctx context.Context, req *models.AttenuatorRequest) (*models.AttenuatorResponse, error) {
	pad, err := rf.DesignAttenuator(rf.Topology(req.Body.Topology), req.Body.Z0, req.Body.AttenuationDB)
	if err != nil {
		return nil, h.reject("attenuator", err)
	}

	resp := &models.AttenuatorResponse{}
	resp.Body.Success = true
	resp.Body.Data = pad
	return resp, nil
}

// Impedance converts between series and parallel forms and, given a
// frequency, names the component that realizes the output reactance
func (h *CalculatorHandler) Impedance(ctx context.Context, req *models.ImpedanceRequest) (*models.ImpedanceResponse, error) {
	from := rf.Series
	if req.Body.Mode == models.ParallelToSeries {
		from = rf.Parallel
	}

	out, err := rf.Convert(from, req.Body.Resistance, req.Body.Reactance)
	if err != nil {
		return nil, h.reject("impedance", err)
	}

	result := models.ImpedanceResult{
		Input: rf.Immittance{
			Form:       from,
			Resistance: req.Body.Resistance,
			Reactance:  req.Body.Reactance,
			Q:          out.Q,
		},
		Output: out,
	}

	if req.Body.FrequencyMHz != nil && out.Reactance != 0 {
		component, err := rf.ComponentFromReactance(out.Reactance, *req.Body.FrequencyMHz*1e6)
		if err != nil {
			return nil, h.reject("impedance", err)
		}
		result.Component = &component
	}

	resp := &models.ImpedanceResponse{}
	resp.Body.Success = true
	resp.Body.Data = result
	return resp, nil
}

// Power converts between dBm, watts and RMS volts across Z0
func (h *CalculatorHandler) Power(ctx context.Context, req *models.PowerRequest) (*models.PowerResponse, error) {
	level, err := rf.ConvertPower(rf.PowerQuantity(req.Body.Known), req.Body.Value, req.Body.Z0)
	if err != nil {
		return nil, h.reject("power", err)
	}

	resp := &models.PowerResponse{}
	resp.Body.Success = true
	resp.Body.Data = level
	return resp, nil
}
