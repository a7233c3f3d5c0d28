package touchstone

import (
	"math"

	"github.com/RMahshie/rfdesk/pkg/rf"
)

// MatchPoint is the input match at one frequency.
type MatchPoint struct {
	FrequencyMHz float64  `json:"frequency_mhz"`
	Match        rf.Match `json:"match"`
}

// Summary condenses a document into the figures shown next to its chart.
type Summary struct {
	Points   int     `json:"points"`
	Ports    int     `json:"ports"`
	StartMHz float64 `json:"start_mhz"`
	StopMHz  float64 `json:"stop_mhz"`
	// WorstMatch and BestMatch come from S11. Samples with |S11| ≥ 1 have no
	// finite VSWR and are counted in Unmatched instead.
	WorstMatch *MatchPoint `json:"worst_match,omitempty"`
	BestMatch  *MatchPoint `json:"best_match,omitempty"`
	Unmatched  int         `json:"unmatched"`
	// Insertion loss is −S21 in dB and only present for 2-port documents.
	MinInsertionLossDB *float64 `json:"min_insertion_loss_db,omitempty"`
	MaxInsertionLossDB *float64 `json:"max_insertion_loss_db,omitempty"`
}

// Summarize computes the frequency span, match extremes and insertion loss range.
func Summarize(doc *Document) Summary {
	s := Summary{Points: len(doc.Samples), Ports: doc.Ports}
	if s.Points == 0 {
		return s
	}

	s.StartMHz, s.StopMHz = math.Inf(1), math.Inf(-1)
	for _, sample := range doc.Samples {
		s.StartMHz = math.Min(s.StartMHz, sample.FrequencyMHz)
		s.StopMHz = math.Max(s.StopMHz, sample.FrequencyMHz)

		match, err := rf.MatchFrom(rf.FromReflection, reflectionOf(sample))
		if err != nil {
			s.Unmatched++
		} else {
			point := &MatchPoint{FrequencyMHz: sample.FrequencyMHz, Match: match}
			if s.WorstMatch == nil || match.Reflection > s.WorstMatch.Match.Reflection {
				s.WorstMatch = point
			}
			if s.BestMatch == nil || match.Reflection < s.BestMatch.Match.Reflection {
				s.BestMatch = point
			}
		}

		if sample.TwoPort != nil {
			il := -sample.TwoPort.S21DB
			if s.MinInsertionLossDB == nil || il < *s.MinInsertionLossDB {
				s.MinInsertionLossDB = &il
			}
			if s.MaxInsertionLossDB == nil || il > *s.MaxInsertionLossDB {
				s.MaxInsertionLossDB = &il
			}
		}
	}
	return s
}

func reflectionOf(s Sample) float64 {
	if s.TwoPort != nil {
		if s.TwoPort.S11DB <= MagnitudeFloorDB {
			return 0
		}
		mag, err := rf.DBToVoltageRatio(s.TwoPort.S11DB)
		if err != nil {
			return math.NaN()
		}
		return mag
	}
	if s.S11 != nil {
		return math.Abs(s.S11.Magnitude)
	}
	return math.NaN()
}
