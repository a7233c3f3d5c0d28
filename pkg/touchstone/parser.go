package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/RMahshie/rfdesk/pkg/rf"
)

const maxLineBytes = 1 << 20

// Parse reads Touchstone text. Rows that cannot be read are counted in
// Document.Skipped and otherwise ignored; a file without usable rows yields
// an empty sample list.
func Parse(content string) *Document {
	doc, _ := Read(strings.NewReader(content))
	return doc
}

// Read parses Touchstone text from r. The only errors returned come from r.
func Read(r io.Reader) (*Document, error) {
	p := &parser{doc: newDocument()}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		p.line(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return p.doc, fmt.Errorf("failed to read touchstone data: %w", err)
	}
	return p.doc, nil
}

type parser struct {
	doc       *Document
	sawData   bool
	freqScale float64
}

func (p *parser) line(raw string) {
	if i := strings.IndexByte(raw, '!'); i >= 0 {
		raw = raw[:i]
	}
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	switch {
	case strings.HasPrefix(line, "#"):
		p.option(line[1:])
	case strings.HasPrefix(line, "["):
		p.keyword(line)
	default:
		p.data(strings.Fields(line))
	}
}

// option applies "# <unit> <parameter> <format> R <impedance>". Tokens are
// recognized by value, so any may be missing or reordered; unknown tokens
// leave the defaults in place.
func (p *parser) option(rest string) {
	tokens := strings.Fields(rest)
	for i := 0; i < len(tokens); i++ {
		tok := strings.ToUpper(tokens[i])
		if unit, ok := rf.ParseFrequencyUnit(tok); ok {
			p.doc.FrequencyUnit = unit
			continue
		}
		switch tok {
		case "S", "Y", "Z", "H", "G", "A":
			p.doc.Parameter = tok
		case string(MagnitudeAngle), string(DecibelAngle), string(RealImaginary):
			p.doc.Format = Format(tok)
		case "R":
			if i+1 < len(tokens) {
				if z, err := strconv.ParseFloat(tokens[i+1], 64); err == nil && z > 0 && !math.IsInf(z, 0) {
					p.doc.ReferenceImpedance = z
					i++
				}
			}
		}
	}
}

// keyword handles Touchstone 2.0 "[Keyword] value" lines. Only [Version] is used.
func (p *parser) keyword(line string) {
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return
	}
	if strings.EqualFold(line[1:end], "version") {
		if v := strings.TrimSpace(line[end+1:]); v != "" {
			p.doc.Version = v
		}
	}
}

func (p *parser) data(fields []string) {
	if len(fields) < 3 {
		p.doc.Skipped++
		return
	}
	values := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			if i == 0 || i < p.columnsNeeded(len(fields)) {
				p.doc.Skipped++
				return
			}
		}
		values[i] = v
	}

	if !p.sawData {
		p.sawData = true
		if len(values) >= 9 {
			p.doc.Ports = 2
		}
		p.freqScale = p.doc.FrequencyUnit.Multiplier() / rf.MHz.Multiplier()
	}

	if len(values) < p.columnsNeeded(len(values)) {
		p.doc.Skipped++
		return
	}

	sample := Sample{FrequencyMHz: values[0] * p.freqScale}
	if p.doc.Ports == 2 {
		sample.TwoPort = p.twoPort(values[1:9])
	} else {
		mag, phase := p.polar(values[1], values[2])
		sample.S11 = &Polar{Magnitude: mag, PhaseDeg: phase}
	}
	if !sample.finite() {
		p.doc.Skipped++
		return
	}
	p.doc.Samples = append(p.doc.Samples, sample)
}

// columnsNeeded is the row width required by the document's port count. Before
// the first row is seen the port count follows from the row itself.
func (p *parser) columnsNeeded(width int) int {
	if p.doc.Ports == 2 || (!p.sawData && width >= 9) {
		return 9
	}
	return 3
}

// polar decodes one value pair to linear magnitude and degrees.
func (p *parser) polar(a, b float64) (float64, float64) {
	switch p.doc.Format {
	case DecibelAngle:
		mag, err := rf.DBToVoltageRatio(a)
		if err != nil {
			if a < 0 {
				return 0, b
			}
			return math.Inf(1), b
		}
		return mag, b
	case RealImaginary:
		return rf.RectToPolar(complex(a, b))
	}
	return a, b
}

// decibel decodes one value pair to dB and degrees.
func (p *parser) decibel(a, b float64) (float64, float64) {
	if p.doc.Format == DecibelAngle {
		if _, err := rf.DBToVoltageRatio(a); err != nil && a > 0 {
			return math.Inf(1), b
		}
		return a, b
	}
	mag, phase := p.polar(a, b)
	if math.IsInf(mag, 0) || math.IsNaN(mag) {
		return mag, phase
	}
	return magnitudeToDB(mag), phase
}

func (p *parser) twoPort(v []float64) *TwoPort {
	tp := &TwoPort{}
	tp.S11DB, tp.S11Phase = p.decibel(v[0], v[1])
	tp.S21DB, tp.S21Phase = p.decibel(v[2], v[3])
	tp.S12DB, tp.S12Phase = p.decibel(v[4], v[5])
	tp.S22DB, tp.S22Phase = p.decibel(v[6], v[7])
	return tp
}

// finite reports whether the frequency and every decoded value are finite.
func (s Sample) finite() bool {
	vals := []float64{s.FrequencyMHz}
	if s.S11 != nil {
		vals = append(vals, s.S11.Magnitude, s.S11.PhaseDeg)
	}
	if tp := s.TwoPort; tp != nil {
		vals = append(vals,
			tp.S11DB, tp.S11Phase, tp.S21DB, tp.S21Phase,
			tp.S12DB, tp.S12Phase, tp.S22DB, tp.S22Phase)
	}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func magnitudeToDB(mag float64) float64 {
	db, err := rf.VoltageRatioToDB(math.Abs(mag))
	if err != nil || db < MagnitudeFloorDB {
		return MagnitudeFloorDB
	}
	return db
}
