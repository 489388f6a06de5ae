package calculation

import (
	"fmt"
	"math"

	"github.com/rpgo/portfolio-survival/internal/domain"
)

// minDecimalReturn is the floor applied to any sampled return; a loss beyond 100% is meaningless.
const minDecimalReturn = -0.999999

// defaultDegreesOfFreedom is used when a Student-t model is configured without df.
const defaultDegreesOfFreedom = 5.0

// ReturnModel converts draws from a RandomSource into annual decimal returns.
// Draw-independent terms are computed once in NewReturnModel.
type ReturnModel struct {
	kind       domain.ReturnModelKind
	meanPct    float64
	stdDevPct  float64
	feePct     float64
	df         float64
	degenerate bool    // lognormal with zero variance
	mu         float64 // lognormal location
	sigma      float64 // lognormal scale
	tScale     float64 // decimal scale applied to the raw t draw
}

// NewReturnModel builds a sampler for the given family. Percent inputs are on the
// percent scale; df is only used by the Student-t family. A df of 0 means unset
// and becomes 5; anything else is floored at 2.
func NewReturnModel(kind domain.ReturnModelKind, meanPercent, stdDevPercent, df, feePercent float64) (*ReturnModel, error) {
	m := &ReturnModel{
		kind:      kind,
		meanPct:   meanPercent,
		stdDevPct: stdDevPercent,
		feePct:    feePercent,
	}

	switch kind {
	case domain.ReturnModelArithmetic:
	case domain.ReturnModelLognormal:
		mean := meanPercent / 100
		sd := stdDevPercent / 100
		bigM := 1 + mean
		variance := sd * sd
		if variance <= 0 {
			m.degenerate = true
			break
		}
		sigma2 := math.Log(1 + variance/(bigM*bigM))
		m.sigma = math.Sqrt(math.Max(0, sigma2))
		m.mu = math.Log(bigM) - sigma2/2
	case domain.ReturnModelStudentT:
		if df == 0 {
			df = defaultDegreesOfFreedom
		}
		m.df = math.Max(2, df)
		tVar := 1.0
		if m.df > 2 {
			tVar = m.df / (m.df - 2)
		}
		m.tScale = (stdDevPercent / 100) / math.Sqrt(tVar)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownReturnModel, int(kind))
	}
	return m, nil
}

// Sample draws one annual return as a decimal (0.05 means +5%), net of fee and
// never below -0.999999.
func (m *ReturnModel) Sample(src *RandomSource) float64 {
	var pct float64
	switch m.kind {
	case domain.ReturnModelArithmetic:
		pct = m.meanPct + src.StandardNormal()*m.stdDevPct
	case domain.ReturnModelLognormal:
		if m.degenerate {
			pct = m.meanPct
		} else {
			y := m.mu + src.StandardNormal()*m.sigma
			pct = (math.Exp(y) - 1) * 100
		}
	case domain.ReturnModelStudentT:
		pct = m.meanPct + src.StudentT(m.df)*m.tScale*100
	}

	ret := (pct - m.feePct) / 100
	if ret <= -1 {
		ret = minDecimalReturn
	}
	return ret
}

// SampleReturn draws a single decimal return without a fee. It builds a model per call;
// loops should construct a ReturnModel once and call Sample.
func SampleReturn(src *RandomSource, meanPercent, stdDevPercent float64, kind domain.ReturnModelKind, df float64) (float64, error) {
	m, err := NewReturnModel(kind, meanPercent, stdDevPercent, df, 0)
	if err != nil {
		return 0, err
	}
	return m.Sample(src), nil
}
