// Package anderson accelerates the fixed-point iteration x_{k+1} = G(x_k)
// (successive substitution on ln K-values, in the vle package) using
// Anderson mixing: a short history of past residuals is used to solve a
// small least-squares problem each step, producing a mixing direction that
// converges far faster than plain substitution near convergence.
//
// The history is bounded: it is held in slices that grow by append and are
// trimmed, oldest first, to the current capacity (at most MaxHistory
// entries). It is not a pre-sized array with an explicit count.
package anderson

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

// MaxHistory is the maximum number of past (x, residual) pairs retained.
const MaxHistory = 5

const maxCondition = 1e14

// Mixer accelerates a fixed-point iteration of dimension n via Anderson
// mixing with a bounded history. It is not safe for concurrent use.
type Mixer struct {
	n          int
	capacity   int
	xs         [][]float64 // past iterates
	fs         [][]float64 // past residuals, f = G(x) - x
	rejections int

	resNorms []float64 // residual norm of each pushed f, most recent last
}

// New returns a Mixer for an n-dimensional fixed point, with history
// capacity starting at MaxHistory.
func New(n int) *Mixer {
	return &Mixer{n: n, capacity: MaxHistory}
}

// Reset drops all history, e.g. after a line-search restart.
func (m *Mixer) Reset() {
	m.xs = nil
	m.fs = nil
	m.resNorms = nil
	m.rejections = 0
	m.capacity = MaxHistory
}

// Accelerate pushes the latest iterate x and its fixed-point residual
// f = G(x) - x into the history, then returns the next iterate and whether
// this step was rejected back to plain substitution. With fewer than two
// history points it returns plain substitution x + f (never counted
// as a rejection: there isn't yet enough history to mix). Once enough
// history has accumulated, the step is rejected, the history capacity is
// reduced by one (after two consecutive rejections), and plain substitution
// is used instead, whenever any of:
//
//	(a) the QR factorization of the residual-difference matrix is
//	    ill-conditioned (condition number above 1e14);
//	(b) the mixed step is more than 10x larger than the plain step;
//	(c) the pushed residual norm increased for two consecutive calls,
//	    independent of (a) and (b) — a sign the iteration itself is
//	    diverging, not just that this particular mix is untrustworthy.
//
// Four consecutive rejections reset the history entirely.
func (m *Mixer) Accelerate(x, f []float64) (next []float64, rejected bool, err error) {
	if len(x) != m.n || len(f) != m.n {
		return nil, false, ferrors.New(ferrors.KindFatal, "anderson.Accelerate", -1, 0, "dimension mismatch")
	}

	m.xs = append(m.xs, append([]float64(nil), x...))
	m.fs = append(m.fs, append([]float64(nil), f...))
	m.resNorms = append(m.resNorms, normDiff(f, make([]float64, m.n)))
	if len(m.xs) > m.capacity {
		m.xs = m.xs[len(m.xs)-m.capacity:]
		m.fs = m.fs[len(m.fs)-m.capacity:]
	}
	if len(m.resNorms) > m.capacity+1 {
		m.resNorms = m.resNorms[len(m.resNorms)-(m.capacity+1):]
	}

	plain := make([]float64, m.n)
	for i := range plain {
		plain[i] = x[i] + f[i]
	}

	if m.residualIncreasingTwice() {
		m.registerRejection()
		return plain, true, nil
	}

	k := len(m.fs)
	if k < 2 {
		return plain, false, nil
	}

	mHist := k - 1 // number of residual differences available
	dF := mat.NewDense(m.n, mHist, nil)
	dX := mat.NewDense(m.n, mHist, nil)
	for j := 0; j < mHist; j++ {
		for i := 0; i < m.n; i++ {
			dF.Set(i, j, m.fs[j+1][i]-m.fs[j][i])
			dX.Set(i, j, m.xs[j+1][i]-m.xs[j][i])
		}
	}

	var qr mat.QR
	qr.Factorize(dF)
	if cond := qr.Cond(); math.IsInf(cond, 1) || cond > maxCondition {
		m.registerRejection()
		return plain, true, nil
	}

	fkVec := mat.NewDense(m.n, 1, append([]float64(nil), f...))
	var gamma mat.Dense
	if err := qr.SolveTo(&gamma, false, fkVec); err != nil {
		m.registerRejection()
		return plain, true, nil
	}

	next = make([]float64, m.n)
	for i := 0; i < m.n; i++ {
		var corrX, corrF float64
		for j := 0; j < mHist; j++ {
			g := gamma.At(j, 0)
			corrX += dX.At(i, j) * g
			corrF += dF.At(i, j) * g
		}
		next[i] = x[i] + f[i] - corrX - corrF
	}

	if normDiff(next, x) > 10*normDiff(plain, x) {
		m.registerRejection()
		return plain, true, nil
	}

	m.rejections = 0
	return next, false, nil
}

// residualIncreasingTwice reports whether the last three pushed residual
// norms strictly increased (i.e. the most recent push increased the norm
// two calls in a row), rejection criterion (c).
func (m *Mixer) residualIncreasingTwice() bool {
	n := len(m.resNorms)
	if n < 3 {
		return false
	}
	return m.resNorms[n-3] < m.resNorms[n-2] && m.resNorms[n-2] < m.resNorms[n-1]
}

func (m *Mixer) registerRejection() {
	m.rejections++
	if m.rejections >= 4 {
		m.Reset()
		return
	}
	if m.rejections >= 2 && m.capacity > 2 {
		m.capacity--
	}
}

func normDiff(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
