package montecarlo

import (
	"math"

	"github.com/katalvlaran/isinglat/lattice"
)

// checkBeta rejects NaN, ±Inf and negative inverse temperatures.
func checkBeta(method string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return wrapf(method, ErrBadBeta, "val=%v", val)
	}
	if val < 0 {
		return wrapf(method, ErrNegativeBeta, "val=%v", val)
	}
	return nil
}

// checkCouplings requires one finite coupling per shell of g.
func checkCouplings(method string, g *lattice.Geometry, J []float64) error {
	if len(J) != len(g.Shells) {
		return wrapf(method, ErrCouplingCount, "%s has %d shells, got %d couplings", g.Name, len(g.Shells), len(J))
	}
	for k, v := range J {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return wrapf(method, ErrBadCoupling, "%s=%v", g.Shells[k].Coupling, v)
		}
	}
	return nil
}

// checkRun validates everything a sweep or cluster move reads.
func checkRun(method string, t *lattice.Table, l *lattice.Lattice, J []float64, val float64) error {
	if err := t.Matches(l); err != nil {
		return wrap(method, err)
	}
	if err := checkCouplings(method, l.Geometry(), J); err != nil {
		return err
	}
	return checkBeta(method, val)
}

func checkSteps(method string, nequilibrium, nworks int) error {
	if nequilibrium < 0 || nworks < 0 {
		return wrapf(method, ErrBadSteps, "nequilibrium=%d nworks=%d", nequilibrium, nworks)
	}
	return nil
}
