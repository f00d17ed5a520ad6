package background

import (
	"fmt"
	"math"

	"github.com/san-kum/primordial/internal/config"
	"github.com/san-kum/primordial/internal/model"
)

// FindAttractor determines the attractor value of dphi/dt at phi0 by
// shooting. The series starts from the slow-roll prediction at phi0
// itself; each pass moves the starting point roughly one e-fold
// earlier, seeds it with the local slow-roll velocity, and integrates
// forward to phi0. Once the arrival velocity stabilizes within the
// requested relative precision, the attractor is considered found and
// the corresponding Hubble rate at phi0 is returned with it.
func FindAttractor(m *model.PotentialModel, prec *config.Precision, phi0, precision float64) (h0, dphidt0 float64, err error) {
	v0, _, _, err := m.CheckPotential(phi0)
	if err != nil {
		return 0, 0, err
	}

	dphidtNew, err := m.SlowRollVelocity(phi0)
	if err != nil {
		return 0, 0, err
	}
	// guarantees at least one shooting pass
	dphidtOld := dphidtNew / (precision + 2.)

	phi := phi0
	for iter := 0; math.Abs(dphidtNew/dphidtOld-1.) >= precision; iter++ {
		if iter >= prec.AttractorMaxIter {
			return 0, 0, fmt.Errorf("%w near phi=%g after %d passes (precision %g): potential probably too steep here",
				ErrAttractorNotFound, phi0, iter, precision)
		}
		dphidtOld = dphidtNew

		// one more e-fold back (dV < 0, so the step is negative)
		v, dv, _, err := m.CheckPotential(phi)
		if err != nil {
			return 0, 0, err
		}
		phi += dv / v / 16. / math.Pi

		vel, err := m.SlowRollVelocity(phi)
		if err != nil {
			return 0, 0, err
		}

		s := State{A: 1., Phi: phi, DPhi: vel}
		if err := Evolve(m, prec, &s, TargetPhi, phi0, true, model.Forward); err != nil {
			return 0, 0, err
		}
		dphidtNew = s.DPhi / s.A
	}

	dphidt0 = dphidtNew
	h0 = math.Sqrt((8. * math.Pi / 3.) * (0.5*dphidt0*dphidt0 + v0))
	return h0, dphidt0, nil
}
