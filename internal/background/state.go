package background

import "github.com/san-kum/primordial/internal/model"

// State is the homogeneous background: scale factor, field value, and
// field derivative with respect to conformal time. DPhi only carries
// meaning in the potential parametrization, and only forward in time;
// backward integrations leave it untouched.
type State struct {
	A    float64
	Phi  float64
	DPhi float64
}

// Target selects the stopping condition of an Evolve call.
type Target int

const (
	// TargetAH stops when the comoving expansion rate aH reaches the
	// requested value.
	TargetAH Target = iota

	// TargetPhi stops when the field reaches the requested value.
	TargetPhi

	// TargetEnd stops when accelerated expansion ends (d2a/dt2 = 0);
	// the stop value is ignored.
	TargetEnd
)

func (s *State) pack(dim int) []float64 {
	y := make([]float64, dim)
	y[model.IndexA] = s.A
	y[model.IndexPhi] = s.Phi
	if dim > model.IndexDPhi {
		y[model.IndexDPhi] = s.DPhi
	}
	return y
}

func (s *State) unpack(y []float64) {
	s.A = y[model.IndexA]
	s.Phi = y[model.IndexPhi]
	if len(y) > model.IndexDPhi {
		s.DPhi = y[model.IndexDPhi]
	}
}

// AH returns the comoving expansion rate aH of the state.
func AH(dyn model.Dynamics, s *State, dir model.Direction) (float64, error) {
	dim := dyn.BackgroundDim(dir)
	y := s.pack(dim)
	dy := make([]float64, dim)
	aux, err := dyn.DeriveBackground(dir, y, dy)
	if err != nil {
		return 0, err
	}
	return aux.AH, nil
}
