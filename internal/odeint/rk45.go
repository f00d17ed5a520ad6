package odeint

import "math"

// DerivFunc evaluates the derivative vector dy = f(t, y). Implementations
// must not retain y or dy past the call.
type DerivFunc func(t float64, y, dy []float64) error

// Dormand-Prince coefficients (RK45)
var (
	a2 = 1.0 / 5.0
	a3 = 3.0 / 10.0
	a4 = 4.0 / 5.0
	a5 = 8.0 / 9.0

	b21 = 1.0 / 5.0
	b31 = 3.0 / 40.0
	b32 = 9.0 / 40.0
	b41 = 44.0 / 45.0
	b42 = -56.0 / 15.0
	b43 = 32.0 / 9.0
	b51 = 19372.0 / 6561.0
	b52 = -25360.0 / 2187.0
	b53 = 64448.0 / 6561.0
	b54 = -212.0 / 729.0
	b61 = 9017.0 / 3168.0
	b62 = -355.0 / 33.0
	b63 = 46732.0 / 5247.0
	b64 = 49.0 / 176.0
	b65 = -5103.0 / 18656.0

	c1 = 35.0 / 384.0
	c3 = 500.0 / 1113.0
	c4 = 125.0 / 192.0
	c5 = -2187.0 / 6784.0
	c6 = 11.0 / 84.0

	dc1 = c1 - 5179.0/57600.0
	dc3 = c3 - 7571.0/16695.0
	dc4 = c4 - 393.0/640.0
	dc5 = c5 - -92097.0/339200.0
	dc6 = c6 - 187.0/2100.0
	dc7 = -1.0 / 40.0
)

const maxSteps = 1_000_000

// Workspace holds the scratch vectors for an integration of fixed dimension.
type Workspace struct {
	n        int
	safety   float64
	minScale float64
	maxScale float64

	k1, k2, k3, k4, k5, k6, k7 []float64
	stage, next                []float64
}

func NewWorkspace(n int) *Workspace {
	w := &Workspace{
		n:        n,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 10.0,
	}
	buf := make([]float64, 9*n)
	w.k1, buf = buf[:n], buf[n:]
	w.k2, buf = buf[:n], buf[n:]
	w.k3, buf = buf[:n], buf[n:]
	w.k4, buf = buf[:n], buf[n:]
	w.k5, buf = buf[:n], buf[n:]
	w.k6, buf = buf[:n], buf[n:]
	w.k7, buf = buf[:n], buf[n:]
	w.stage, buf = buf[:n], buf[n:]
	w.next = buf[:n]
	return w
}

// Integrate advances y from t0 to t1 with local error control. t1 may be
// smaller than t0, in which case the system is integrated backward in time.
// On success y holds the state at t1.
func (w *Workspace) Integrate(f DerivFunc, t0, t1 float64, y []float64, tol float64) error {
	if len(y) != w.n {
		return ErrDimensionMismatch
	}
	if t0 == t1 {
		return nil
	}

	t := t0
	h := t1 - t0

	for step := 0; step < maxSteps; step++ {
		// do not overshoot the end of the interval
		if (t1-t-h)*(t1-t) < 0 {
			h = t1 - t
		}

		errRatio, err := w.attempt(f, t, h, y, tol)
		if err != nil {
			return err
		}

		if errRatio > 1 {
			scale := math.Max(w.minScale, w.safety*math.Pow(errRatio, -0.25))
			h *= scale
			if t+h == t {
				return ErrStepUnderflow
			}
			continue
		}

		copy(y, w.next)
		t += h
		if t == t1 || (t1-t)*(t1-t0) <= 0 {
			return nil
		}

		if errRatio > 0 {
			h *= math.Min(w.maxScale, w.safety*math.Pow(errRatio, -0.2))
		} else {
			h *= w.maxScale
		}
		if t+h == t {
			return ErrStepUnderflow
		}
	}

	return ErrTooManySteps
}

// attempt takes a trial step of size h from t, filling w.next with the
// candidate state and returning the scaled local error estimate.
func (w *Workspace) attempt(f DerivFunc, t, h float64, y []float64, tol float64) (float64, error) {
	n := w.n

	if err := f(t, y, w.k1); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.stage[i] = y[i] + h*b21*w.k1[i]
	}
	if err := f(t+a2*h, w.stage, w.k2); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.stage[i] = y[i] + h*(b31*w.k1[i]+b32*w.k2[i])
	}
	if err := f(t+a3*h, w.stage, w.k3); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.stage[i] = y[i] + h*(b41*w.k1[i]+b42*w.k2[i]+b43*w.k3[i])
	}
	if err := f(t+a4*h, w.stage, w.k4); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.stage[i] = y[i] + h*(b51*w.k1[i]+b52*w.k2[i]+b53*w.k3[i]+b54*w.k4[i])
	}
	if err := f(t+a5*h, w.stage, w.k5); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.stage[i] = y[i] + h*(b61*w.k1[i]+b62*w.k2[i]+b63*w.k3[i]+b64*w.k4[i]+b65*w.k5[i])
	}
	if err := f(t+h, w.stage, w.k6); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		w.next[i] = y[i] + h*(c1*w.k1[i]+c3*w.k3[i]+c4*w.k4[i]+c5*w.k5[i]+c6*w.k6[i])
	}
	if err := f(t+h, w.next, w.k7); err != nil {
		return 0, err
	}

	errMax := 0.0
	for i := 0; i < n; i++ {
		errEst := h * (dc1*w.k1[i] + dc3*w.k3[i] + dc4*w.k4[i] + dc5*w.k5[i] + dc6*w.k6[i] + dc7*w.k7[i])
		scale := math.Abs(y[i]) + math.Abs(h*w.k1[i]) + 1e-30
		errMax = math.Max(errMax, math.Abs(errEst)/scale)
	}

	return errMax / tol, nil
}
