// Package odeint provides a generic adaptive ODE integrator.
//
// The integrator advances a vector system dy/dt = f(t, y) from one time to
// another with local error control, using the embedded Dormand-Prince RK45
// pair. It works in both time directions and is agnostic of the physical
// meaning of the state vector:
//
//	ws := odeint.NewWorkspace(len(y))
//	err := ws.Integrate(derivs, t0, t1, y, tol)
//
// A [Workspace] holds the scratch vectors for one sequence of integrations
// over a fixed dimension. It is meant to be created per shooting pass and
// discarded afterwards; it is not safe for concurrent use.
package odeint
