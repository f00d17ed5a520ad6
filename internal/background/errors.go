package background

import "errors"

var (
	// ErrInflationBroken indicates that epsilon crossed 1 during a
	// stretch of the evolution that must stay inflationary.
	ErrInflationBroken = errors.New("background: inflation interrupted")

	// ErrStepSizeCollapse indicates that the background time step fell
	// below machine precision relative to the elapsed time.
	ErrStepSizeCollapse = errors.New("background: time step below machine precision")

	// ErrAttractorNotFound indicates that the shooting series for the
	// attractor velocity did not converge.
	ErrAttractorNotFound = errors.New("background: no attractor solution")

	// ErrNoSufficientInflation indicates that no initial field value
	// yields enough e-folds before the pivot scale exits the horizon.
	ErrNoSufficientInflation = errors.New("background: not enough inflation before pivot")

	// ErrEndUnsupported indicates a TargetEnd evolution requested for a
	// parametrization without a configured end of inflation.
	ErrEndUnsupported = errors.New("background: end-of-inflation target needs a potential with an end")
)
