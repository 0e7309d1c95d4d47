package recovery

import "fmt"

// StrictStrategy implements a fail-fast recovery strategy. Any content
// failure aborts the rendering pass.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnFailure(err error, location Location) Action {
	return ActionFail
}

// LenientStrategy implements a best-effort recovery strategy: every failure
// is replaced by a placeholder and the pass continues. Failures are
// accumulated for operator inspection after the pass.
type LenientStrategy struct {
	Errors []error
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{}
}

func (s *LenientStrategy) OnFailure(err error, location Location) Action {
	s.Errors = append(s.Errors, fmt.Errorf("%s %q (%s): %w", location.Phase, location.Shape, location.Path, err))
	return ActionPlaceholder
}
