package wizard

import "errors"

var (
	ErrAlreadyFirstStep = errors.New("already on the first step")
	ErrAlreadyLastStep  = errors.New("already on the last step")
)

// stepper tracks position in a fixed-length wizard. Advancing runs the
// current step's validation first, so an incomplete step blocks Next
// while Back always works.
type stepper struct {
	current int
	last    int
}

func newStepper(steps int) stepper {
	return stepper{current: 0, last: steps - 1}
}

func (s *stepper) Step() int { return s.current }

func (s *stepper) advance(validate func(int) error) error {
	if s.current >= s.last {
		return ErrAlreadyLastStep
	}
	if err := validate(s.current); err != nil {
		return err
	}
	s.current++
	return nil
}

func (s *stepper) back() error {
	if s.current == 0 {
		return ErrAlreadyFirstStep
	}
	s.current--
	return nil
}
