package booking

import "errors"

var (
	ErrNoServiceSelected = errors.New("no service selected")
	ErrServiceInactive   = errors.New("service is not offered")
	ErrNoSlotSelected    = errors.New("no time slot selected")
	ErrPhoneTooShort     = errors.New("phone must be at least 10 characters")
	ErrAdresseTooShort   = errors.New("address must be at least 5 characters")
	ErrVilleTooShort     = errors.New("city must be at least 2 characters")
	ErrWizardDone        = errors.New("wizard already at final stage")
)
