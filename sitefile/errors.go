package sitefile

import "errors"

var (
	ErrZeroID      = errors.New("sitefile: id must be non-zero")
	ErrDuplicateID = errors.New("sitefile: duplicate id")
	ErrUnknownID   = errors.New("sitefile: reference to unknown id")
	ErrEmptyVisits = errors.New("sitefile: cabin door visits no levels")
	ErrNoSite      = errors.New("sitefile: world has no site")
)
