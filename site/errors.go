package site

import "errors"

var (
	ErrLevelNotFound      = errors.New("site: level not found")
	ErrMissingParentLift  = errors.New("site: cabin door has no parent lift")
	ErrMissingCabin       = errors.New("site: lift has no cabin")
	ErrFaceOccupied       = errors.New("site: cabin face already holds a door")
	ErrDoorNotOnLift      = errors.New("site: cabin door belongs to another lift")
	ErrNoCurrentWorkspace = errors.New("site: no current workspace site")
	ErrAnchorInUse        = errors.New("site: anchor has dependents")
	ErrSubordinateAnchor  = errors.New("site: anchor is subordinate")
	ErrNotAnAnchor        = errors.New("site: entity is not an anchor")
)
