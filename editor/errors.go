package editor

import "errors"

var (
	ErrLiftNotFound   = errors.New("editor: lift not found")
	ErrAnchorNotFound = errors.New("editor: anchor not found")
)
