package system

import "log"

// ErrorHandler receives recoverable errors from a system. Systems skip the
// offending item and keep going after reporting.
type ErrorHandler func(error)

func report(h ErrorHandler, subsystem string, err error) {
	if err == nil {
		return
	}
	if h != nil {
		h(err)
		return
	}
	log.Printf("%s: %v", subsystem, err)
}
