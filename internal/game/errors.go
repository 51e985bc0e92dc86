package game

import "errors"

var (
	// ErrSessionAlreadyRunning is returned by CreateSession while another
	// session is still active.
	ErrSessionAlreadyRunning = errors.New("game: a session is already running")
	// ErrNoActiveSession is returned by StopSession when nothing is running.
	ErrNoActiveSession = errors.New("game: no active session")
	// ErrInsufficientClients is returned by CreateSession when fewer than
	// two pads are available.
	ErrInsufficientClients = errors.New("game: not enough available pads")
)
