package domain

import "errors"

var (
	// ErrDataUnavailable indicates the portfolio document could not be loaded
	ErrDataUnavailable = errors.New("portfolio data unavailable")
	// ErrInvalidRequest indicates invalid request
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnknownCategory indicates an unknown card category
	ErrUnknownCategory = errors.New("unknown card category")
	// ErrBusy indicates a send was attempted while another is in flight
	ErrBusy = errors.New("a message is already being sent")
)
