package media

import "errors"

var (
	ErrBadRequest    = errors.New("bad request")
	ErrTooLarge      = errors.New("file too large")
	ErrNotConfigured = errors.New("media storage is not configured")
)

func IsErrBadRequest(err error) bool    { return errors.Is(err, ErrBadRequest) }
func IsErrTooLarge(err error) bool      { return errors.Is(err, ErrTooLarge) }
func IsErrNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
