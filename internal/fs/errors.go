package fs

import (
	"errors"
	iofs "io/fs"
)

// ErrorKind classifies filesystem failures for logging and status display.
type ErrorKind int

const (
	ErrKindOther ErrorKind = iota
	ErrKindNotFound
	ErrKindPermission
	ErrKindCrossDevice
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindNotFound:
		return "not found"
	case ErrKindPermission:
		return "permission denied"
	case ErrKindCrossDevice:
		return "cross-device move"
	default:
		return "io error"
	}
}

// KindOf classifies err. Wrapped errors are unwrapped.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ErrKindOther
	case errors.Is(err, iofs.ErrNotExist):
		return ErrKindNotFound
	case errors.Is(err, iofs.ErrPermission):
		return ErrKindPermission
	case isCrossDevice(err):
		return ErrKindCrossDevice
	default:
		return ErrKindOther
	}
}
