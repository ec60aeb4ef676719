package archive

import (
	"errors"
	"fmt"
	"os"
)

// Replaceable so tests can simulate EXDEV and permission failures.
var (
	renameFunc  = os.Rename
	chtimesFunc = os.Chtimes
)

// CrossDeviceError means the source and destination are on different filesystems. Files are never copied instead.
type CrossDeviceError struct {
	Src string
	Dst string
	Err error
}

func (e *CrossDeviceError) Error() string {
	return fmt.Sprintf("cannot move %q to %q across filesystems: %v", e.Src, e.Dst, e.Err)
}

func (e *CrossDeviceError) Unwrap() error { return e.Err }

// IsCrossDevice reports whether err is, or wraps, a *CrossDeviceError.
func IsCrossDevice(err error) bool {
	var e *CrossDeviceError
	return errors.As(err, &e)
}

// Rename wraps os.Rename, marking EXDEV failures as *CrossDeviceError.
func Rename(src, dst string) error {
	if err := renameFunc(src, dst); err != nil {
		if isEXDEV(err) {
			return &CrossDeviceError{Src: src, Dst: dst, Err: err}
		}
		return err
	}
	return nil
}

// ensureAbsent returns an error wrapping os.ErrExist if anything is already at path.
func ensureAbsent(path string) error {
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("destination %q: %w", path, os.ErrExist)
	} else if !os.IsNotExist(err) {
		return err
	}
	return nil
}
