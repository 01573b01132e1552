package generic

import (
	"errors"
	"io"
)

// ConstError is an error that may be declared as a constant.
// Packages use it for their sentinel error kinds,
// wrapping them with context via `fmt.Errorf("%w: ...")`.
type ConstError string

func (errStr ConstError) Error() string { return string(errStr) }

// CloseWithError closes all its arguments in order,
// and joins all errors (if any) with `err`.
func CloseWithError(err error, closers ...io.Closer) error {
	var errs []error
	for _, closer := range closers {
		if cErr := closer.Close(); cErr != nil {
			errs = append(errs, cErr)
		}
	}
	if errs == nil {
		return err
	}
	return errors.Join(append([]error{err}, errs...)...)
}
