package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil errors are provided, nil is returned.
// If only one non-nil error is provided, it is returned unchanged.
// If more than one non-nil error is provided, a multi error is returned.
// Appending a multi error flattens it, so the result is never nested.
func Append(errs ...error) error {
	var res multiErr
	for _, err := range errs {
		if isNilErr(err) {
			continue
		}
		if m, ok := err.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, err)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a collection of errors. It is always flat.
type multiErr []error

func (errs multiErr) Error() string {
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf(
		"%d errors occurred:\n\t%s\n",
		len(errs), strings.Join(points, "\n\t"))
}

// ABCICode returns the code of the first error, consistent with the fail
// fast approach of message validation.
func (errs multiErr) ABCICode() uint32 {
	if len(errs) == 0 {
		return SuccessABCICode
	}
	return abciCode(errs[0])
}

// Unpack returns the list of all clubbed errors.
func (errs multiErr) Unpack() []error {
	return errs
}

// unpacker is implemented by errors that are a collection of other errors.
type unpacker interface {
	Unpack() []error
}

var _ unpacker = multiErr(nil)
var _ coder = multiErr(nil)
