package engine

import (
	"errors"
	"fmt"
)

// MissingReferenceError signals that a required reference lookup
// (system defaults, mission base data, sample counts, qualifications)
// returned nothing. It is fatal to the whole run: reference data gaps
// are upstream integrity failures, not per-candidate conditions.
type MissingReferenceError struct {
	Kind string // what was looked up, e.g. "system_defaults", "sample_count"
	Key  string // the lookup key, empty for singletons
}

func (e *MissingReferenceError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("missing reference data: %s", e.Kind)
	}
	return fmt.Sprintf("missing reference data: %s (%s)", e.Kind, e.Key)
}

// MissingReference builds a MissingReferenceError
func MissingReference(kind, key string) error {
	return &MissingReferenceError{Kind: kind, Key: key}
}

// IsMissingReference reports whether err is (or wraps) a MissingReferenceError
func IsMissingReference(err error) bool {
	var mre *MissingReferenceError
	return errors.As(err, &mre)
}

// InvalidStateError signals internal state corruption (an unrecognized
// rotation cursor position or pipeline stage). Unlike missing reference
// data this indicates a logic defect, not a data problem. Also fatal.
type InvalidStateError struct {
	Detail string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid internal state: %s", e.Detail)
}

// IsInvalidState reports whether err is (or wraps) an InvalidStateError
func IsInvalidState(err error) bool {
	var ise *InvalidStateError
	return errors.As(err, &ise)
}
