package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStoreUnavailable marks a failure to gather the data the resolver needs.
// Callers must fail closed on it: treat every slot as unavailable and reject
// the booking rather than assume availability.
var ErrStoreUnavailable = errors.New("appointment store unavailable")

// ValidationError reports missing or malformed booking fields. It is
// recoverable locally; the store is never contacted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ConflictError reports a booking that collides with existing clinic state:
// a booked slot, a doctor on leave, or a patient already booked that day.
// The user must pick a different value.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// PartialWriteError reports a leave-range expansion where some per-day
// writes landed and others failed. There is no rollback; the caller gets
// both lists so the surviving days can be shown or retried.
type PartialWriteError struct {
	Succeeded []string
	Failed    []string
	Errs      []error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("leave range partially written: %d day(s) saved, %d failed (%s)",
		len(e.Succeeded), len(e.Failed), strings.Join(e.Failed, ", "))
}
