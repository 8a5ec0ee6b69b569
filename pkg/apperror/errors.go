package apperror

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindSchedulingFailed Kind = "scheduling_failed"
	KindInternal         Kind = "internal"
)

// Detail describes one offending item of a multi-item failure, e.g. a raw
// material that is short or a claimed line item with no stock.
type Detail struct {
	Item      string `json:"item"`
	Reason    string `json:"reason"`
	Required  string `json:"required,omitempty"`
	Available string `json:"available,omitempty"`
	Shortage  string `json:"shortage,omitempty"`
}

type Error struct {
	Kind    Kind
	Message string
	Details []Detail
}

func (e *Error) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.Item, d.Reason))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(message string, details ...Detail) *Error {
	return &Error{Kind: KindConflict, Message: message, Details: details}
}

func SchedulingFailed(format string, args ...interface{}) *Error {
	return &Error{Kind: KindSchedulingFailed, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// DetailsOf returns the structured details carried by err, if any.
func DetailsOf(err error) []Detail {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}
