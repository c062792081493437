package util

import "github.com/pkg/errors"

// Generation errors. They are caller errors: generation never retries them.
var (
	// ErrEmptyChoiceSet reports a selection with no eligible candidate.
	ErrEmptyChoiceSet = errors.New("empty choice set")
	// ErrDomainExhausted reports a bounded value request past the type's range.
	ErrDomainExhausted = errors.New("domain exhausted")
	// ErrMalformedInput reports a table without columns or a row of the wrong width.
	ErrMalformedInput = errors.New("malformed input")
)

// IsEmptyChoiceSet reports whether err is caused by ErrEmptyChoiceSet.
func IsEmptyChoiceSet(err error) bool {
	return err != nil && errors.Cause(err) == ErrEmptyChoiceSet
}

// IsDomainExhausted reports whether err is caused by ErrDomainExhausted.
func IsDomainExhausted(err error) bool {
	return err != nil && errors.Cause(err) == ErrDomainExhausted
}

// IsMalformedInput reports whether err is caused by ErrMalformedInput.
func IsMalformedInput(err error) bool {
	return err != nil && errors.Cause(err) == ErrMalformedInput
}
