package domain

import "errors"

// ProviderError is an upstream failure tagged with a sentinel kind.
// Error() is the provider's own message; errors.Is matches both Kind and Err.
type ProviderError struct {
	Kind error
	Err  error
}

// NewProviderError tags err with kind. A nil err stays nil.
func NewProviderError(kind, err error) error {
	if err == nil {
		return nil
	}
	return &ProviderError{Kind: kind, Err: err}
}

func (e *ProviderError) Error() string { return e.Err.Error() }

func (e *ProviderError) Unwrap() []error { return []error{e.Kind, e.Err} }

// ProviderMessage returns the message of the outermost ProviderError in the
// chain, without the local call-site prefixes. Falls back to err.Error().
func ProviderMessage(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
