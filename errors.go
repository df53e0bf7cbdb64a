package tagml

import "errors"

// Sentinel errors for engine and props operations.
var (
	ErrUnknownHandler   = errors.New("tagml: no factory for handler type")
	ErrNoProps          = errors.New("tagml: element has no props attribute")
	ErrNoEncoder        = errors.New("tagml: props codec not configured")
	ErrInvalidFormat    = errors.New("tagml: invalid props format")
	ErrSignatureInvalid = errors.New("tagml: props signature verification failed")
	ErrDecryptFailed    = errors.New("tagml: props decryption failed")
)

// IsPropsError checks if err came from props decoding (format, signature,
// or decryption failure).
func IsPropsError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}

// IsUnknownHandler checks if err reports a handler type with no factory.
func IsUnknownHandler(err error) bool {
	return errors.Is(err, ErrUnknownHandler)
}
