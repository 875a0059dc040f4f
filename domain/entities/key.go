package entities

import (
	"fmt"
	"strings"
)

// StoreKey names one independent key/value namespace. Store names are
// opaque; any non-empty string is accepted.
type StoreKey string

// ObjectKey is a validated object key. The zero value is not a valid key;
// keys are only obtained through NewObjectKey, so holding an ObjectKey is
// proof that validation has already run.
type ObjectKey struct {
	key string
}

// NewObjectKey validates raw and returns it as an ObjectKey.
// Keys must follow these rules:
//
//   - 1-1024 bytes when UTF-8 encoded.
//   - No Carriage Return or Line Feed characters.
//   - Not named `.` or `..`.
//   - No `.well-known/acme-challenge` prefix.
//   - None of `[`, `]`, `*`, `?`, `#`.
//
// The returned error is a *KeyValidationError identifying the violated rule.
func NewObjectKey(raw string) (ObjectKey, error) {
	if err := validateKey(raw); err != nil {
		return ObjectKey{}, err
	}
	return ObjectKey{key: raw}, nil
}

// String returns the underlying key string.
func (k ObjectKey) String() string {
	return k.key
}

// KeyRule identifies which validation rule an object key violated.
type KeyRule int

const (
	// KeyRuleEmpty - the key was empty.
	KeyRuleEmpty KeyRule = iota
	// KeyRuleTooLong - the key was over 1024 bytes.
	KeyRuleTooLong
	// KeyRuleWellKnown - the key started with `.well-known/acme-challenge`.
	KeyRuleWellKnown
	// KeyRuleDot - the key was named `.`.
	KeyRuleDot
	// KeyRuleDotDot - the key was named `..`.
	KeyRuleDotDot
	// KeyRuleForbiddenChar - the key contained a forbidden character.
	KeyRuleForbiddenChar
)

// KeyValidationError reports the specific rule an object key violated.
// Char is set only for KeyRuleForbiddenChar.
type KeyValidationError struct {
	Rule KeyRule
	Char string
}

func (e *KeyValidationError) Error() string {
	switch e.Rule {
	case KeyRuleEmpty:
		return "keys for objects cannot be empty"
	case KeyRuleTooLong:
		return "keys for objects cannot be over 1024 bytes in size"
	case KeyRuleWellKnown:
		return "keys for objects cannot start with `.well-known/acme-challenge`"
	case KeyRuleDot:
		return "keys for objects cannot be named `.`"
	case KeyRuleDotDot:
		return "keys for objects cannot be named `..`"
	case KeyRuleForbiddenChar:
		return fmt.Sprintf("keys for objects cannot contain a `%s`", e.Char)
	default:
		return "invalid object key"
	}
}

func validateKey(key string) error {
	switch n := len(key); {
	case n < 1:
		return &KeyValidationError{Rule: KeyRuleEmpty}
	case n > 1024:
		return &KeyValidationError{Rule: KeyRuleTooLong}
	}

	if strings.HasPrefix(key, ".well-known/acme-challenge") {
		return &KeyValidationError{Rule: KeyRuleWellKnown}
	}
	if key == ".." {
		return &KeyValidationError{Rule: KeyRuleDotDot}
	}
	if key == "." {
		return &KeyValidationError{Rule: KeyRuleDot}
	}

	for _, c := range []string{"\r", "\n", "[", "]", "*", "?", "#"} {
		if strings.Contains(key, c) {
			return &KeyValidationError{Rule: KeyRuleForbiddenChar, Char: c}
		}
	}

	return nil
}
