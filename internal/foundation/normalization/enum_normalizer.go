package normalization

import "fmt"

// EnumNormalizer wraps a Normalizer with a field name for error and warning text.
type EnumNormalizer[T comparable] struct {
	normalizer *Normalizer[T]
	enumName   string
}

// NewEnumNormalizer creates an enum normalizer with descriptive error messages.
func NewEnumNormalizer[T comparable](enumName string, values map[string]T, defaultValue T) *EnumNormalizer[T] {
	return &EnumNormalizer[T]{
		normalizer: NewNormalizer(values, defaultValue),
		enumName:   enumName,
	}
}

// Normalize converts raw string to enum value, returning default on invalid input.
func (e *EnumNormalizer[T]) Normalize(raw string) T {
	return e.normalizer.Normalize(raw)
}

// NormalizeWithValidation converts raw string to enum value with validation error.
func (e *EnumNormalizer[T]) NormalizeWithValidation(raw string) (T, error) {
	result, err := e.normalizer.NormalizeWithError(raw)
	if err != nil {
		return result, fmt.Errorf("invalid %s: %w", e.enumName, err)
	}
	return result, nil
}

// ValidValues returns all valid enum values for documentation/help.
func (e *EnumNormalizer[T]) ValidValues() []string {
	return e.normalizer.ValidKeys()
}

// Result is the outcome of a normalization with an optional warning
// describing how the raw value was rewritten.
type Result[T comparable] struct {
	Value   T
	Changed bool
	Warning string
}

// NormalizeWithWarning normalizes raw and records a warning when the stored
// value differs from what the user wrote. Empty input takes the default silently.
func (e *EnumNormalizer[T]) NormalizeWithWarning(field, raw string) Result[T] {
	if raw == "" {
		return Result[T]{Value: e.normalizer.Default()}
	}
	value, err := e.normalizer.NormalizeWithError(raw)
	if err != nil {
		def := e.normalizer.Default()
		return Result[T]{
			Value:   def,
			Changed: true,
			Warning: fmt.Sprintf("unknown %s %q for %s, using %v", e.enumName, raw, field, def),
		}
	}
	if cleaned := defaultNormalization(raw); cleaned != raw {
		return Result[T]{
			Value:   value,
			Changed: true,
			Warning: fmt.Sprintf("normalized %s from '%s' to '%s'", field, raw, cleaned),
		}
	}
	return Result[T]{Value: value}
}
