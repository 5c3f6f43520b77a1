package common

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds surfaced by the suggestion pipeline. Match them with errors.Is.
var (
	ErrNoIngredientsAvailable      = errors.New("no ingredients available")
	ErrGenerationUnavailable       = errors.New("generation service unavailable")
	ErrMalformedGenerationOutput   = errors.New("malformed generation output")
	ErrUnexpectedResultCardinality = errors.New("unexpected result cardinality")
	ErrNotFound                    = errors.New("not found")
)

// GenerationError carries diagnostics for a failed generation request.
type GenerationError struct {
	Kind    error
	Message string
	// Raw is the model text that could not be used, if any.
	Raw string
	// Count is the number of items actually returned when Kind is ErrUnexpectedResultCardinality.
	Count int
	Err   error
}

func (e *GenerationError) Error() string {
	msg := e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewGenerationError builds a GenerationError of the given kind.
func NewGenerationError(kind error, raw string, err error, format string, args ...any) *GenerationError {
	return &GenerationError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Raw:     raw,
		Err:     err,
	}
}

// NoIngredients reports that the ingredient source for a mode was empty.
func NoIngredients(source string) *GenerationError {
	return &GenerationError{Kind: ErrNoIngredientsAvailable, Message: "no " + source + " ingredients found"}
}

// Unavailable wraps an upstream generation failure.
func Unavailable(err error) *GenerationError {
	return &GenerationError{Kind: ErrGenerationUnavailable, Err: err}
}

// Cardinality reports a result list whose length did not match the expected count.
func Cardinality(expected, actual int, raw string) *GenerationError {
	return &GenerationError{
		Kind:    ErrUnexpectedResultCardinality,
		Message: fmt.Sprintf("expected %d items, got %d", expected, actual),
		Raw:     raw,
		Count:   actual,
	}
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNoIngredientsAvailable):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a short machine-readable name for a pipeline error, or "" for other errors.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrNoIngredientsAvailable):
		return "no_ingredients_available"
	case errors.Is(err, ErrGenerationUnavailable):
		return "generation_unavailable"
	case errors.Is(err, ErrMalformedGenerationOutput):
		return "malformed_generation_output"
	case errors.Is(err, ErrUnexpectedResultCardinality):
		return "unexpected_result_cardinality"
	default:
		return ""
	}
}
