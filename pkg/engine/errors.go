// pkg/engine/errors.go
package engine

import (
	"errors"
	"fmt"
	"strings"
)

const (
	errorCodeConfigSource = "CONFIG_SOURCE"
	errorCodePluginLoad   = "PLUGIN_LOAD"
	errorCodeParameter    = "PARAMETER"
	errorCodeValidation   = "VALIDATION"
	errorCodeOutputPath   = "OUTPUT_PATH"
	errorCodePhaseFailed  = "PHASE_FAILED"
)

var (
	// ErrConfigSource indicates the configuration document could not be read.
	ErrConfigSource = errors.New("config source unreadable")

	// ErrPluginLoad indicates an identifier with no registered plugin.
	ErrPluginLoad = errors.New("plugin load failed")

	// ErrParameter indicates a required or discovered parameter left
	// unresolved after configure.
	ErrParameter = errors.New("parameter unresolved")

	// ErrValidation indicates plugin data that fails the shared schema.
	ErrValidation = errors.New("plugin data invalid")

	// ErrOutputPath indicates an unwritable output destination, detected
	// before computation starts.
	ErrOutputPath = errors.New("output path unwritable")

	// ErrPhaseFailed indicates a plugin's own configure/extract/render
	// call returned an error.
	ErrPhaseFailed = errors.New("phase handler failed")
)

type errorCoder interface {
	error
	Code() string
}

type withCodeError struct {
	error
	code string
}

func (e *withCodeError) Code() string { return e.code }

func (e *withCodeError) Unwrap() error { return e.error }

// WithErrorCode annotates err with an engine error code.
func WithErrorCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &withCodeError{error: err, code: code}
}

// WrapConfigSourceError annotates a configuration read failure.
func WrapConfigSourceError(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: %w", ErrConfigSource, err), errorCodeConfigSource)
}

// NewPluginLoadError reports an identifier that resolves to no plugin.
func NewPluginLoadError(section string, err error) error {
	return WithErrorCode(fmt.Errorf("%w: section %q: %w", ErrPluginLoad, section, err), errorCodePluginLoad)
}

// NewParameterError names the parameters left unresolved in a section
// after its configure handler returned.
func NewParameterError(section string, params []string) error {
	return WithErrorCode(
		fmt.Errorf("%w: section %q: %s", ErrParameter, section, strings.Join(params, ", ")),
		errorCodeParameter,
	)
}

// WrapValidationError annotates a schema failure for one plugin's data.
func WrapValidationError(section string, err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: plugin %q: %w", ErrValidation, section, err), errorCodeValidation)
}

// WrapOutputPathError annotates an unwritable output destination.
func WrapOutputPathError(err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(fmt.Errorf("%w: %w", ErrOutputPath, err), errorCodeOutputPath)
}

// WrapPhaseError annotates a failure inside a section's phase handler.
func WrapPhaseError(phase, section string, err error) error {
	if err == nil {
		return nil
	}
	return WithErrorCode(
		fmt.Errorf("%w: %s of section %q: %w", ErrPhaseFailed, phase, section, err),
		errorCodePhaseFailed,
	)
}

// ErrorCode resolves an error to its engine error code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var coded errorCoder
	if errors.As(err, &coded) {
		if code := coded.Code(); code != "" {
			return code
		}
	}

	switch {
	case errors.Is(err, ErrConfigSource):
		return errorCodeConfigSource
	case errors.Is(err, ErrPluginLoad):
		return errorCodePluginLoad
	case errors.Is(err, ErrParameter):
		return errorCodeParameter
	case errors.Is(err, ErrValidation):
		return errorCodeValidation
	case errors.Is(err, ErrOutputPath):
		return errorCodeOutputPath
	default:
		return errorCodePhaseFailed
	}
}

// ExitCode maps errors to CLI exit codes.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch {
	case errors.Is(err, ErrConfigSource), errors.Is(err, ErrOutputPath):
		return 4
	case errors.Is(err, ErrPluginLoad), errors.Is(err, ErrParameter), errors.Is(err, ErrValidation):
		return 2
	default:
		return 1
	}
}

// Suggestions provides human readable guidance for CLI usage.
func Suggestions(err error) []string {
	if err == nil {
		return nil
	}

	switch ErrorCode(err) {
	case errorCodeConfigSource:
		return []string{
			"Verify the config document path exists",
			"Ensure the file is valid INI",
		}
	case errorCodePluginLoad:
		return []string{
			"Run genoscribe plugins to list known identifiers",
			"Check the section name for typos",
		}
	case errorCodeParameter:
		return []string{
			"Supply the named parameter in the section, or remove the section",
		}
	case errorCodeValidation:
		return []string{
			"The plugin produced data outside the shared schema; report this to the plugin author",
		}
	case errorCodeOutputPath:
		return []string{
			"Ensure the destination directory exists and is writable",
		}
	default:
		return nil
	}
}
