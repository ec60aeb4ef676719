package video_filer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateProvider = errors.New("duplicate provider name")
	ErrInvalidProvider   = errors.New("invalid provider")
	ErrNotRecognized     = errors.New("URL not recognized by any provider")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrNoResolver        = errors.New("no resolver for platform")
	ErrPlatformMismatch  = errors.New("provider returned a reference for another platform")
)

// NotRecognizedError is returned when no Provider matches a URL. Reasons holds each provider's own
// explanation, if any.
type NotRecognizedError struct {
	URL     string
	Reasons error
}

func (e *NotRecognizedError) Error() string {
	if e.Reasons == nil {
		return fmt.Sprintf("%v: %q", ErrNotRecognized, e.URL)
	}
	return fmt.Sprintf("%v: %q: %v", ErrNotRecognized, e.URL, e.Reasons)
}

func (e *NotRecognizedError) Unwrap() error { return ErrNotRecognized }

// ConfigurationError means a resolver is missing settings it needs before it can send any request.
type ConfigurationError struct {
	Platform Platform
	Missing  []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error [%v]: missing %s", e.Platform, strings.Join(e.Missing, ", "))
}

// MissingFieldError means an API response lacked a field required to build VideoMetadata.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// ResolutionError wraps any failure while fetching or interpreting platform metadata.
type ResolutionError struct {
	Platform Platform
	VideoID  string
	// Stage names the request that failed, e.g. "video" or "channel".
	Stage string
	Err   error
}

func (e *ResolutionError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("failed to resolve %v video %v: %v", e.Platform, e.VideoID, e.Err)
	}
	return fmt.Sprintf("failed to resolve %v video %v (%s lookup): %v", e.Platform, e.VideoID, e.Stage, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ArchiveError wraps a fatal filesystem failure while archiving. Op is one of "plan", "mkdir" or "move".
type ArchiveError struct {
	Op   string
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("archive %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is, or wraps, a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// IsResolutionError reports whether err is, or wraps, a *ResolutionError.
func IsResolutionError(err error) bool {
	var e *ResolutionError
	return errors.As(err, &e)
}

// IsArchiveError reports whether err is, or wraps, an *ArchiveError.
func IsArchiveError(err error) bool {
	var e *ArchiveError
	return errors.As(err, &e)
}
