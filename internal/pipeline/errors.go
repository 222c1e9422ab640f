package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoGames marks the distinguished no-qualifying-work outcome: the fetch
// stage found zero games for the requested date. Callers skip downstream
// stages without treating this as a failure.
var ErrNoGames = errors.New("no games scheduled")

// NotFoundError reports a missing upstream artifact file. Always fatal to the
// current stage, never retried.
type NotFoundError struct {
	Stage string
	Path  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: required artifact not found: %s", e.Stage, e.Path)
}

// MalformedArtifactError reports an artifact file that exists but fails
// structural parsing. The offending raw content is preserved to a debug
// side-file before the stage aborts.
type MalformedArtifactError struct {
	Stage string
	Path  string
	Err   error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("%s: malformed artifact %s: %v", e.Stage, e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error {
	return e.Err
}

// ExtractionError reports an AI response with no locatable JSON payload.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "could not extract JSON from response: " + e.Reason
}

// SchemaValidationError carries the full list of field-level violations found
// in the merged games, not just the first one.
type SchemaValidationError struct {
	Violations []string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("schema validation failed with %d violations:\n  - %s",
		len(e.Violations), strings.Join(e.Violations, "\n  - "))
}

// ExternalCallError wraps a failed collaborator call with stage context.
type ExternalCallError struct {
	Stage string
	Op    string
	Err   error
}

func (e *ExternalCallError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Stage, e.Op, e.Err)
}

func (e *ExternalCallError) Unwrap() error {
	return e.Err
}
