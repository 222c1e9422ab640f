package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeJSONArtifact replaces the artifact at path wholesale: serialize,
// write to a temp file in the same directory, then rename over the target so
// no partial-write state is ever observable.
func writeJSONArtifact(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create work directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace artifact: %w", err)
	}

	return nil
}

// readJSONArtifact loads an upstream artifact. A missing file maps to
// NotFoundError; unparseable content maps to MalformedArtifactError after the
// raw bytes are preserved next to the artifact for postmortem.
func readJSONArtifact(stage, path string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &NotFoundError{Stage: stage, Path: path}
		}
		return fmt.Errorf("%s: read artifact %s: %w", stage, path, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		debugPath := path + ".malformed"
		_ = os.WriteFile(debugPath, data, 0o644)
		return &MalformedArtifactError{Stage: stage, Path: path, Err: err}
	}

	return nil
}

// writeDebugFile preserves raw content for postmortem next to the stage's
// work directory; failures to write the debug file are not themselves fatal.
func writeDebugFile(dir, name, content string) string {
	_ = os.MkdirAll(dir, 0o755)
	path := filepath.Join(dir, name)
	_ = os.WriteFile(path, []byte(content), 0o644)
	return path
}
