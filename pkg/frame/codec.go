package frame

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Assembly Serialization API
// =============================================================================

// Marshal converts an assembly to JSON bytes.
// Nodes and panels are written in chain order, so identical assemblies
// always marshal to identical bytes.
func Marshal(a *Assembly) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(a, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes to an assembly and validates it.
func Unmarshal(data []byte) (*Assembly, error) {
	return readFrom(bytes.NewReader(data))
}

// WriteFile writes an assembly to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(a *Assembly, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeTo(a, f)
}

// Write writes an assembly as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(a *Assembly, w io.Writer) error {
	return writeTo(a, w)
}

// ReadFile reads a JSON file and returns the decoded, validated assembly.
func ReadFile(path string) (*Assembly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readFrom(f)
}

// Read decodes a JSON assembly from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*Assembly, error) {
	return readFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(a *Assembly, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*Assembly, error) {
	var a Assembly
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
