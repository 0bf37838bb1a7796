package frame

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestMarshalRoundTrip(t *testing.T) {
	a := buildChain(t, 3)
	a.Notes = "south elevation"

	data, err := Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.ID != a.ID || got.Name != a.Name || got.Notes != a.Notes {
		t.Errorf("metadata mismatch after round trip")
	}
	if len(got.Nodes) != len(a.Nodes) || len(got.Panels) != len(a.Panels) {
		t.Fatalf("entity counts changed: %d/%d nodes, %d/%d panels",
			len(got.Nodes), len(a.Nodes), len(got.Panels), len(a.Panels))
	}
	for i := range a.Nodes {
		if got.Nodes[i] != a.Nodes[i] {
			t.Errorf("node[%d] mismatch after round trip", i)
		}
	}
}

func TestMarshalDeterministic(t *testing.T) {
	a := buildChain(t, 4)

	first, err := Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical assemblies should marshal to identical bytes")
	}
}

func TestUnmarshalValidates(t *testing.T) {
	a := buildChain(t, 2)
	a.ID = "not-an-id"

	data, err := Marshal(a)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Unmarshal(data); err == nil {
		t.Error("Unmarshal should reject invalid assemblies")
	}
}

func TestUnmarshalRejectsGarbage(t *testing.T) {
	if _, err := Unmarshal([]byte("{not json")); err == nil {
		t.Error("expected decode error")
	}
}

func TestFileRoundTrip(t *testing.T) {
	a := buildChain(t, 2)
	path := filepath.Join(t.TempDir(), "assembly.json")

	if err := WriteFile(a, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.ID != a.ID || len(got.Nodes) != 2 {
		t.Error("file round trip lost data")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAssemblyIDGeneration(t *testing.T) {
	SeedAssemblyIDs(1)
	first := NewAssemblyID()
	if !ValidAssemblyID(first) {
		t.Errorf("generated id %q is not XXXNNN", first)
	}

	SeedAssemblyIDs(1)
	if again := NewAssemblyID(); again != first {
		t.Errorf("seeded generation not deterministic: %q vs %q", again, first)
	}
}

func TestValidAssemblyID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"VFC001", true},
		{"ABC999", true},
		{"abc123", false},
		{"AB1234", false},
		{"ABCD12", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := ValidAssemblyID(tt.id); got != tt.want {
			t.Errorf("ValidAssemblyID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
