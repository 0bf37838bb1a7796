package diff

import (
	"slices"
	"testing"

	"github.com/framewright/framewright/pkg/frame"
)

func buildChain(t *testing.T, n int) *frame.Assembly {
	t.Helper()
	a := frame.NewAssembly("diff test")
	for i := 0; i < n; i++ {
		if _, _, err := a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 1000); err != nil {
			t.Fatal(err)
		}
	}
	return a
}

func TestDiffAgainstOwnSnapshotIsEmpty(t *testing.T) {
	a := buildChain(t, 3)
	snap := Take(a)

	if c := Diff(a, snap); !c.Empty() {
		t.Errorf("Diff = %+v, want empty", c)
	}
}

func TestDiffIsIdempotent(t *testing.T) {
	a := buildChain(t, 3)
	snap := Take(a)
	a.Nodes[1].OffsetMM = 5000

	first := Diff(a, snap)
	second := Diff(a, snap)

	if !slices.Equal(first.Changed, second.Changed) ||
		!slices.Equal(first.Added, second.Added) ||
		!slices.Equal(first.Removed, second.Removed) {
		t.Errorf("repeated diff differs: %+v vs %+v", first, second)
	}
}

func TestDiffNilSnapshotMarksAllAdded(t *testing.T) {
	a := buildChain(t, 2)

	c := Diff(a, nil)
	if got := len(c.Added); got != 3 { // 2 nodes + 1 panel
		t.Errorf("Added = %d entities, want 3", got)
	}
	if len(c.Changed) != 0 || len(c.Removed) != 0 {
		t.Errorf("unexpected changed/removed: %+v", c)
	}
}

func TestDiffDetectsFieldChanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *frame.Assembly) string // returns expected changed id
	}{
		{
			name: "node offset",
			mutate: func(a *frame.Assembly) string {
				a.Nodes[1].OffsetMM += 10
				return a.Nodes[1].ID
			},
		},
		{
			name: "node type",
			mutate: func(a *frame.Assembly) string {
				a.Nodes[0].Type = frame.NodeGenericColumn
				return a.Nodes[0].ID
			},
		},
		{
			name: "node rotation",
			mutate: func(a *frame.Assembly) string {
				a.Nodes[0].Rotation = frame.Quaternion{Z: 1}
				return a.Nodes[0].ID
			},
		},
		{
			name: "panel length",
			mutate: func(a *frame.Assembly) string {
				a.Panels[0].LengthMM = 1234
				return a.Panels[0].ID
			},
		},
		{
			name: "panel divisions",
			mutate: func(a *frame.Assembly) string {
				a.Panels[0].DivisionsX = 4
				return a.Panels[0].ID
			},
		},
		{
			name: "panel rewired",
			mutate: func(a *frame.Assembly) string {
				a.Panels[0].ToNode = a.Nodes[2].ID
				return a.Panels[0].ID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := buildChain(t, 3)
			snap := Take(a)
			wantID := tt.mutate(a)

			c := Diff(a, snap)
			if !slices.Equal(c.Changed, []string{wantID}) {
				t.Errorf("Changed = %v, want [%s]", c.Changed, wantID)
			}
			if len(c.Added) != 0 || len(c.Removed) != 0 {
				t.Errorf("unexpected added/removed: %+v", c)
			}
		})
	}
}

func TestDiffAddAndRemove(t *testing.T) {
	a := buildChain(t, 2)
	snap := Take(a)

	removedID := a.Nodes[1].ID
	if err := a.RemoveNode(removedID); err != nil {
		t.Fatal(err)
	}
	addedID, _, err := a.AppendNode(frame.NodeInline190, frame.PanelDoor, 800)
	if err != nil {
		t.Fatal(err)
	}

	c := Diff(a, snap)
	if !slices.Contains(c.Removed, removedID) {
		t.Errorf("Removed = %v, missing %s", c.Removed, removedID)
	}
	if !slices.Contains(c.Added, addedID) {
		t.Errorf("Added = %v, missing %s", c.Added, addedID)
	}
}

func TestDiffOrderAgnostic(t *testing.T) {
	a := buildChain(t, 3)
	snap := Take(a)

	// Reordering without field changes is not a change. (The chain is
	// no longer intact, but the detector only looks at content.)
	a.Panels[0], a.Panels[1] = a.Panels[1], a.Panels[0]

	if c := Diff(a, snap); !c.Empty() {
		t.Errorf("Diff after reorder = %+v, want empty", c)
	}
}

func TestTouched(t *testing.T) {
	c := Changes{Changed: []string{"b"}, Added: []string{"a", "c"}}
	if got := c.Touched(); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Touched = %v", got)
	}
}

func TestHashDistinguishesFields(t *testing.T) {
	// Field boundaries are length-prefixed, so shifting bytes between
	// adjacent string fields must change the hash.
	p1 := frame.Panel{ID: "p", FromNode: "ab", ToNode: "c", Type: frame.PanelWindow}
	p2 := frame.Panel{ID: "p", FromNode: "a", ToNode: "bc", Type: frame.PanelWindow}
	if HashPanel(&p1) == HashPanel(&p2) {
		t.Error("aliased field boundaries produce equal hashes")
	}
}
