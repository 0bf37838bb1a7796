package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Session hooks
	s := NoopSessionHooks{}
	s.OnCommand(ctx, "VFC001", "move-node", nil)
	s.OnSyncStart(ctx, "VFC001", 4, 3)
	s.OnSyncComplete(ctx, "VFC001", 2, 0, time.Millisecond, nil)

	// Store hooks
	st := NoopStoreHooks{}
	st.OnSave(ctx, "VFC001", 1024, time.Millisecond, nil)
	st.OnLoad(ctx, "VFC001", time.Millisecond, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Session().(NoopSessionHooks); !ok {
		t.Error("Session() should return NoopSessionHooks by default")
	}
	if _, ok := StoreEvents().(NoopStoreHooks); !ok {
		t.Error("StoreEvents() should return NoopStoreHooks by default")
	}

	// Set custom hooks
	customSession := &testSessionHooks{}
	SetSessionHooks(customSession)
	if Session() != customSession {
		t.Error("SetSessionHooks should set custom hooks")
	}

	customStore := &testStoreHooks{}
	SetStoreHooks(customStore)
	if StoreEvents() != customStore {
		t.Error("SetStoreHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Session().(NoopSessionHooks); !ok {
		t.Error("Reset() should restore NoopSessionHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testSessionHooks{}
	SetSessionHooks(custom)

	// Setting nil should be ignored
	SetSessionHooks(nil)

	if Session() != custom {
		t.Error("SetSessionHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testSessionHooks struct{ NoopSessionHooks }
type testStoreHooks struct{ NoopStoreHooks }
