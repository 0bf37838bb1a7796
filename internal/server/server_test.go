package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/framewright/framewright/pkg/cache"
	"github.com/framewright/framewright/pkg/config"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/render/elevation"
	"github.com/framewright/framewright/pkg/store"
)

func newTestServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return New(st, nil, config.Default(), nil), st
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, rec.Body.String())
	}
}

// seedAssembly stores a three-node chain directly and returns its ID.
func seedAssembly(t *testing.T, st *store.MemoryStore) string {
	t.Helper()
	a := frame.NewAssembly("seeded")
	for i := 0; i < 3; i++ {
		if _, _, err := a.AppendNode(frame.NodeCorner290, frame.PanelWindow, 1000); err != nil {
			t.Fatal(err)
		}
	}
	if err := st.Save(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	return a.ID
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	decodeInto(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestAssemblyLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/assemblies", createRequest{Name: "garden room"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body: %s", rec.Code, rec.Body.String())
	}
	var created frame.Assembly
	decodeInto(t, rec, &created)
	if !frame.ValidAssemblyID(created.ID) {
		t.Fatalf("created id %q is not a valid assembly id", created.ID)
	}

	rec = do(t, s, http.MethodGet, "/api/assemblies/"+created.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var got frame.Assembly
	decodeInto(t, rec, &got)
	if got.Name != "garden room" {
		t.Errorf("name = %q", got.Name)
	}

	rec = do(t, s, http.MethodGet, "/api/assemblies", nil)
	var list map[string][]string
	decodeInto(t, rec, &list)
	if len(list["assemblies"]) != 1 || list["assemblies"][0] != created.ID {
		t.Errorf("list = %v, want [%s]", list["assemblies"], created.ID)
	}

	rec = do(t, s, http.MethodDelete, "/api/assemblies/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/assemblies/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestCreateRequiresName(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/assemblies", createRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "INVALID_INPUT") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestGetMissingAssembly(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/api/assemblies/ZZZ999", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ASSEMBLY_NOT_FOUND") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestPutRejectsIDMismatch(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	a, err := st.Load(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	a.ID = "XYZ123"

	rec := do(t, s, http.MethodPut, "/api/assemblies/"+id, a)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestPutReplacesAssembly(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	a, err := st.Load(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	a.Name = "renamed"

	rec := do(t, s, http.MethodPut, "/api/assemblies/"+id, a)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	stored, err := st.Load(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Name != "renamed" {
		t.Errorf("stored name = %q", stored.Name)
	}
}

func TestResolvePersistsOffsets(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	// Corrupt an offset; resolve must rebuild it from the chain.
	a, _ := st.Load(context.Background(), id)
	a.Nodes[1].OffsetMM = 9999
	if err := st.Save(context.Background(), a); err != nil {
		t.Fatal(err)
	}

	rec := do(t, s, http.MethodPost, "/api/assemblies/"+id+"/resolve", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp resolveResponse
	decodeInto(t, rec, &resp)
	if got := resp.Assembly.Nodes[1].OffsetMM; got != 1290 {
		t.Errorf("node 1 offset = %v, want 1290", got)
	}
	if len(resp.Result.MovedNodes) == 0 {
		t.Error("expected moved nodes in result")
	}

	stored, _ := st.Load(context.Background(), id)
	if got := stored.Nodes[1].OffsetMM; got != 1290 {
		t.Errorf("stored offset = %v, want 1290", got)
	}
}

func TestCommandsApplyAndSave(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	a, _ := st.Load(context.Background(), id)
	target := a.Nodes[1].ID

	cmds := []map[string]any{
		{"op": "move-node", "node_id": target, "offset_mm": 2000},
	}
	rec := do(t, s, http.MethodPost, "/api/assemblies/"+id+"/commands", cmds)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body.String())
	}

	var resp commandsResponse
	decodeInto(t, rec, &resp)
	if len(resp.Outcomes) != 1 {
		t.Fatalf("outcomes = %d, want 1", len(resp.Outcomes))
	}
	if !resp.Sync.Saved {
		t.Error("sync did not save")
	}

	stored, _ := st.Load(context.Background(), id)
	if got := stored.NodeByID(target).OffsetMM; got != 2000 {
		t.Errorf("stored offset = %v, want 2000", got)
	}
}

func TestCommandsRejectUnknownOp(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	cmds := []map[string]any{{"op": "explode"}}
	rec := do(t, s, http.MethodPost, "/api/assemblies/"+id+"/commands", cmds)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "UNSUPPORTED") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestElevationEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)

	rec := do(t, s, http.MethodGet, "/api/assemblies/"+id+"/elevation.svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg ") {
		t.Error("body is not SVG")
	}
}

func TestElevationRenderFailure(t *testing.T) {
	s, st := newTestServer(t)
	id := seedAssembly(t, st)
	s.render = func(*frame.Assembly, elevation.Options) (string, error) {
		return "", errors.New("render failed")
	}

	rec := do(t, s, http.MethodGet, "/api/assemblies/"+id+"/elevation.svg", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), "INTERNAL_ERROR") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}

func TestElevationServedFromCache(t *testing.T) {
	st := store.NewMemoryStore()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := New(st, c, config.Default(), nil)
	id := seedAssembly(t, st)

	first := do(t, s, http.MethodGet, "/api/assemblies/"+id+"/elevation.svg", nil)
	second := do(t, s, http.MethodGet, "/api/assemblies/"+id+"/elevation.svg", nil)
	if first.Body.String() != second.Body.String() {
		t.Error("cached elevation differs from fresh render")
	}

	// A different option set must miss the cache and still render.
	dims := do(t, s, http.MethodGet, "/api/assemblies/"+id+"/elevation.svg?dims=1", nil)
	if dims.Body.String() == first.Body.String() {
		t.Error("dimensioned render identical to plain render")
	}
}
