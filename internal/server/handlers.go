package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/framewright/framewright/pkg/buildinfo"
	"github.com/framewright/framewright/pkg/cache"
	"github.com/framewright/framewright/pkg/engine"
	"github.com/framewright/framewright/pkg/errors"
	"github.com/framewright/framewright/pkg/frame"
	"github.com/framewright/framewright/pkg/frame/resolve"
	"github.com/framewright/framewright/pkg/render/elevation"
)

// maxBodyBytes caps request bodies; assemblies are small documents.
const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.st.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"assemblies": ids})
}

// createRequest is the body for POST /api/assemblies.
type createRequest struct {
	Name  string `json:"name"`
	Notes string `json:"notes,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "name is required"))
		return
	}

	a := frame.NewAssembly(req.Name)
	a.Notes = req.Notes
	if err := s.st.Save(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := s.st.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// handlePut replaces the stored assembly wholesale. The body must pass
// full validation and its ID must match the URL.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	a, err := frame.Unmarshal(body)
	if err != nil {
		writeError(w, err)
		return
	}
	if id := chi.URLParam(r, "id"); a.ID != id {
		writeError(w, errors.New(errors.ErrCodeInvalidInput,
			"body id %q does not match url id %q", a.ID, id))
		return
	}
	a.Touch()
	if err := s.st.Save(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.st.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveResponse is the body for POST .../resolve.
type resolveResponse struct {
	Assembly *frame.Assembly `json:"assembly"`
	Result   resolve.Result  `json:"result"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	a, err := s.st.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	res := resolve.Pass(a, resolve.Options{MinPanelLengthMM: s.cfg.Layout.MinPanelLengthMM})
	a.Touch()
	if err := s.st.Save(r.Context(), a); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{Assembly: a, Result: res})
}

// commandsResponse is the body for POST .../commands.
type commandsResponse struct {
	Outcomes []engine.Outcome  `json:"outcomes"`
	Sync     engine.SyncResult `json:"sync"`
	Assembly *frame.Assembly   `json:"assembly"`
}

// handleCommands applies a batch of commands inside a synchronous edit
// session. The session autosaves once per command; a rejected command
// aborts the batch and reports which index failed.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	var cmds []engine.Command
	if err := decodeBody(r, &cmds); err != nil {
		writeError(w, err)
		return
	}
	if len(cmds) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "empty command batch"))
		return
	}

	sess, err := engine.LoadSession(r.Context(), s.st, chi.URLParam(r, "id"), engine.Options{
		MinPanelLengthMM: s.cfg.Layout.MinPanelLengthMM,
		Debounce:         0, // sync per command; the API has no idle window to coalesce over
		Store:            s.st,
		Logger:           s.logger,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	outcomes := make([]engine.Outcome, 0, len(cmds))
	for i, cmd := range cmds {
		out, err := sess.Apply(r.Context(), cmd)
		if err != nil {
			s.logger.Warn("command rejected", "index", i, "op", cmd.Op, "error", err)
			writeError(w, err)
			return
		}
		outcomes = append(outcomes, out)
	}

	writeJSON(w, http.StatusOK, commandsResponse{
		Outcomes: outcomes,
		Sync:     sess.LastSync(),
		Assembly: sess.Assembly(),
	})
}

func (s *Server) handleElevation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	a, err := s.st.Load(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resolve.Pass(a, resolve.Options{MinPanelLengthMM: s.cfg.Layout.MinPanelLengthMM})

	opts := elevation.Options{
		PxPerMM:        s.cfg.Render.PxPerMM,
		ShowDimensions: r.URL.Query().Get("dims") == "1",
	}

	key, cached := s.cachedElevation(ctx, a, opts)
	if cached != nil {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(cached)
		return
	}

	svg, err := s.render(a, opts)
	if err != nil {
		s.logger.Error("render elevation", "id", a.ID, "error", err)
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render elevation"))
		return
	}
	if key != "" {
		if err := s.cache.Set(ctx, key, []byte(svg), 0); err != nil {
			s.logger.Warn("cache elevation", "id", a.ID, "error", err)
		}
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = io.WriteString(w, svg)
}

// cachedElevation returns the cache key for a rendered assembly and the
// cached SVG if present. An unserializable assembly yields no key.
func (s *Server) cachedElevation(ctx context.Context, a *frame.Assembly, opts elevation.Options) (string, []byte) {
	raw, err := frame.Marshal(a)
	if err != nil {
		return "", nil
	}
	key := cache.ElevationKey(cache.Hash(raw), opts.PxPerMM, opts.ShowDimensions)
	if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
		return key, data
	}
	return key, nil
}

// decodeBody decodes a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
