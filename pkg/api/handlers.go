package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dashgrid/dashgrid/pkg/breakpoint"
	dgerrors "github.com/dashgrid/dashgrid/pkg/errors"
	"github.com/dashgrid/dashgrid/pkg/layout"
	"github.com/dashgrid/dashgrid/pkg/observability"
	"github.com/dashgrid/dashgrid/pkg/store"
)

// itemsRequest is the body for endpoints that take the current item set.
type itemsRequest struct {
	Items []string `json:"items"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// handleBreakpoints returns the tier table, widest first.
func (s *Server) handleBreakpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tiers": breakpoint.Tiers()})
}

// handleGetLayouts returns the saved arrangement for a category.
func (s *Server) handleGetLayouts(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := dgerrors.ValidateCategory(category); err != nil {
		writeError(w, err)
		return
	}

	key := store.LayoutKey(category)
	data, hit, err := s.store.Get(r.Context(), key)
	if err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeStore, err, "load layouts for %q", category))
		return
	}
	if !hit {
		observability.Store().OnMiss(r.Context(), key)
		writeError(w, dgerrors.New(dgerrors.ErrCodeLayoutNotFound, "no saved layouts for %q", category))
		return
	}
	observability.Store().OnHit(r.Context(), key)

	layouts, err := layout.UnmarshalResponsive(data)
	if err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "saved layouts for %q unreadable", category))
		return
	}
	writeJSON(w, http.StatusOK, layouts)
}

// handlePutLayouts replaces the saved arrangement for a category. Every tier
// is normalized before the write, so the store only ever holds geometry that
// fits its column count. Tiers outside the breakpoint table are dropped.
func (s *Server) handlePutLayouts(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := dgerrors.ValidateCategory(category); err != nil {
		writeError(w, err)
		return
	}

	var candidate layout.Responsive
	if err := json.NewDecoder(r.Body).Decode(&candidate); err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeInvalidLayout, err, "decode layouts"))
		return
	}

	normalized := make(layout.Responsive)
	for _, tier := range breakpoint.Tiers() {
		l, ok := candidate[tier.Name]
		if !ok {
			continue
		}
		normalized[tier.Name] = layout.Normalize(l, tier.Cols)
	}
	if len(normalized) == 0 {
		writeError(w, dgerrors.New(dgerrors.ErrCodeInvalidLayout, "no known tiers in payload"))
		return
	}

	data, err := layout.MarshalResponsive(normalized)
	if err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "marshal layouts"))
		return
	}
	key := store.LayoutKey(category)
	if err := s.store.Set(r.Context(), key, data); err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeStore, err, "save layouts for %q", category))
		return
	}
	observability.Store().OnSet(r.Context(), key, len(data))

	writeJSON(w, http.StatusOK, normalized)
}

// handleDeleteLayouts removes the saved arrangement for a category.
func (s *Server) handleDeleteLayouts(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := dgerrors.ValidateCategory(category); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Delete(r.Context(), store.LayoutKey(category)); err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeStore, err, "delete layouts for %q", category))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDefaults computes the generated default arrangement for an item set
// without touching the store.
func (s *Server) handleDefaults(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := dgerrors.ValidateCategory(category); err != nil {
		writeError(w, err)
		return
	}

	ids, err := decodeItems(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tpl, _ := s.templates().Template(category)
	layouts := layout.GenerateAll(ids, tpl)
	for _, tier := range breakpoint.Tiers() {
		observability.Layout().OnGenerate(r.Context(), category, tier.Name, len(ids))
	}
	writeJSON(w, http.StatusOK, layouts)
}

// handleReconcile merges the saved arrangement with the current item set and
// persists the result: stale entries are dropped, missing items are placed,
// degenerate tiers are regenerated. When nothing is saved yet the result is
// the generated default.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if err := dgerrors.ValidateCategory(category); err != nil {
		writeError(w, err)
		return
	}

	ids, err := decodeItems(r)
	if err != nil {
		writeError(w, err)
		return
	}

	key := store.LayoutKey(category)
	var persisted layout.Responsive
	data, hit, err := s.store.Get(r.Context(), key)
	if err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeStore, err, "load layouts for %q", category))
		return
	}
	if hit {
		observability.Store().OnHit(r.Context(), key)
		if persisted, err = layout.UnmarshalResponsive(data); err != nil {
			// Unreadable saved state degrades to regeneration
			persisted = nil
		}
	} else {
		observability.Store().OnMiss(r.Context(), key)
	}

	tpl, _ := s.templates().Template(category)
	merged := layout.PatchAll(persisted, ids, tpl)
	for _, tier := range breakpoint.Tiers() {
		kept := keptCount(persisted[tier.Name], ids)
		observability.Layout().OnPatch(r.Context(), category, tier.Name, kept, len(ids)-kept)
	}

	out, err := layout.MarshalResponsive(merged)
	if err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "marshal layouts"))
		return
	}
	if err := s.store.Set(r.Context(), key, out); err != nil {
		writeError(w, dgerrors.Wrap(dgerrors.ErrCodeStore, err, "save layouts for %q", category))
		return
	}
	observability.Store().OnSet(r.Context(), key, len(out))

	writeJSON(w, http.StatusOK, merged)
}

// keptCount counts persisted entries that survive reconciliation with the
// current item set.
func keptCount(persisted layout.Layout, ids []string) int {
	current := make(map[string]bool, len(ids))
	for _, id := range ids {
		current[id] = true
	}
	kept := 0
	for _, it := range persisted {
		if current[it.ID] {
			kept++
			delete(current, it.ID)
		}
	}
	return kept
}

// decodeItems parses and validates the item-set request body.
func decodeItems(r *http.Request) ([]string, error) {
	var req itemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "decode items")
	}
	for _, id := range req.Items {
		if err := dgerrors.ValidateItemID(id); err != nil {
			return nil, err
		}
	}
	return req.Items, nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch dgerrors.GetCode(err) {
	case dgerrors.ErrCodeInvalidInput, dgerrors.ErrCodeInvalidCategory,
		dgerrors.ErrCodeInvalidLayout, dgerrors.ErrCodeInvalidTier,
		dgerrors.ErrCodeInvalidItemID:
		status = http.StatusBadRequest
	case dgerrors.ErrCodeNotFound, dgerrors.ErrCodeLayoutNotFound,
		dgerrors.ErrCodeTemplateNotFound:
		status = http.StatusNotFound
	case dgerrors.ErrCodeStore, dgerrors.ErrCodeStoreUnavailable:
		status = http.StatusBadGateway
	case dgerrors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	var resp errorResponse
	resp.Error.Code = string(dgerrors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(dgerrors.ErrCodeInternal)
	}
	resp.Error.Message = dgerrors.UserMessage(err)
	writeJSON(w, status, resp)
}
