package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/desertthunder/spotify-cli/internal/output"
	"github.com/desertthunder/spotify-cli/internal/shared"
	"github.com/desertthunder/spotify-cli/internal/storage"
)

// PinAdd saves a new alias for a resource.
func (h *Handler) PinAdd(ctx context.Context, alias, idOrURL, kindName string, tags []string) *output.Response {
	if alias == "" || idOrURL == "" {
		return output.Err(http.StatusBadRequest, "Provide an alias and a resource id, URL, or URI", output.ErrKindValidation)
	}
	kind, err := storage.ParseResourceKind(kindName)
	if err != nil {
		return output.Err(http.StatusBadRequest, err.Error(), output.ErrKindValidation)
	}
	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	pin := storage.NewPin(alias, idOrURL, kind, tags)
	if err := store.Add(pin); err != nil {
		if errors.Is(err, shared.ErrDuplicateAlias) {
			return output.Err(http.StatusConflict, fmt.Sprintf("Pin %q already exists", alias), output.ErrKindValidation)
		}
		return output.Err(http.StatusInternalServerError, err.Error(), output.ErrKindStorage)
	}
	if err := store.Save(); err != nil {
		return output.Err(http.StatusInternalServerError, "Failed to save pins: "+err.Error(), output.ErrKindStorage)
	}
	payload := map[string]any{"pins": []map[string]any{pinPayload(pin, -1)}}
	return output.SuccessTyped(http.StatusCreated, fmt.Sprintf("Pinned %s as %q", pin.ID, alias), output.KindPins, payload)
}

// PinRemove deletes a pin by alias or id.
func (h *Handler) PinRemove(ctx context.Context, aliasOrID string) *output.Response {
	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	pin, err := store.Remove(aliasOrID)
	if err != nil {
		return output.Err(http.StatusNotFound, fmt.Sprintf("Pin not found: %q", aliasOrID), output.ErrKindNotFound)
	}
	if err := store.Save(); err != nil {
		return output.Err(http.StatusInternalServerError, "Failed to save pins: "+err.Error(), output.ErrKindStorage)
	}
	return output.Success(http.StatusOK, fmt.Sprintf("Removed pin %q", pin.Name))
}

// PinList lists pins, optionally filtered by kind.
func (h *Handler) PinList(ctx context.Context, kindName string) *output.Response {
	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	var kind storage.ResourceKind
	if kindName != "" {
		parsed, err := storage.ParseResourceKind(kindName)
		if err != nil {
			return output.Err(http.StatusBadRequest, err.Error(), output.ErrKindValidation)
		}
		kind = parsed
	}
	pins := store.List(kind)
	entries := make([]map[string]any, 0, len(pins))
	for _, p := range pins {
		entries = append(entries, pinPayload(p, -1))
	}
	payload := map[string]any{"pins": entries}
	return output.SuccessTyped(http.StatusOK, fmt.Sprintf("%d pin(s)", len(entries)), output.KindPins, payload)
}

// PinShow displays one pin by alias.
func (h *Handler) PinShow(ctx context.Context, alias string) *output.Response {
	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	pin, ok := store.FindByAlias(alias)
	if !ok {
		return output.Err(http.StatusNotFound, fmt.Sprintf("Pin not found: %q", alias), output.ErrKindNotFound)
	}
	payload := map[string]any{"pins": []map[string]any{pinPayload(pin, -1)}}
	return output.SuccessTyped(http.StatusOK, pin.Name, output.KindPins, payload)
}

// PinSearch fuzzy-matches pins against a query, highest score first.
func (h *Handler) PinSearch(ctx context.Context, query string) *output.Response {
	if query == "" {
		return output.Err(http.StatusBadRequest, "Search query is empty", output.ErrKindValidation)
	}
	store, errResp := h.pinStore()
	if errResp != nil {
		return errResp
	}
	scored := store.FuzzySearch(query, h.Scorer())
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	entries := make([]map[string]any, 0, len(scored))
	for _, sp := range scored {
		entries = append(entries, pinPayload(sp.Pin, sp.Score))
	}
	payload := map[string]any{"pins": entries}
	return output.SuccessTyped(http.StatusOK, fmt.Sprintf("%d match(es)", len(entries)), output.KindPins, payload)
}

// pinPayload converts a pin to its wire shape. A negative score means no
// score is attached.
func pinPayload(p storage.Pin, score int) map[string]any {
	entry := map[string]any{
		"id":       p.ID,
		"uri":      p.SpotifyURI(),
		"name":     p.Name,
		"kind":     string(p.Kind),
		"tags":     p.Tags,
		"added_at": p.AddedAt,
	}
	if score >= 0 {
		entry["fuzzy_score"] = score
	}
	return entry
}
