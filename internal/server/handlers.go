package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/yigityalim/imperial-tobacco-web/internal/content"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
	"github.com/yigityalim/imperial-tobacco-web/internal/menu"
)

// kindRoots maps URL kind-root segments to document kinds.
var kindRoots = map[string]content.Kind{
	"brands":     content.KindBrand,
	"categories": content.KindCategory,
	"products":   content.KindProduct,
	"posts":      content.KindPost,
}

// docSummary is the listing shape for documents.
type docSummary struct {
	Kind         content.Kind `json:"kind"`
	Title        string       `json:"title"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Slug         string       `json:"slug"`
	SlugAsParams string       `json:"slugAsParams"`
}

func summarize(docs []*content.Document) []docSummary {
	out := make([]docSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, docSummary{
			Kind:         d.Kind,
			Title:        d.Title,
			Name:         d.Name(),
			Description:  d.Description,
			Slug:         d.Slug,
			SlugAsParams: d.SlugAsParams,
		})
	}
	return out
}

// handleContent routes /{locale}/... paths: site summary, menu, search,
// onboarding state, and the four kind roots.
func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	snap := s.holder.Current()
	locale := s.gateConfig.NegotiateLocale(r.URL.Path)

	// Paths without a supported locale prefix redirect to their
	// default-locale form.
	if r.URL.Path != "/"+locale && !strings.HasPrefix(r.URL.Path, "/"+locale+"/") {
		target := "/" + locale + strings.TrimSuffix(r.URL.Path, "/")
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/"+locale)
	rest = strings.Trim(rest, "/")

	switch {
	case rest == "":
		s.handleHome(w, snap, locale)
	case rest == "menu":
		s.handleMenu(w, r, snap, locale)
	case rest == "search":
		s.handleSearch(w, r, snap)
	case rest == "onboarding":
		writeJSON(w, http.StatusOK, map[string]any{
			"locale":    locale,
			"completed": s.flags.Get(r),
		})
	default:
		s.handleDocument(w, snap, rest)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, snap *index.Snapshot, locale string) {
	writeJSON(w, http.StatusOK, map[string]any{
		"locale":     locale,
		"snapshotId": snap.ID,
		"builtAt":    snap.BuiltAt,
		"counts": map[string]int{
			"brands":     len(snap.ByKind(content.KindBrand)),
			"categories": len(snap.ByKind(content.KindCategory)),
			"products":   len(snap.ByKind(content.KindProduct)),
			"posts":      len(snap.ByKind(content.KindPost)),
		},
	})
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request, snap *index.Snapshot, locale string) {
	builder := menu.NewBuilder(locale)
	variant := r.URL.Query().Get("variant")
	var tree []menu.Item
	if variant == "desktop" {
		tree = builder.Deep(snap)
	} else {
		tree = builder.Shallow(snap)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"variant": variantOrDefault(variant),
		"items":   tree,
	})
}

func variantOrDefault(v string) string {
	if v == "desktop" {
		return "desktop"
	}
	return "mobile"
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, snap *index.Snapshot) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeJSON(w, http.StatusOK, map[string]any{"query": "", "results": []docSummary{}})
		return
	}

	lowered := strings.ToLower(query)
	results := snap.Filter(func(d *content.Document) bool {
		return strings.Contains(strings.ToLower(d.Title), lowered) ||
			strings.Contains(strings.ToLower(d.Name()), lowered) ||
			strings.Contains(strings.ToLower(d.Description), lowered)
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"query":   query,
		"results": summarize(results),
	})
}

func (s *Server) handleDocument(w http.ResponseWriter, snap *index.Snapshot, rest string) {
	root, slugAsParams, _ := strings.Cut(rest, "/")
	kind, ok := kindRoots[root]
	if !ok {
		writeJSONError(w, http.StatusNotFound, "not_found", "unknown path")
		return
	}

	if slugAsParams == "" {
		writeJSON(w, http.StatusOK, summarize(snap.ByKind(kind)))
		return
	}

	doc, err := snap.FindBySlug(kind, slugAsParams)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleOnboardingComplete sets the persisted flag. Replays are no-ops; store
// failures surface as retryable errors instead of silently marking
// completion.
func (s *Server) handleOnboardingComplete(w http.ResponseWriter, r *http.Request) {
	if err := s.flags.Set(w); err != nil {
		slog.Error("Failed to persist onboarding flag", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "flag_store", "could not persist onboarding state, retry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completed": true})
}

func (s *Server) handleOnboardingClear(w http.ResponseWriter, r *http.Request) {
	if err := s.flags.Clear(w); err != nil {
		slog.Error("Failed to clear onboarding flag", "error", err)
		writeJSONError(w, http.StatusServiceUnavailable, "flag_store", "could not clear onboarding state, retry")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"completed": false})
}

func (s *Server) handleRebuilds(w http.ResponseWriter, r *http.Request) {
	if s.events == nil {
		writeJSON(w, http.StatusOK, map[string]any{"events": []any{}})
		return
	}
	events, err := s.events.Recent(r.Context(), 20)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	snap := s.holder.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"snapshotId": snap.ID,
		"documents":  snap.Len(),
	})
}
