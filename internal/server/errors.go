package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yigityalim/imperial-tobacco-web/internal/content"
	"github.com/yigityalim/imperial-tobacco-web/internal/index"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// writeError maps domain errors onto HTTP responses. Lookup misses become
// not-found responses at this boundary; they never propagate as crashes.
func writeError(w http.ResponseWriter, err error) {
	var nf *index.NotFoundError
	if errors.As(err, &nf) {
		writeJSONError(w, http.StatusNotFound, "not_found", nf.Error())
		return
	}

	var verr *content.ValidationError
	if errors.As(err, &verr) {
		writeJSONError(w, http.StatusUnprocessableEntity, "validation", verr.Error())
		return
	}

	var amb *index.AmbiguousSlugError
	if errors.As(err, &amb) {
		writeJSONError(w, http.StatusConflict, "ambiguous_slug", amb.Error())
		return
	}

	writeJSONError(w, http.StatusInternalServerError, "internal", "internal server error")
}

func writeJSONError(w http.ResponseWriter, status int, category, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: errorDetail{Category: category, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
