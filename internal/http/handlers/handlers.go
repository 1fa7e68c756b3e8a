package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kartikay-0111/Placify/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

// idFromPath parses the path segment fromEnd positions from the end as a
// UUID: idFromPath(r, 1) on /jobs/{id} returns {id}, idFromPath(r, 2) on
// /jobs/{id}/status returns {id}.
func idFromPath(r *http.Request, fromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(segments) < fromEnd {
		return "", common.NewError(common.CodeValidation, "missing id in path", nil)
	}
	id, err := common.ParseUUID(segments[len(segments)-fromEnd])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return id, nil
}
