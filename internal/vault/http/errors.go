package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

// groupNotEmptyMessage is shown to the operator verbatim.
const groupNotEmptyMessage = "Group still has accounts. Move or delete them before removing the group."

// writeServiceError maps service errors to status codes. Anything unknown
// is logged and reported as a 500 without detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrGroupNotFound),
		errors.Is(err, service.ErrNoTwoFASecret):
		httpx.WriteError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrInvalidAccount),
		errors.Is(err, service.ErrInvalidReorder),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrUnknownExportFormat):
		httpx.WriteError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, service.ErrGroupNameMissing):
		httpx.WriteError(w, http.StatusBadRequest, "Group name is required")

	case errors.Is(err, service.ErrGroupExists):
		httpx.WriteError(w, http.StatusConflict, "A group with this name already exists")

	case errors.Is(err, service.ErrGroupNotEmpty):
		httpx.WriteError(w, http.StatusConflict, groupNotEmptyMessage)

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		vaultsdk.ErrServerError.WriteError(w)
	}
}

// pathID parses the {id} path segment.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// decodeBody decodes a JSON body, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		vaultsdk.ErrBadRequest.WriteError(w)
		return false
	}
	return true
}
