package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/otpx"
	"github.com/aussiebroadwan/credvault/pkg/slogx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

func toCodeResponse(w otpx.CodeWindow) vaultsdk.CodeResponse {
	return vaultsdk.CodeResponse{
		Code:      w.Code,
		Remaining: w.Remaining,
		ExpiresAt: w.ExpiresAt,
		Valid:     w.Valid,
		Refreshed: w.Refreshed,
	}
}

// HandleCode handles GET /v1/accounts/{id}/code
//
//	@Summary		Current TOTP code
//	@Description	Returns the account's current code and the seconds left in its window. A secret that is not valid base32 yields the "------" placeholder with valid=false.
//	@Tags			Codes
//	@Security		SessionCookie
//	@Produce		json
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	vaultsdk.CodeResponse
//	@Failure		404	{object}	vaultsdk.APIError	"No such account, or account has no 2FA secret"
//	@Router			/v1/accounts/{id}/code [get]
func (h *AccountsHandler) HandleCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	win, err := h.AccountService.Code(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCodeResponse(win))
}

// HandleCodeStream handles GET /v1/accounts/{id}/code/stream
//
//	@Summary		Stream TOTP codes
//	@Description	Server-sent events, one per second. Events are named "tick" while the code is unchanged and "refresh" when a new window starts.
//	@Tags			Codes
//	@Security		SessionCookie
//	@Produce		text/event-stream
//	@Param			id	path		int	true	"Account ID"
//	@Success		200	{object}	vaultsdk.CodeResponse	"Event data"
//	@Failure		404	{object}	vaultsdk.APIError		"No such account, or account has no 2FA secret"
//	@Router			/v1/accounts/{id}/code/stream [get]
func (h *AccountsHandler) HandleCodeStream(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	windows, err := h.AccountService.WatchCode(ctx, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rc := http.NewResponseController(w)
	// Streams outlive any server write timeout
	_ = rc.SetWriteDeadline(time.Time{})

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	log := slogx.FromContext(ctx)
	for win := range windows {
		event := "tick"
		if win.Refreshed {
			event = "refresh"
		}

		data, err := json.Marshal(toCodeResponse(win))
		if err != nil {
			log.Error("failed to encode code window", "err", err)
			return
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return
		}
		if err := rc.Flush(); err != nil {
			log.Warn("code stream cannot flush", "err", err)
			return
		}
	}
}
