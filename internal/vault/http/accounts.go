package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/credvault/internal/vault/domain"
	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

// AccountsHandler serves credential record CRUD and ordering.
type AccountsHandler struct {
	AccountService *service.AccountService
}

// toAccount maps a validated request onto a domain account.
func toAccount(id int64, req vaultsdk.AccountRequest) domain.Account {
	dob, _ := req.ParseDOB()
	return domain.Account{
		ID:            id,
		Identifier:    req.UserID,
		Password:      req.Password,
		Email:         req.Email,
		EmailPassword: req.EmailPassword,
		RecoveryEmail: req.RecoveryEmail,
		TwoFASecret:   req.TwoFASecret,
		Tags:          req.Tags,
		DOB:           dob,
		GroupID:       req.GroupID,
	}
}

func (h *AccountsHandler) decodeAccount(w http.ResponseWriter, r *http.Request) (vaultsdk.AccountRequest, bool) {
	var req vaultsdk.AccountRequest
	if !decodeBody(w, r, &req) {
		return req, false
	}
	if errs := req.Validate(); errs != nil {
		vaultsdk.ValidationError(errs).WriteError(w)
		return req, false
	}
	return req, true
}

// HandleList handles GET /v1/accounts
//
//	@Summary		List accounts
//	@Description	Returns every account in display order, decrypted. Records that cannot be fully decrypted are returned with their optional fields cleared.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Produce		json
//	@Success		200	{array}		vaultsdk.Account
//	@Failure		401	{object}	vaultsdk.APIError	"Not logged in"
//	@Router			/v1/accounts [get]
func (h *AccountsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accounts)
}

// HandleGet handles GET /v1/accounts/{id}
//
//	@Summary	Get an account
//	@Tags		Accounts
//	@Security	SessionCookie
//	@Produce	json
//	@Param		id	path		int	true	"Account ID"
//	@Success	200	{object}	vaultsdk.Account
//	@Failure	404	{object}	vaultsdk.APIError	"No such account"
//	@Router		/v1/accounts/{id} [get]
func (h *AccountsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := h.AccountService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

// HandleCreate handles POST /v1/accounts
//
//	@Summary		Create an account
//	@Description	Encrypts and stores a new account at the end of the list.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.AccountRequest	true	"Account"
//	@Success		201		{object}	vaultsdk.Account
//	@Failure		400		{object}	vaultsdk.APIError	"Validation failed"
//	@Failure		404		{object}	vaultsdk.APIError	"Unknown group"
//	@Router			/v1/accounts [post]
func (h *AccountsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAccount(w, r)
	if !ok {
		return
	}

	a, err := h.AccountService.Create(r.Context(), toAccount(0, req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, a)
}

// HandleUpdate handles PUT /v1/accounts/{id}
//
//	@Summary		Update an account
//	@Description	Replaces every field of the account. Its position in the list is kept.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Account ID"
//	@Param			request	body		vaultsdk.AccountRequest	true	"Account"
//	@Success		200		{object}	vaultsdk.Account
//	@Failure		400		{object}	vaultsdk.APIError	"Validation failed"
//	@Failure		404		{object}	vaultsdk.APIError	"No such account or group"
//	@Router			/v1/accounts/{id} [put]
func (h *AccountsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeAccount(w, r)
	if !ok {
		return
	}

	a, err := h.AccountService.Update(r.Context(), toAccount(id, req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}

// HandleDelete handles DELETE /v1/accounts/{id}
//
//	@Summary	Delete an account
//	@Tags		Accounts
//	@Security	SessionCookie
//	@Param		id	path	int	true	"Account ID"
//	@Success	204
//	@Failure	404	{object}	vaultsdk.APIError	"No such account"
//	@Router		/v1/accounts/{id} [delete]
func (h *AccountsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.AccountService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleReorder handles POST /v1/accounts/reorder
//
//	@Summary	Reorder accounts
//	@Tags		Accounts
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body	vaultsdk.ReorderRequest	true	"Account ids in display order"
//	@Success	200		{array}		vaultsdk.Account
//	@Failure	400		{object}	vaultsdk.APIError	"Duplicate ids"
//	@Failure	404		{object}	vaultsdk.APIError	"Unknown id"
//	@Router		/v1/accounts/reorder [post]
func (h *AccountsHandler) HandleReorder(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.ReorderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	accounts, err := h.AccountService.Reorder(r.Context(), req.IDs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accounts)
}

// HandleExport handles GET /v1/accounts/export
//
//	@Summary		Export accounts
//	@Description	Downloads every account as pipe separated text or indented JSON.
//	@Tags			Accounts
//	@Security		SessionCookie
//	@Produce		plain
//	@Produce		json
//	@Param			format	query		string	false	"text (default) or json"
//	@Param			order	query		string	false	"display (default) or newest"
//	@Success		200		{string}	string	"Export file"
//	@Failure		400		{object}	vaultsdk.APIError	"Unknown format"
//	@Router			/v1/accounts/export [get]
func (h *AccountsHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	format, err := service.ParseExportFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	order := service.OrderDisplay
	if strings.EqualFold(r.URL.Query().Get("order"), string(service.OrderNewest)) {
		order = service.OrderNewest
	}

	body, err := h.AccountService.Export(r.Context(), format, order)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	contentType := "text/plain; charset=utf-8"
	if format == service.ExportJSON {
		contentType = "application/json"
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFileName(format, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
