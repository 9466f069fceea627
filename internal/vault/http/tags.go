package http

import (
	"net/http"

	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

// TagsHandler serves tag listing and bulk tag edits.
type TagsHandler struct {
	AccountService *service.AccountService
}

// HandleList handles GET /v1/tags
//
//	@Summary	List tags
//	@Tags		Tags
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{array}	string	"Distinct tags in first-seen order"
//	@Router		/v1/tags [get]
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.AccountService.UniqueTags(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tags)
}

// HandleCandidates handles GET /v1/tags/accounts
//
//	@Summary	Accounts carrying a tag
//	@Tags		Tags
//	@Security	SessionCookie
//	@Produce	json
//	@Param		from	query		string	true	"Tag to search for"
//	@Success	200		{object}	vaultsdk.TagCandidatesResponse
//	@Failure	400		{object}	vaultsdk.APIError	"Missing from"
//	@Router		/v1/tags/accounts [get]
func (h *TagsHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		httpx.WriteError(w, http.StatusBadRequest, "Missing from")
		return
	}

	found, err := h.AccountService.AccountsWithTag(r.Context(), from)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := vaultsdk.TagCandidatesResponse{
		Count:      len(found),
		Candidates: make([]vaultsdk.TagCandidate, 0, len(found)),
	}
	for _, c := range found {
		resp.Candidates = append(resp.Candidates, vaultsdk.TagCandidate{ID: c.ID, UserID: c.Identifier, Tags: c.Tags})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleReplace handles POST /v1/tags/replace
//
//	@Summary		Rename a tag everywhere
//	@Description	Replaces fromTag with toTag on every account where it appears as a whole tag. All changes are made in one transaction.
//	@Tags			Tags
//	@Security		SessionCookie
//	@Accept			json
//	@Produce		json
//	@Param			request	body		vaultsdk.TagReplaceRequest	true	"Rename"
//	@Success		200		{object}	vaultsdk.TagReplaceResponse
//	@Failure		400		{object}	vaultsdk.APIError	"Missing or invalid tag"
//	@Router			/v1/tags/replace [post]
func (h *TagsHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.TagReplaceRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := h.AccountService.ReplaceTag(r.Context(), req.FromTag, req.ToTag)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.TagReplaceResponse{Matched: res.Matched, Updated: res.Updated})
}

// HandleSet handles PATCH /v1/accounts/{id}/tags
//
//	@Summary	Set an account's tags
//	@Tags		Tags
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Account ID"
//	@Param		request	body		vaultsdk.SetTagsRequest	true	"Comma separated tags"
//	@Success	200		{object}	vaultsdk.SuccessResponse
//	@Failure	404		{object}	vaultsdk.APIError	"No such account"
//	@Router		/v1/accounts/{id}/tags [patch]
func (h *TagsHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vaultsdk.SetTagsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AccountService.SetTags(r.Context(), id, req.Tags); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, vaultsdk.SuccessResponse{Success: true})
}
