package http

import (
	"net/http"

	"github.com/aussiebroadwan/credvault/internal/vault/service"
	"github.com/aussiebroadwan/credvault/pkg/httpx"
	"github.com/aussiebroadwan/credvault/pkg/vaultsdk"
)

type GroupsHandler struct {
	GroupService *service.GroupService
}

// HandleList handles GET /v1/groups
//
//	@Summary	List groups
//	@Tags		Groups
//	@Security	SessionCookie
//	@Produce	json
//	@Success	200	{array}	vaultsdk.Group
//	@Router		/v1/groups [get]
func (h *GroupsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	groups, err := h.GroupService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, groups)
}

// HandleCreate handles POST /v1/groups
//
//	@Summary	Create a group
//	@Tags		Groups
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		request	body		vaultsdk.GroupRequest	true	"Group"
//	@Success	201		{object}	vaultsdk.Group
//	@Failure	400		{object}	vaultsdk.APIError	"Group name is required"
//	@Failure	409		{object}	vaultsdk.APIError	"A group with this name already exists"
//	@Router		/v1/groups [post]
func (h *GroupsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req vaultsdk.GroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.GroupService.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, g)
}

// HandleRename handles PUT /v1/groups/{id}
//
//	@Summary	Rename a group
//	@Tags		Groups
//	@Security	SessionCookie
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int						true	"Group ID"
//	@Param		request	body		vaultsdk.GroupRequest	true	"Group"
//	@Success	200		{object}	vaultsdk.Group
//	@Failure	404		{object}	vaultsdk.APIError	"No such group"
//	@Failure	409		{object}	vaultsdk.APIError	"A group with this name already exists"
//	@Router		/v1/groups/{id} [put]
func (h *GroupsHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req vaultsdk.GroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	g, err := h.GroupService.Rename(r.Context(), id, req.Name)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, g)
}

// HandleDelete handles DELETE /v1/groups/{id}
//
//	@Summary		Delete a group
//	@Description	Refused while any account still belongs to the group.
//	@Tags			Groups
//	@Security		SessionCookie
//	@Param			id	path	int	true	"Group ID"
//	@Success		204
//	@Failure		404	{object}	vaultsdk.APIError	"No such group"
//	@Failure		409	{object}	vaultsdk.APIError	"Group still has accounts"
//	@Router			/v1/groups/{id} [delete]
func (h *GroupsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.GroupService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
