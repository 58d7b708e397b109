package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"opti_campaign/internal/api/middleware"
	"opti_campaign/internal/app/service"
	"opti_campaign/internal/common"

	"github.com/go-chi/chi/v5"
)

const defaultListLimit = 100

type CampaignHandler struct {
	campaignService *service.CampaignService
}

func NewCampaignHandler(cs *service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignService: cs}
}

func (h *CampaignHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createCampaign)
	r.Get("/", h.listCampaigns)
	r.Get("/{campaignID}", h.getCampaign)
	r.Put("/{campaignID}", h.updateCampaign)
	r.Delete("/{campaignID}", h.deleteCampaign)
	r.Patch("/{campaignID}/toggle", h.toggleCampaign) // PATCH /campaigns/{id}/toggle flips status
}

func campaignIDFromURL(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "campaignID"), 10, 64)
	return id, err == nil
}

func (h *CampaignHandler) createCampaign(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSubjectFromContext(r.Context()); !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req service.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid request payload: "+err.Error())
		return
	}

	campaign, err := h.campaignService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, campaign)
}

func (h *CampaignHandler) listCampaigns(w http.ResponseWriter, r *http.Request) {
	skip := 0
	limit := defaultListLimit

	if s := r.URL.Query().Get("skip"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			common.RespondWithError(w, http.StatusUnprocessableEntity, "skip must be a non-negative integer")
			return
		}
		skip = v
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			common.RespondWithError(w, http.StatusUnprocessableEntity, "limit must be a non-negative integer")
			return
		}
		limit = v
	}

	campaigns, err := h.campaignService.List(r.Context(), skip, limit)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, campaigns)
}

func (h *CampaignHandler) getCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignIDFromURL(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid campaign id")
		return
	}

	campaign, err := h.campaignService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) updateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignIDFromURL(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid campaign id")
		return
	}

	var req service.UpdateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid request payload: "+err.Error())
		return
	}

	campaign, err := h.campaignService.Update(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) deleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignIDFromURL(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid campaign id")
		return
	}

	campaign, err := h.campaignService.Delete(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, campaign)
}

func (h *CampaignHandler) toggleCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignIDFromURL(r)
	if !ok {
		common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid campaign id")
		return
	}

	campaign, err := h.campaignService.ToggleStatus(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, campaign)
}
