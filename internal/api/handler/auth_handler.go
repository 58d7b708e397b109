package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"opti_campaign/internal/app/service"
	"opti_campaign/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/token", h.token)
}

// token accepts either form-encoded credentials (the OAuth2 password flow)
// or a JSON body, keyed on Content-Type.
func (h *AuthHandler) token(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid form payload: "+err.Error())
			return
		}
		req.Username = r.PostFormValue("username")
		req.Password = r.PostFormValue("password")
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			common.RespondWithError(w, http.StatusUnprocessableEntity, "Invalid request payload: "+err.Error())
			return
		}
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
