package handler

import (
	"net/http"

	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/response"
)

type HomeHandler struct {
	homeContentUsecase usecase.HomeContentUsecase
	view               *view.Renderer
}

func NewHomeHandler(homeContentUsecase usecase.HomeContentUsecase, renderer *view.Renderer) *HomeHandler {
	return &HomeHandler{
		homeContentUsecase: homeContentUsecase,
		view:               renderer,
	}
}

// Home renders the public homepage blocks
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	contents, err := h.homeContentUsecase.List(r.Context())
	if err != nil {
		http.Error(w, genericErrorMessage, http.StatusInternalServerError)
		return
	}

	h.view.Render(w, r, http.StatusOK, "home.html", "", contents)
}

// Health reports that the server is up
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "ok", nil)
}
