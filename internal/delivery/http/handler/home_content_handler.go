package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/view"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"
	"go-clinic-management/pkg/validator"
)

const adminHomeContent = "/admin/home-content"

var (
	ErrImageTooLarge = errors.New("upload exceeds the size limit")
	errInvalidOrder  = errors.New("order must be a whole number")
)

type HomeContentHandler struct {
	homeContentUsecase usecase.HomeContentUsecase
	validator          *validator.CustomValidator
	view               *view.Renderer
	flash              *flash.Store
	maxUploadSize      int64
}

func NewHomeContentHandler(
	homeContentUsecase usecase.HomeContentUsecase,
	validator *validator.CustomValidator,
	renderer *view.Renderer,
	flashStore *flash.Store,
	maxUploadSize int64,
) *HomeContentHandler {
	return &HomeContentHandler{
		homeContentUsecase: homeContentUsecase,
		validator:          validator,
		view:               renderer,
		flash:              flashStore,
		maxUploadSize:      maxUploadSize,
	}
}

// List shows the homepage blocks in display order
func (h *HomeContentHandler) List(w http.ResponseWriter, r *http.Request) {
	contents, err := h.homeContentUsecase.List(r.Context())
	if err != nil {
		failUnexpected(w, r, h.flash, err, "/admin/dashboard")
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/home_content_list.html", "Homepage Content", contents)
}

// ShowAdd renders an empty content form
func (h *HomeContentHandler) ShowAdd(w http.ResponseWriter, r *http.Request) {
	h.view.Render(w, r, http.StatusOK, "admin/home_content_form.html", "Add Content", &view.HomeContentForm{
		Action: adminHomeContent + "/add",
	})
}

// Add creates a content block with an optional image
func (h *HomeContentHandler) Add(w http.ResponseWriter, r *http.Request) {
	form := &view.HomeContentForm{Action: adminHomeContent + "/add"}

	req, image, err := h.parseForm(w, r)
	if err != nil {
		h.rejectForm(w, r, form, req, err, adminHomeContent+"/add")
		return
	}

	if err := h.validator.Validate(req); err != nil {
		form.Content = *req
		h.view.Render(w, r, http.StatusUnprocessableEntity, "admin/home_content_form.html", "Add Content", form,
			notice(h.validator.FirstError(err)))
		return
	}

	if _, err := h.homeContentUsecase.Create(r.Context(), currentUser(r), req, image); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidImage):
			h.rejectForm(w, r, form, req, err, adminHomeContent+"/add")
		case errors.Is(err, usecase.ErrAccessDenied):
			failUnexpected(w, r, h.flash, err, "/")
		default:
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Error adding content", adminHomeContent+"/add")
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Content added successfully!", adminHomeContent)
}

// ShowEdit renders the form filled with an existing block
func (h *HomeContentHandler) ShowEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Content not found", adminHomeContent)
		return
	}

	content, err := h.homeContentUsecase.Get(r.Context(), currentUser(r), id)
	if err != nil {
		h.failLookup(w, r, err)
		return
	}

	h.view.Render(w, r, http.StatusOK, "admin/home_content_form.html", "Edit Content", &view.HomeContentForm{
		ID:     content.ID,
		Action: editPath(content.ID),
		Content: dto.HomeContentRequest{
			SectionType: content.SectionType,
			Title:       content.Title,
			Description: content.Description,
			Order:       content.Order,
		},
		ImageURL: content.ImageURL,
	})
}

// Edit updates a block, replacing its image when a new one is uploaded
func (h *HomeContentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Content not found", adminHomeContent)
		return
	}

	existing, err := h.homeContentUsecase.Get(r.Context(), currentUser(r), id)
	if err != nil {
		h.failLookup(w, r, err)
		return
	}
	form := &view.HomeContentForm{ID: id, Action: editPath(id), ImageURL: existing.ImageURL}

	req, image, err := h.parseForm(w, r)
	if err != nil {
		h.rejectForm(w, r, form, req, err, editPath(id))
		return
	}

	if err := h.validator.Validate(req); err != nil {
		form.Content = *req
		h.view.Render(w, r, http.StatusUnprocessableEntity, "admin/home_content_form.html", "Edit Content", form,
			notice(h.validator.FirstError(err)))
		return
	}

	if _, err := h.homeContentUsecase.Update(r.Context(), currentUser(r), id, req, image); err != nil {
		switch {
		case errors.Is(err, usecase.ErrContentNotFound):
			h.failLookup(w, r, err)
		case errors.Is(err, usecase.ErrInvalidImage):
			h.rejectForm(w, r, form, req, err, editPath(id))
		case errors.Is(err, usecase.ErrAccessDenied):
			failUnexpected(w, r, h.flash, err, "/")
		default:
			flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Error updating content", editPath(id))
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Homepage content updated successfully!", adminHomeContent)
}

// Delete removes a block and its image
func (h *HomeContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Content not found", adminHomeContent)
		return
	}

	if err := h.homeContentUsecase.Delete(r.Context(), currentUser(r), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrContentNotFound):
			h.failLookup(w, r, err)
		default:
			failUnexpected(w, r, h.flash, err, adminHomeContent)
		}
		return
	}

	flashAndRedirect(w, r, h.flash, flash.CategorySuccess, "Content deleted successfully!", adminHomeContent)
}

// parseForm reads the multipart body. The returned request is never nil so a
// rejected form can be shown again with what was typed.
func (h *HomeContentHandler) parseForm(w http.ResponseWriter, r *http.Request) (*dto.HomeContentRequest, *dto.ImageUpload, error) {
	req := &dto.HomeContentRequest{}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, nil, ErrImageTooLarge
		}
		return req, nil, err
	}

	req.SectionType = strings.TrimSpace(r.PostFormValue("section_type"))
	req.Title = strings.TrimSpace(r.PostFormValue("title"))
	req.Description = r.PostFormValue("description")

	if raw := strings.TrimSpace(r.PostFormValue("order")); raw != "" {
		order, err := strconv.Atoi(raw)
		if err != nil {
			return req, nil, errInvalidOrder
		}
		req.Order = order
	}

	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil
	}
	if err != nil {
		return req, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, nil, err
	}

	return req, &dto.ImageUpload{Filename: header.Filename, Data: data}, nil
}

// rejectForm shows the form again for input problems. An oversized body cannot
// be re-rendered from, so that case goes back to the form with a notice.
func (h *HomeContentHandler) rejectForm(w http.ResponseWriter, r *http.Request, form *view.HomeContentForm, req *dto.HomeContentRequest, err error, url string) {
	var message string
	switch {
	case errors.Is(err, ErrImageTooLarge):
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger,
			fmt.Sprintf("Image is too large (max %d MB)", h.maxUploadSize>>20), url)
		return
	case errors.Is(err, errInvalidOrder):
		message = "Order must be a whole number"
	case errors.Is(err, usecase.ErrInvalidImage):
		message = "Image must be a png, jpg, jpeg or gif file"
	default:
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Invalid form submission", url)
		return
	}

	form.Content = *req
	title := "Add Content"
	if form.ID != 0 {
		title = "Edit Content"
	}
	h.view.Render(w, r, http.StatusUnprocessableEntity, "admin/home_content_form.html", title, form, notice(message))
}

func (h *HomeContentHandler) failLookup(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, usecase.ErrContentNotFound) {
		flashAndRedirect(w, r, h.flash, flash.CategoryDanger, "Content not found", adminHomeContent)
		return
	}
	failUnexpected(w, r, h.flash, err, adminHomeContent)
}

func editPath(id uint) string {
	return fmt.Sprintf("%s/edit/%d", adminHomeContent, id)
}
