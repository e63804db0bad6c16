package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"

	"github.com/gorilla/mux"
)

const genericErrorMessage = "Something went wrong. Please try again."

func currentUser(r *http.Request) *entity.User {
	user, _ := middleware.GetUserFromContext(r.Context())
	return user
}

// pathID reads a numeric route variable.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashAndRedirect is the standard way a failed form action ends.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, store *flash.Store, category, message, url string) {
	store.Add(w, r, category, message)
	redirect(w, r, url)
}

// failUnexpected handles errors a handler has no specific message for.
func failUnexpected(w http.ResponseWriter, r *http.Request, store *flash.Store, err error, url string) {
	if errors.Is(err, usecase.ErrAccessDenied) {
		flashAndRedirect(w, r, store, flash.CategoryDanger, "Access denied", "/")
		return
	}
	flashAndRedirect(w, r, store, flash.CategoryDanger, genericErrorMessage, url)
}

func notice(message string) flash.Message {
	return flash.Message{Category: flash.CategoryDanger, Text: message}
}
