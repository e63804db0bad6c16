package http

import (
	"crypto/sha256"
	"net/http"
	"path"
	"strings"

	"go-clinic-management/internal/delivery/http/handler"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/flash"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options carries the deployment settings the router needs.
type Options struct {
	SecretKey   string
	Secure      bool
	MaxBodySize int64
	// UploadsPath and UploadsDir mount a local image directory. Empty UploadsDir mounts nothing.
	UploadsPath string
	UploadsDir  string
}

type Router struct {
	router             *mux.Router
	opts               Options
	log                *logrus.Logger
	flash              *flash.Store
	authHandler        *handler.AuthHandler
	homeHandler        *handler.HomeHandler
	bookingHandler     *handler.BookingHandler
	doctorHandler      *handler.DoctorHandler
	adminHandler       *handler.AdminHandler
	settingsHandler    *handler.SettingsHandler
	homeContentHandler *handler.HomeContentHandler
	authMiddleware     *middleware.AuthMiddleware
}

func NewRouter(
	opts Options,
	log *logrus.Logger,
	flashStore *flash.Store,
	authHandler *handler.AuthHandler,
	homeHandler *handler.HomeHandler,
	bookingHandler *handler.BookingHandler,
	doctorHandler *handler.DoctorHandler,
	adminHandler *handler.AdminHandler,
	settingsHandler *handler.SettingsHandler,
	homeContentHandler *handler.HomeContentHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		opts:               opts,
		log:                log,
		flash:              flashStore,
		authHandler:        authHandler,
		homeHandler:        homeHandler,
		bookingHandler:     bookingHandler,
		doctorHandler:      doctorHandler,
		adminHandler:       adminHandler,
		settingsHandler:    settingsHandler,
		homeContentHandler: homeContentHandler,
		authMiddleware:     authMiddleware,
	}
}

// Setup registers every route and returns the fully wrapped handler.
func (r *Router) Setup() http.Handler {
	r.router.HandleFunc("/health", r.homeHandler.Health).Methods(http.MethodGet)

	if r.opts.UploadsDir != "" {
		prefix := strings.TrimSuffix(r.opts.UploadsPath, "/") + "/"
		r.router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, fileOnly(http.Dir(r.opts.UploadsDir)))).
			Methods(http.MethodGet, http.MethodHead)
	}

	site := r.router.NewRoute().Subrouter()
	site.Use(r.authMiddleware.LoadUser)

	// Public routes
	site.HandleFunc("/", r.homeHandler.Home).Methods(http.MethodGet)
	site.HandleFunc("/register", r.authHandler.ShowRegister).Methods(http.MethodGet)
	site.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	site.HandleFunc("/login", r.authHandler.ShowLogin).Methods(http.MethodGet)
	site.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)

	// Session routes
	session := site.NewRoute().Subrouter()
	session.Use(r.authMiddleware.RequireLogin)
	session.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodGet)

	// Patient routes
	patient := site.NewRoute().Subrouter()
	patient.Use(middleware.RequireCapability(r.flash, entity.CapabilityBook))
	patient.HandleFunc("/book", r.bookingHandler.ShowBook).Methods(http.MethodGet)
	patient.HandleFunc("/book", r.bookingHandler.Book).Methods(http.MethodPost)
	patient.HandleFunc("/my-appointments", r.bookingHandler.MyAppointments).Methods(http.MethodGet)

	// Doctor routes
	doctor := site.PathPrefix("/doctor").Subrouter()
	doctor.Use(middleware.RequireCapability(r.flash, entity.CapabilityDoctorConsole))
	doctor.HandleFunc("/", r.doctorHandler.Dashboard).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/{id:[0-9]+}", r.doctorHandler.ViewAppointment).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments/update_status/{id:[0-9]+}", r.doctorHandler.UpdateStatus).Methods(http.MethodPost)

	// Admin routes
	admin := site.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireCapability(r.flash, entity.CapabilityAdminConsole))
	admin.HandleFunc("/dashboard", r.adminHandler.Dashboard).Methods(http.MethodGet)

	admin.HandleFunc("/users", r.adminHandler.Users).Methods(http.MethodGet)
	admin.HandleFunc("/users/update/{id:[0-9]+}", r.adminHandler.UpdateUserRole).Methods(http.MethodPost)
	admin.HandleFunc("/users/delete/{id:[0-9]+}", r.adminHandler.DeleteUser).Methods(http.MethodPost)

	admin.HandleFunc("/appointments", r.adminHandler.Appointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/export", r.adminHandler.ExportAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/update_status/{id:[0-9]+}", r.adminHandler.UpdateAppointmentStatus).Methods(http.MethodPost)

	admin.HandleFunc("/settings", r.settingsHandler.ShowSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", r.settingsHandler.UpdateSettings).Methods(http.MethodPost)

	admin.HandleFunc("/home-content", r.homeContentHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/home-content/add", r.homeContentHandler.ShowAdd).Methods(http.MethodGet)
	admin.HandleFunc("/home-content/add", r.homeContentHandler.Add).Methods(http.MethodPost)
	admin.HandleFunc("/home-content/edit/{id:[0-9]+}", r.homeContentHandler.ShowEdit).Methods(http.MethodGet)
	admin.HandleFunc("/home-content/edit/{id:[0-9]+}", r.homeContentHandler.Edit).Methods(http.MethodPost)
	admin.HandleFunc("/home-content/delete/{id:[0-9]+}", r.homeContentHandler.Delete).Methods(http.MethodPost)

	return r.wrap(r.router)
}

// wrap adds the request-wide layers: logging, body limit and CSRF protection.
func (r *Router) wrap(next http.Handler) http.Handler {
	key := sha256.Sum256([]byte(r.opts.SecretKey))
	protect := csrf.Protect(key[:],
		csrf.Secure(r.opts.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(r.csrfFailure)),
	)

	h := protect(next)
	if !r.opts.Secure {
		h = plaintext(h)
	}
	h = middleware.LimitRequestBody(r.flash, r.opts.MaxBodySize)(h)
	return middleware.RequestLogger(r.log)(h)
}

// csrfFailure runs when csrf.Protect rejects a submission. The token check reads
// the form first, so an oversized streamed upload also lands here.
func (r *Router) csrfFailure(w http.ResponseWriter, req *http.Request) {
	if middleware.RejectOversizedBody(w, req, r.flash) {
		r.log.Warnf("Request body too large for %s %s", req.Method, req.URL.Path)
		return
	}

	r.log.Warnf("CSRF check failed for %s %s: %v", req.Method, req.URL.Path, csrf.FailureReason(req))
	r.flash.Danger(w, req, "Your form has expired. Please try again.")
	http.Redirect(w, req, middleware.FormPage(req), http.StatusSeeOther)
}

// fileOnly serves files and answers directory paths with 404 instead of a listing.
func fileOnly(root http.FileSystem) http.Handler {
	files := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		name := req.URL.Path
		if name == "" || strings.HasSuffix(name, "/") {
			http.NotFound(w, req)
			return
		}

		f, err := root.Open(path.Clean("/" + name))
		if err != nil {
			http.NotFound(w, req)
			return
		}
		info, err := f.Stat()
		f.Close()
		if err != nil || info.IsDir() {
			http.NotFound(w, req)
			return
		}

		files.ServeHTTP(w, req)
	})
}

// plaintext marks requests served without TLS so the CSRF origin check does not expect https.
func plaintext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(req))
	})
}
