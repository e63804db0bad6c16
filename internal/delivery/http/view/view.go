package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"go-clinic-management/internal/delivery/dto"
	"go-clinic-management/internal/delivery/http/middleware"
	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/internal/usecase"
	"go-clinic-management/pkg/flash"

	"github.com/gorilla/csrf"
	"github.com/sirupsen/logrus"
)

//go:embed templates
var templatesFS embed.FS

const layoutFile = "templates/layout.html"

// Page is what every template receives. Data holds the page specific values.
type Page struct {
	Title        string
	User         *entity.User
	CanBook      bool
	CanDoctor    bool
	CanAdmin     bool
	ClinicName   string
	WorkingHours string
	Flashes      []flash.Message
	CSRFField    template.HTML
	Data         interface{}
}

type Renderer struct {
	pages    map[string]*template.Template
	flash    *flash.Store
	settings usecase.SiteSettingsUsecase
	log      *logrus.Logger
}

var funcMap = template.FuncMap{
	"statusClass": func(status string) string {
		switch status {
		case string(entity.AppointmentStatusApproved):
			return "success"
		case string(entity.AppointmentStatusRejected):
			return "danger"
		default:
			return "warning"
		}
	},
	"roles": func() []entity.Role {
		return []entity.Role{entity.RolePatient, entity.RoleDoctor, entity.RoleAdmin}
	},
}

// NewRenderer parses the layout together with each page once at startup.
func NewRenderer(flashStore *flash.Store, settings usecase.SiteSettingsUsecase, log *logrus.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template)

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == layoutFile || !strings.HasSuffix(p, ".html") {
			return nil
		}

		tpl, err := template.New(path.Base(layoutFile)).Funcs(funcMap).ParseFS(templatesFS, layoutFile, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", p, err)
		}
		pages[strings.TrimPrefix(p, "templates/")] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages, flash: flashStore, settings: settings, log: log}, nil
}

// Render writes page with status. Pending flash messages are consumed and shown
// before any notices raised by the current request.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page, title string, data interface{}, notices ...flash.Message) {
	tpl, ok := v.pages[page]
	if !ok {
		v.log.Errorf("Unknown template %s", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	p := Page{
		Title:     title,
		Flashes:   v.flash.Consume(w, r),
		CSRFField: csrf.TemplateField(r),
		Data:      data,
	}
	p.Flashes = append(p.Flashes, notices...)

	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		p.User = user
		p.CanBook = user.Can(entity.CapabilityBook)
		p.CanDoctor = user.Can(entity.CapabilityDoctorConsole)
		p.CanAdmin = user.Can(entity.CapabilityAdminConsole)
	}

	p.ClinicName = entity.DefaultClinicName
	p.WorkingHours = entity.DefaultWorkingHours
	if settings, err := v.settings.Get(r.Context()); err == nil {
		p.ClinicName = settings.ClinicName
		p.WorkingHours = settings.WorkingHours
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, p); err != nil {
		v.log.Errorf("Failed to render %s: %+v", page, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// HomeContentForm backs the shared add/edit page.
type HomeContentForm struct {
	ID       uint
	Action   string
	Content  dto.HomeContentRequest
	ImageURL string
}
