package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// actionPages maps POST-only action routes to the page that renders their form.
var actionPages = []struct {
	prefix string
	page   string
}{
	{"/admin/users/update/", "/admin/users"},
	{"/admin/users/delete/", "/admin/users"},
	{"/admin/appointments/update_status/", "/admin/appointments"},
	{"/admin/home-content/delete/", "/admin/home-content"},
	{"/doctor/appointments/update_status/", "/doctor/"},
}

// FormPage returns where a rejected submission should send the browser back to:
// the same-origin Referer when present, otherwise the page that owns the form.
func FormPage(r *http.Request) string {
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host != "" && ref.Host == r.Host && strings.HasPrefix(ref.Path, "/") {
		if page := actionPage(ref.Path); page != "" {
			return page
		}
		return ref.Path
	}

	if page := actionPage(r.URL.Path); page != "" {
		return page
	}
	return r.URL.Path
}

func actionPage(path string) string {
	for _, action := range actionPages {
		if strings.HasPrefix(path, action.prefix) {
			return action.page
		}
	}
	return ""
}
