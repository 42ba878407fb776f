package web

import (
	"bytes"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/event"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdRenderer renders booking request notes. Raw HTML in the source is omitted.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// internalError logs the error and responds with a generic 500.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// layoutData is what layout.html needs besides the page data.
type layoutData struct {
	Title  string
	Active string // nav entry to highlight
	Page   any
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, status int, data layoutData) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"csrfToken":   func() string { return csrf.Token(r) },
		"csrfField":   func() template.HTML { return csrf.TemplateField(r) },
		"isLoggedIn":  func() bool { return loggedIn },
		"currentUser": func() string { return sess.Username },
		"clubName":    func() string { return clubName },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"typeLabel": func(t string) string {
			if label, ok := event.TypeLabels[t]; ok {
				return label
			}
			return t
		},
		"localTime": func(t time.Time, layout string) string { return t.In(location).Format(layout) },
		"pct":       func(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) + "%" },
		"hourLabel": func(h int) string { return strconv.Itoa(h) + ":00" },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(assets, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		internalError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// formError returns the user-facing text of a form failure, or "" when err
// is not one.
func formError(err error) string {
	var fe *orchestrators.FormError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return ""
}

// localRedirect keeps redirect targets on this site.
func localRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

type loginPage struct {
	Username string
	Error    string
}

// handleLoginPage handles GET /
func handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/calendar", http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "login.html", http.StatusOK, layoutData{Title: "Log in", Page: loginPage{}})
}

// handleLogin handles POST /. The login is a placeholder: any non-empty
// username and password start a session.
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	username, err := orchestrators.ExecuteLogin(orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		renderTemplate(w, r, "login.html", http.StatusOK, layoutData{
			Title: "Log in",
			Page:  loginPage{Username: r.FormValue("username"), Error: err.Error()},
		})
		return
	}

	token, err := sessions.Create(username)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	http.Redirect(w, r, "/calendar", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleHealthz handles GET /healthz
func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handlePerf handles GET /admin/perf
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if perfCollector == nil {
		http.Error(w, "performance collection disabled", http.StatusNotFound)
		return
	}
	perfCollector.Handler().ServeHTTP(w, r)
}
