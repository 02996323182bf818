// Package web serves the two browser views and their assets.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-labs/project-starter/config"
	"github.com/launchpad-labs/project-starter/internal/projects"
	"github.com/launchpad-labs/project-starter/internal/projects/domain"
	"github.com/launchpad-labs/project-starter/internal/session"
	sessiondomain "github.com/launchpad-labs/project-starter/internal/session/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Pages renders the login and home views.
type Pages struct {
	forms    *projects.Registry
	firebase config.FirebaseConfig
	devAuth  bool
}

func NewPages(forms *projects.Registry, firebase config.FirebaseConfig, devAuth bool) *Pages {
	return &Pages{forms: forms, firebase: firebase, devAuth: devAuth}
}

// Install loads templates and static assets into r.
func Install(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))
}

// Register attaches the view routes. The group must already run the session
// context middleware.
func (p *Pages) Register(rg gin.IRoutes) {
	rg.GET(sessiondomain.RouteLogin, p.index)
	rg.GET(sessiondomain.RouteHome, p.home)
}

func (p *Pages) index(c *gin.Context) {
	if sessiondomain.ViewFor(session.FromGin(c)) == sessiondomain.LoggedIn {
		p.renderHome(c)
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", gin.H{
		"Title":    "Sign in",
		"DevAuth":  p.devAuth,
		"Firebase": p.firebase,
	})
}

func (p *Pages) home(c *gin.Context) {
	if sessiondomain.ViewFor(session.FromGin(c)) != sessiondomain.LoggedIn {
		c.Redirect(http.StatusFound, sessiondomain.RouteLogin)
		return
	}
	p.renderHome(c)
}

// renderHome starts the page with an empty form; a reload discards earlier state.
func (p *Pages) renderHome(c *gin.Context) {
	p.forms.Reset(session.ContextID(c))
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"Title":        "Project builder",
		"ProjectTypes": domain.ProjectTypes,
		"Languages":    domain.Languages,
	})
}
