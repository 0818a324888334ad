package web

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"motoreg/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type loginPage struct {
	Error string
}

type listPage struct {
	User        string
	Search      string
	Motorcycles []models.Motorcycle
}

type detailPage struct {
	User       string
	Motorcycle *models.Motorcycle
}

type formPage struct {
	User   string
	Title  string
	Action string
	Fields map[string]string
}

type errorPage struct {
	User    string
	Status  int
	Message string
}

func (s *Server) renderPage(w http.ResponseWriter, code int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error(context.Background(), "template render failed", "template", name, "error", err.Error())
	}
}
