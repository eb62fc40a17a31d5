package controllers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/fysikteknologsektionen/ftek-login/config"
	"github.com/fysikteknologsektionen/ftek-login/services"
)

//go:embed templates/*.html
var templateFS embed.FS

// renderTemplateWithStatus creates a template set and renders it with the provided data and status code
func renderTemplateWithStatus(w http.ResponseWriter, statusCode int, pageTemplate string, data interface{}) error {
	tmpl, err := template.New("layout.html").ParseFS(templateFS, "templates/layout.html", "templates/"+pageTemplate)
	if err != nil {
		http.Error(w, "Failed to parse template: "+err.Error(), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}

	return tmpl.ExecuteTemplate(w, "layout.html", data)
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(v)
}

// Controllers holds all controller instances
type Controllers struct {
	Login   *LoginController
	Profile *ProfileController
}

// NewControllers creates and initializes all controller instances
func NewControllers(cfg *config.Config, services *services.Services, logger *logrus.Logger) *Controllers {
	return &Controllers{
		Login:   NewLoginController(cfg, services.Login, logger),
		Profile: NewProfileController(services.Users, services.Profile, logger),
	}
}
