//go:build !wasm
// +build !wasm

package server

import (
	"net/http"

	"github.com/panyam/skyscan/runner"
	"github.com/panyam/templar"
)

// IndexTemplate is the file holding the run page
const IndexTemplate = "index.html"

// IndexPage is the run form page. Its field defaults match the compute
// service's own defaults.
type IndexPage struct {
	Title       string
	RunPath     string
	WasmPath    string
	ButtonLabel string
	NoiseEvents string
	TruePairs   string
	TimeWindow  string
	AngleSep    string
}

// NewIndexPage returns the page with stock defaults
func NewIndexPage() *IndexPage {
	return &IndexPage{
		Title:       "Multi-Messenger Correlation Scanner",
		RunPath:     runner.RunPath,
		WasmPath:    "/static/skyscan.wasm",
		ButtonLabel: "INITIATE SCAN",
		NoiseEvents: "500",
		TruePairs:   "3",
		TimeWindow:  "1.0",
		AngleSep:    "1.0",
	}
}

// SetupTemplates initializes the Templar template group
func SetupTemplates(templatesDir string) *templar.TemplateGroup {
	group := templar.NewTemplateGroup()
	group.Loader = templar.NewFileSystemLoader(templatesDir)
	return group
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	tmpl, err := s.templates.Loader.Load(IndexTemplate, "")
	if err != nil {
		s.logger.Error("Template load error for %s: %v", IndexTemplate, err)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if err := s.templates.RenderHtmlTemplate(w, tmpl[0], "IndexPage", NewIndexPage(), nil); err != nil {
		s.logger.Error("Template render error: %v", err)
		http.Error(w, "Template render error", http.StatusInternalServerError)
	}
}
