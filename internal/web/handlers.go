package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/stepsmith/stepsmith/internal/ssc"
	"github.com/stepsmith/stepsmith/internal/tool"
	"github.com/stepsmith/stepsmith/internal/tool/fakemines"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/scroll-normalizer", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// page is the template data for a tool's form page.
type page struct {
	Title       string
	Summary     string
	Nav         []string
	ShowOptions bool
	Defaults    tool.Options
}

func (s *Server) pageFor(t tool.Tool) page {
	def, ok := pageDefs[t.Name()]
	if !ok {
		def = pageDef{title: t.Name()}
	}
	return page{
		Title:       def.title,
		Summary:     t.Summary(),
		Nav:         s.registry.Names(),
		ShowOptions: def.showOptions,
		Defaults:    s.opts.FakeMinesDefaults,
	}
}

func (s *Server) handlePage(t tool.Tool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.tmpl.ExecuteTemplate(w, "tool.html.tmpl", s.pageFor(t)); err != nil {
			s.logger.Error("Template rendering failed", "tool", t.Name(), "error", err)
		}
	}
}

func (s *Server) handleUpload(t tool.Tool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

		file, header, err := r.FormFile("sscfile")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "uploaded file is too large", http.StatusRequestEntityTooLarge)
				return
			}
			// No file part: bounce back to the form, as a browser submitting
			// an empty form would expect.
			http.Redirect(w, r, r.URL.Path, http.StatusFound)
			return
		}
		defer file.Close()

		if header.Filename == "" {
			// Browsers submit an empty unnamed file when nothing is selected.
			http.Redirect(w, r, r.URL.Path, http.StatusFound)
			return
		}
		if !strings.EqualFold(filepath.Ext(header.Filename), ".ssc") {
			http.Error(w, "only .ssc files are supported", http.StatusBadRequest)
			return
		}

		// SSC files are virtually always UTF-8; the parser tolerates a BOM.
		contents, err := io.ReadAll(file)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "uploaded file is too large", http.StatusRequestEntityTooLarge)
				return
			}
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}

		sim, err := ssc.ParseString(string(contents))
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to parse simfile: %v", err), http.StatusBadRequest)
			return
		}

		opts := s.opts.FakeMinesDefaults
		if r.FormValue("allow_simultaneous") != "" {
			opts.AllowSimultaneous = true
		}
		if r.FormValue("allow_split_timing") != "" {
			opts.AllowSplitTiming = true
		}

		res, err := t.Apply(r.Context(), sim, opts)
		if err != nil {
			var conflict *fakemines.ConflictError
			if errors.As(err, &conflict) {
				// The conflict report is the page content, not a failure:
				// the user reads it and re-submits with the right opt-ins.
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				io.WriteString(w, conflict.Error())
				return
			}
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.logger.Info("Tool applied to upload.",
			"tool", t.Name(), "file", header.Filename, "actions", len(res.Actions))

		s.sendAttachment(w, t, header.Filename, sim)
	}
}

// sendAttachment streams the transformed simfile back as a download named
// after the upload.
func (s *Server) sendAttachment(w http.ResponseWriter, t tool.Tool, uploadName string, sim *ssc.Simfile) {
	suffix := pageDefs[t.Name()].suffix
	base := strings.TrimSuffix(uploadName, filepath.Ext(uploadName))
	downloadName := base + suffix + ".ssc"

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	io.WriteString(w, sim.String())
}
