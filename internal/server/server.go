// Package server exposes the study lifecycle, exporters, and importer over a
// small JSON HTTP API.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/propscope/feasibility/internal/export"
	"github.com/propscope/feasibility/internal/importer"
	"github.com/propscope/feasibility/internal/studies"
	"github.com/propscope/feasibility/pkg/constants"
	"github.com/propscope/feasibility/pkg/feasibility"
	"go.uber.org/zap"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

type handler struct {
	logger        *zap.Logger
	manager       *studies.Manager
	maxUploadSize int64
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the study API.
func NewHandler(logger *zap.Logger, manager *studies.Manager, maxUploadSize int64) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	h := &handler{logger: logger, manager: manager, maxUploadSize: maxUploadSize, now: time.Now}

	mux := http.NewServeMux()

	// Study collection (create, list)
	mux.HandleFunc("/api/studies", h.handleStudies)

	// Single study (get, replace, delete) and export downloads
	mux.HandleFunc("/api/studies/", h.handleStudy)

	// Workbook import (file upload)
	mux.HandleFunc("/api/import", h.handleImport)

	return mux
}

func (h *handler) handleStudies(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		all, err := h.manager.List()
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list studies: %v", err))
			return
		}
		h.respondJSON(w, http.StatusOK, all)
	case http.MethodPost:
		var in feasibility.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse input: %v", err))
			return
		}
		study, err := h.manager.Create(in)
		if err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to save study: %v", err))
			return
		}
		h.respondJSON(w, http.StatusCreated, study)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleStudy(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/studies/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}
	id := parts[0]

	if len(parts) == 3 && parts[1] == "export" {
		h.handleExport(w, r, id, parts[2])
		return
	}
	if len(parts) != 1 {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		study, err := h.manager.GetByID(id)
		if err != nil {
			h.respondLookupError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, study)
	case http.MethodPut:
		var in feasibility.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse input: %v", err))
			return
		}
		study, err := h.manager.Update(id, in)
		if err != nil {
			h.respondLookupError(w, err)
			return
		}
		h.respondJSON(w, http.StatusOK, study)
	case http.MethodDelete:
		if err := h.manager.DeleteByID(id); err != nil {
			h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to delete study: %v", err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request, id, kind string) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	study, err := h.manager.GetByID(id)
	if err != nil {
		h.respondLookupError(w, err)
		return
	}

	// Render to a buffer first so a failed render becomes a 500 instead of
	// a truncated download with a success status.
	now := h.now()
	var buf bytes.Buffer
	var contentType, filename string
	switch kind {
	case "workbook":
		contentType = contentTypeXLSX
		filename = export.WorkbookFilename(study, now)
		err = export.WriteWorkbook(study, &buf)
	case "report":
		contentType = contentTypePDF
		filename = export.ReportFilename(study, now)
		err = export.WriteReport(study, now, &buf)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.logger.Error("failed to render export",
			zap.String("op", "server.handleExport"),
			zap.String("id", id),
			zap.String("kind", kind),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render export: %v", err))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write export",
			zap.String("op", "server.handleExport"),
			zap.String("id", id),
			zap.Error(err),
		)
	}
}

func (h *handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.maxUploadSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	}
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds limit of %d bytes", h.maxUploadSize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse upload: %v", err))
		return
	}

	file, _, err := r.FormFile("workbook")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "missing workbook file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	in, err := importer.FromWorkbook(file)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, in)
}

func (h *handler) respondLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, studies.ErrStudyNotFound) {
		h.respondError(w, http.StatusNotFound, "study not found")
		return
	}
	h.respondError(w, http.StatusInternalServerError, err.Error())
}

func (h *handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response",
			zap.String("op", "server.respondJSON"),
			zap.Error(err),
		)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}
