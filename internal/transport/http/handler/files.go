package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jobboard-api/internal/application/file"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/transport/http/middleware"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// FileHandler handles resume and company-logo uploads.
type FileHandler struct {
	svc file.Service
}

func NewFileHandler(svc file.Service) *FileHandler {
	return &FileHandler{svc: svc}
}

func (h *FileHandler) UploadResume(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.FileKindResume)
}

func (h *FileHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.FileKindLogo)
}

func (h *FileHandler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	h.upload(w, r, domain.FileKindPicture)
}

func (h *FileHandler) upload(w http.ResponseWriter, r *http.Request, kind string) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	f, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field required")
		return
	}
	defer f.Close()

	input := file.UploadInput{
		Reader:      f,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
	}

	var rec *domain.File
	switch kind {
	case domain.FileKindResume:
		rec, err = h.svc.UploadResume(r.Context(), claims.UserID, claims.Role, input)
	case domain.FileKindPicture:
		rec, err = h.svc.UploadPicture(r.Context(), claims.UserID, claims.Role, input)
	default:
		rec, err = h.svc.UploadLogo(r.Context(), claims.UserID, claims.Role, input)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *FileHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	url, err := h.svc.DownloadURL(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
