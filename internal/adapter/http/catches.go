package http

import (
	"fmt"
	"net/http"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
)

// maxPhotoBytes bounds a photo upload request.
const maxPhotoBytes = 16 << 20

func (s *Server) handleRecordCatch(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	var sub domain.CatchSubmission
	if err := decodeJSON(w, r, &sub); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.svc.Catches.Record(r.Context(), actor, sub)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/catches/%d", c.ID))
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleListCatches(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	catches, err := s.svc.Catches.List(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, catches)
}

func (s *Server) handleGetCatch(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.svc.Catches.Get(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUpdateCatch(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var upd domain.CatchUpdate
	if err := decodeJSON(w, r, &upd); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.svc.Catches.Update(r.Context(), actor, id, upd)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCatch(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.svc.Catches.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCatchPhoto accepts a multipart form with the image in "photo".
func (s *Server) handleCatchPhoto(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoBytes)
	file, _, err := r.FormFile("photo")
	if err != nil {
		writeError(w, r, s.logger, fmt.Errorf("%w: photo upload: %w", domain.ErrInvalidInput, err))
		return
	}
	defer file.Close()

	c, err := s.svc.Catches.AttachPhoto(r.Context(), actor, id, file)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
