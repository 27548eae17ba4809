package http

import (
	"net/http"

	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/service"
)

// ---- lakes ----

func (s *Server) handleListLakes(w http.ResponseWriter, r *http.Request) {
	lakes, err := s.svc.Lakes.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lakes)
}

func (s *Server) handleGetLake(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	lake, err := s.svc.Lakes.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lake)
}

func (s *Server) handleLakeForecast(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	forecast, err := s.svc.Lakes.Forecast(r.Context(), id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleCreateLake(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	var in service.LakeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	lake, err := s.svc.Lakes.Create(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, lake)
}

func (s *Server) handleUpdateLake(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var in service.LakeInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	lake, err := s.svc.Lakes.Update(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lake)
}

func (s *Server) handleDeleteLake(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.svc.Lakes.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- species ----

func (s *Server) handleListSpecies(w http.ResponseWriter, r *http.Request) {
	species, err := s.svc.Species.List(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, species)
}

func (s *Server) handleGetSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sp, err := s.svc.Species.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleCreateSpecies(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	var in service.SpeciesInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sp, err := s.svc.Species.Create(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleUpdateSpecies(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	var in service.SpeciesInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	sp, err := s.svc.Species.Update(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleDeleteSpecies(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if err := s.svc.Species.Delete(r.Context(), actor, id); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- lures ----

func (s *Server) handleAddLure(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	var in service.LureInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	lure, err := s.svc.Lures.Add(r.Context(), actor, in)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, lure)
}

func (s *Server) handleTackleBox(w http.ResponseWriter, r *http.Request) {
	actor, _ := principalFrom(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	lures, err := s.svc.Lures.TackleBox(r.Context(), actor, id)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, lures)
}
