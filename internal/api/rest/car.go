package rest

import (
	"net/http"

	"louercar-backend/internal/domain"
)

type carRequest struct {
	Model           string `json:"model"`
	Plate           string `json:"plate"`
	Year            int32  `json:"year"`
	DailyPriceCents int32  `json:"daily_price_cents"`
	PhotoURL        string `json:"photo_url"`
	Description     string `json:"description"`
}

func (s *Server) handleListCars(w http.ResponseWriter, r *http.Request) {
	status := domain.CarStatus(r.URL.Query().Get("status"))
	cars, err := s.cars.List(r.Context(), status, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"cars": cars})
}

func (s *Server) handleGetCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}
	car, err := s.cars.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleCreateCar(w http.ResponseWriter, r *http.Request) {
	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	car := &domain.Car{
		Model:           req.Model,
		Plate:           req.Plate,
		Year:            req.Year,
		DailyPriceCents: req.DailyPriceCents,
		PhotoURL:        req.PhotoURL,
		Description:     req.Description,
	}
	if err := s.cars.Create(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, car)
}

func (s *Server) handleUpdateCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}

	var req carRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	car, err := s.cars.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	car.Model = req.Model
	car.Plate = req.Plate
	car.Year = req.Year
	car.DailyPriceCents = req.DailyPriceCents
	car.PhotoURL = req.PhotoURL
	car.Description = req.Description

	if err := s.cars.Update(r.Context(), car); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (s *Server) handleDeleteCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}
	if err := s.cars.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleSetCarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid car id"})
		return
	}

	var req struct {
		Status domain.CarStatus `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if err := s.cars.SetStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": req.Status})
}
