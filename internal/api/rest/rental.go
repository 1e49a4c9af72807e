package rest

import (
	"net/http"
	"time"

	"louercar-backend/internal/domain"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse(dateLayout, value)
}

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CarID     int32  `json:"car_id"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Notes     string `json:"notes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date"})
		return
	}

	request, err := s.rentals.SubmitRequest(r.Context(), userFrom(r.Context()).ID, req.CarID, start, end, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}

	request, err := s.rentals.GetRequest(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	user := userFrom(r.Context())
	if !user.IsStaff && !user.IsSuperuser {
		profile, err := s.users.GetProfile(r.Context(), user.ID)
		if err != nil || profile.ID != request.ProfileID {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "not your request"})
			return
		}
	}
	writeJSON(w, http.StatusOK, request)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.rentals.ListMyRequests(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	status := domain.RequestStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.RequestStatusPending
	}
	requests, err := s.rentals.ListRequests(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

func (s *Server) handleApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}

	rental, payment, err := s.rentals.ApproveRequest(r.Context(), userFrom(r.Context()).ID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rental": rental, "payment": payment})
}

func (s *Server) handleRejectRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}
	if err := s.rentals.RejectRequest(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": domain.RequestStatusRejected})
}

func (s *Server) handleCancelRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request id"})
		return
	}
	if err := s.rentals.CancelRequest(r.Context(), userFrom(r.Context()).ID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": domain.RequestStatusCancelled})
}

func (s *Server) handleCreateRental(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProfileID  int32  `json:"profile_id"`
		CarID      int32  `json:"car_id"`
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		PriceCents int32  `json:"price_cents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date"})
		return
	}

	rental, err := s.rentals.CreateRental(r.Context(), userFrom(r.Context()).ID, req.ProfileID, req.CarID, start, end, req.PriceCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rental)
}

func (s *Server) handleListRentals(w http.ResponseWriter, r *http.Request) {
	status := domain.RentalStatus(r.URL.Query().Get("status"))
	rentals, err := s.rentals.ListRentals(r.Context(), status, r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rentals": rentals})
}

func (s *Server) handleMyRentals(w http.ResponseWriter, r *http.Request) {
	rentals, err := s.rentals.ListMyRentals(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rentals": rentals})
}

func (s *Server) handleGetRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	rental, err := s.rentals.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleUpdateRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}

	var req struct {
		StartDate  string `json:"start_date"`
		EndDate    string `json:"end_date"`
		PriceCents int32  `json:"price_cents"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start_date"})
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end_date"})
		return
	}

	rental, err := s.rentals.UpdateRental(r.Context(), id, start, end, req.PriceCents)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rental)
}

func (s *Server) handleFinishRental(w http.ResponseWriter, r *http.Request) {
	s.transitionRental(w, r, domain.RentalStatusFinished)
}

func (s *Server) handleCancelRental(w http.ResponseWriter, r *http.Request) {
	s.transitionRental(w, r, domain.RentalStatusCancelled)
}

func (s *Server) transitionRental(w http.ResponseWriter, r *http.Request, to domain.RentalStatus) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}

	if to == domain.RentalStatusFinished {
		err = s.rentals.FinishRental(r.Context(), id)
	} else {
		err = s.rentals.CancelRental(r.Context(), id)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"id": id, "status": to})
}

func (s *Server) handleDeleteRental(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rental id"})
		return
	}
	if err := s.rentals.DeleteRental(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, requestCounts, err := s.rentals.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rentals":  stats,
		"requests": requestCounts,
	})
}
