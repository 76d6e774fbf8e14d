package api

import "net/http"

func (s *Server) handleProficiency(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	profs, err := s.ProficiencyService.TopicProficiencies(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"topics": profs})
}

func (s *Server) handleWeaknesses(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	profile, err := s.ProficiencyService.WeaknessProfile(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	score, err := s.ProficiencyService.Readiness(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, score)
}

// handleMasteryEstimate accepts sessions_per_day, defaulting to one.
func (s *Server) handleMasteryEstimate(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	itemID, err := int64Param(r, "itemID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	perDay, err := intQuery(r, "sessions_per_day", 1)
	if err != nil {
		handleError(w, r, err)
		return
	}

	est, err := s.ProficiencyService.TimeToMastery(r.Context(), userID, itemID, perDay)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, est)
}

func (s *Server) handleGamification(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	profile, err := s.GamificationService.State(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleRecordActivity(w http.ResponseWriter, r *http.Request) {
	userID, err := int64Param(r, "userID")
	if err != nil {
		handleError(w, r, err)
		return
	}
	reward, err := s.GamificationService.RecordDailyActivity(r.Context(), userID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, reward)
}
