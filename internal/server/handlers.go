package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julianstephens/habitual/internal/analyzer"
	"github.com/julianstephens/habitual/internal/constants"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/observability"
	"github.com/julianstephens/habitual/internal/utils"
)

// CreateHabitRequest is the body of POST /v1/habits.
type CreateHabitRequest struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	TargetPerDay *float64 `json:"target_per_day"`
}

// CreateLogRequest is the body of POST /v1/habits/{id}/logs. An empty Date
// means today.
type CreateLogRequest struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// CreateLogResponse echoes the stored entry. Log ids are not returned.
type CreateLogResponse struct {
	HabitID int64   `json:"habit_id"`
	Day     string  `json:"day"`
	Amount  float64 `json:"amount"`
}

// ListHabitsResponse wraps the habit list.
type ListHabitsResponse struct {
	Items []models.Habit `json:"items"`
}

// ListLogsResponse wraps a habit's logs.
type ListLogsResponse struct {
	HabitID int64             `json:"habit_id"`
	Items   []models.LogEntry `json:"items"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RegisterRoutes wires endpoints to the mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/habits", s.listHabits)
	mux.HandleFunc("POST /v1/habits", s.createHabit)
	mux.HandleFunc("GET /v1/habits/{id}", s.getHabit)
	mux.HandleFunc("DELETE /v1/habits/{id}", s.deleteHabit)
	mux.HandleFunc("GET /v1/habits/{id}/logs", s.listLogs)
	mux.HandleFunc("POST /v1/habits/{id}/logs", s.createLog)
	mux.HandleFunc("GET /v1/habits/{id}/insights", s.insights)
	mux.HandleFunc("GET /healthz", healthz)
}

// healthz reports a simple OK status for health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	habits, err := s.store.ListHabits()
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListHabitsResponse{Items: habits})
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req CreateHabitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	kind, err := models.ParseKind(req.Kind)
	if err != nil {
		writeStoreError(w, r, apperrors.Validation("kind", err.Error()))
		return
	}
	target := constants.DefaultTarget
	if req.TargetPerDay != nil {
		target = *req.TargetPerDay
	}

	id, err := s.store.AddHabit(req.Name, kind, target)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	observability.RecordHabitCreated(kind)

	habit, _, err := s.store.GetHabit(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, habit)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	habit, ok := s.lookupHabit(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	_, found, err := s.store.GetHabit(id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if s.beforeDelete != nil {
		if err := s.beforeDelete(); err != nil {
			logger.Error("Backup before delete failed", "habit", id, "request_id", r.Header.Get(requestIDHeader), "error", err)
			writeError(w, http.StatusInternalServerError, "backup_failed", "refusing to delete without a backup")
			return
		}
	}
	if err := s.store.DeleteHabit(id); err != nil {
		writeStoreError(w, r, err)
		return
	}
	observability.RecordHabitDeleted()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listLogs(w http.ResponseWriter, r *http.Request) {
	habit, ok := s.lookupHabit(w, r)
	if !ok {
		return
	}
	logs, err := s.store.GetLogs(habit.ID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ListLogsResponse{HabitID: habit.ID, Items: logs})
}

func (s *Server) createLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req CreateLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	day, err := utils.NormalizeDay(req.Date, s.now)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	if err := s.store.AddLog(id, day, req.Amount); err != nil {
		writeStoreError(w, r, err)
		return
	}

	// The habit exists, AddLog just checked it.
	if habit, found, err := s.store.GetHabit(id); err == nil && found {
		observability.RecordLog(habit.Kind)
	}
	writeJSON(w, http.StatusCreated, CreateLogResponse{HabitID: id, Day: day, Amount: req.Amount})
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	habit, ok := s.lookupHabit(w, r)
	if !ok {
		return
	}

	days := constants.DefaultChartDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 366 {
			writeError(w, http.StatusBadRequest, "validation_failed", "days must be between 1 and 366")
			return
		}
		days = parsed
	}

	logs, err := s.store.GetLogs(habit.ID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	today := s.now()
	insight, err := analyzer.Analyze(habit, logs, today)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	insight.Series = analyzer.Recent(habit.TargetPerDay, logs, today, days)
	writeJSON(w, http.StatusOK, insight)
}

// lookupHabit resolves {id} and writes 404 when the habit does not exist.
func (s *Server) lookupHabit(w http.ResponseWriter, r *http.Request) (models.Habit, bool) {
	id, ok := pathID(w, r)
	if !ok {
		return models.Habit{}, false
	}
	habit, found, err := s.store.GetHabit(id)
	if err != nil {
		writeStoreError(w, r, err)
		return models.Habit{}, false
	}
	if !found {
		writeStoreError(w, r, apperrors.Reference(id))
		return models.Habit{}, false
	}
	return habit, true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid_request", "habit id must be a positive integer")
		return 0, false
	}
	return id, true
}

// writeStoreError maps validation and reference errors to 400 and 404.
// Anything else is a 500.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsValidation(err):
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case apperrors.IsReference(err):
		writeError(w, http.StatusNotFound, "unknown_habit", err.Error())
	default:
		logger.Error("Request failed", "path", r.URL.Path, "request_id", r.Header.Get(requestIDHeader), "error", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
