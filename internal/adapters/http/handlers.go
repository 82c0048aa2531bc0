package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"courtside/internal/application/scheduler"
	"courtside/internal/domain/player"
	"courtside/internal/domain/session"
)

// messageResponse is the envelope for operations that report a
// human-readable outcome.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// internalError logs the real error and returns a generic message to the
// client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// writeEngineError maps the engine's error taxonomy onto status codes:
// NotFound 404, InvalidState 400, anything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scheduler.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, scheduler.ErrInvalidState):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

// decode reads a JSON request body.
func decode(r *http.Request, v any) error {
	return sonic.ConfigDefault.NewDecoder(r.Body).Decode(v)
}

func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decode(r, v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		http.Error(w, "validation failed: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Players ---

// enrollmentSpec is one (month, weekday, time, coach) enrollment pattern.
type enrollmentSpec struct {
	Month   string        `json:"month" validate:"required"`
	Weekday string        `json:"weekday" validate:"required"`
	Time    string        `json:"time" validate:"required"`
	Coach   session.Coach `json:"coach"`
}

type addPlayerRequest struct {
	Name        string               `json:"name" validate:"required"`
	Level       int                  `json:"level" validate:"gte=0"`
	DefaultDays []player.DefaultSlot `json:"default_days"`
	Enrollments []enrollmentSpec     `json:"enrollments" validate:"dive"`
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req addPlayerRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	p, err := s.engine.AddPlayer(ctx, req.Name, req.Level, req.DefaultDays)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	for _, en := range req.Enrollments {
		if _, err := s.engine.BatchEnroll(ctx, p.ID, en.Month, en.Weekday, en.Time, en.Coach); err != nil {
			writeEngineError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Players(r.Context()))
}

type updatePlayerRequest struct {
	Name          *string               `json:"name"`
	Level         *int                  `json:"level"`
	DefaultDays   *[]player.DefaultSlot `json:"default_days"`
	MakeupCredits *int                  `json:"makeup_credits"`
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req updatePlayerRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	in := scheduler.UpdatePlayerInput{
		Name:          req.Name,
		Level:         req.Level,
		MakeupCredits: req.MakeupCredits,
	}
	if req.DefaultDays != nil {
		in.SlotsSupplied = true
		in.DefaultSlots = *req.DefaultDays
	}
	if err := s.engine.UpdatePlayer(r.Context(), r.PathValue("id"), in); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Player updated"})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeletePlayer(r.Context(), r.PathValue("id")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Player deleted"})
}

type enrollRequest struct {
	Enrollments []enrollmentSpec `json:"enrollments" validate:"required,dive"`
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	s.handleBatchEnrollment(w, r, true)
}

func (s *Server) handleUnenroll(w http.ResponseWriter, r *http.Request) {
	s.handleBatchEnrollment(w, r, false)
}

func (s *Server) handleBatchEnrollment(w http.ResponseWriter, r *http.Request, enroll bool) {
	ctx := r.Context()
	playerID := r.PathValue("id")
	var req enrollRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	total := 0
	for _, en := range req.Enrollments {
		var n int
		var err error
		if enroll {
			n, err = s.engine.BatchEnroll(ctx, playerID, en.Month, en.Weekday, en.Time, en.Coach)
		} else {
			n, err = s.engine.BatchUnenroll(ctx, playerID, en.Month, en.Weekday, en.Time, en.Coach)
		}
		if err != nil {
			writeEngineError(w, err)
			return
		}
		total += n
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": total})
}

// --- Classes ---

type createClassRequest struct {
	Date        string        `json:"date" validate:"required"`
	Time        string        `json:"time" validate:"required"`
	StudentIDs  []string      `json:"student_ids"`
	Coach       session.Coach `json:"coach"`
	MaxStudents int           `json:"max_students"`
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	created, err := s.engine.CreateSession(r.Context(), req.Date, req.Time, req.StudentIDs, req.Coach, req.MaxStudents)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

type createSeriesRequest struct {
	Month       string        `json:"month" validate:"required"`
	Weekday     string        `json:"weekday" validate:"required"`
	Time        string        `json:"time" validate:"required"`
	StudentIDs  []string      `json:"student_ids"`
	Coach       session.Coach `json:"coach"`
	MaxStudents int           `json:"max_students"`
}

func (s *Server) handleCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req createSeriesRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	created, err := s.engine.CreateSeries(r.Context(), req.Month, req.Weekday, req.Time, req.StudentIDs, req.Coach, req.MaxStudents)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	writeJSON(w, http.StatusOK, s.engine.Sessions(r.Context(), month))
}

// updateClassRequest distinguishes an omitted coach from an explicit null:
// the raw field is absent (leave unchanged), JSON null (clear the coach),
// or a name string (set it).
type updateClassRequest struct {
	Date        *string         `json:"date"`
	Time        *string         `json:"time"`
	Coach       json.RawMessage `json:"coach"`
	StudentIDs  *[]string       `json:"student_ids"`
	MaxStudents *int            `json:"max_students"`
}

func (s *Server) handleUpdateClass(w http.ResponseWriter, r *http.Request) {
	var req updateClassRequest
	if err := decode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	in := scheduler.UpdateSessionInput{
		Date:        req.Date,
		Time:        req.Time,
		MaxStudents: req.MaxStudents,
	}
	if req.StudentIDs != nil {
		in.IDsSupplied = true
		in.StudentIDs = *req.StudentIDs
	}
	if len(req.Coach) > 0 {
		var coach session.Coach
		if err := coach.UnmarshalJSON(req.Coach); err != nil {
			http.Error(w, "invalid coach value", http.StatusBadRequest)
			return
		}
		in.Coach = &coach
	}

	if err := s.engine.UpdateSession(r.Context(), r.PathValue("id"), in); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Class updated"})
}

func (s *Server) handleDeleteClass(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Class deleted"})
}

type bulkDeleteRequest struct {
	ClassIDs []string `json:"class_ids" validate:"required"`
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	count := s.engine.DeleteSessions(r.Context(), req.ClassIDs)
	writeJSON(w, http.StatusOK, map[string]int{"deleted_count": count})
}

func (s *Server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	matchTime := r.URL.Query().Get("match_time")
	count, err := s.engine.PropagateProperties(r.Context(), r.PathValue("id"), matchTime)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated_count": count})
}

type copyMonthRequest struct {
	TargetMonth string `json:"target_month" validate:"required"`
}

func (s *Server) handleCopyMonth(w http.ResponseWriter, r *http.Request) {
	var req copyMonthRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	msg, err := s.engine.CopyMonthSchedule(r.Context(), req.TargetMonth)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// --- Attendance, booking, removal ---

type rosterRemoveRequest struct {
	AwardCredit bool `json:"award_credit"`
}

func (s *Server) handleRemoveFromClass(w http.ResponseWriter, r *http.Request) {
	var req rosterRemoveRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	msg, err := s.engine.RemoveStudentFromClass(r.Context(), r.PathValue("id"), r.PathValue("playerID"), req.AwardCredit)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

type markAttendanceRequest struct {
	Status string `json:"status"`
}

func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req markAttendanceRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	msg, err := s.engine.MarkAttendance(r.Context(), r.PathValue("id"), r.PathValue("playerID"), session.Status(strings.TrimSpace(req.Status)))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

type markAbsentRequest struct {
	ClassID  string `json:"class_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

func (s *Server) handleMarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req markAbsentRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	msg, err := s.engine.MarkAbsent(r.Context(), req.ClassID, req.PlayerID)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

func (s *Server) handleMakeupOptions(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	options, err := s.engine.FindMakeupOptions(r.Context(), r.PathValue("playerID"), month)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

type bookMakeupRequest struct {
	ClassID   string `json:"class_id" validate:"required"`
	PlayerID  string `json:"player_id" validate:"required"`
	UseCredit bool   `json:"use_credit"`
}

func (s *Server) handleBookMakeup(w http.ResponseWriter, r *http.Request) {
	var req bookMakeupRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	if err := s.engine.BookMakeup(r.Context(), req.ClassID, req.PlayerID, req.UseCredit); err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Success"})
}

// --- Stats & targets ---

func (s *Server) handleMonthStats(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		http.Error(w, "month query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.engine.MonthStats(r.Context(), month))
}

func (s *Server) handleGetTarget(w http.ResponseWriter, r *http.Request) {
	month := r.PathValue("month")
	writeJSON(w, http.StatusOK, map[string]int{"target": s.engine.Target(r.Context(), month)})
}

type setTargetRequest struct {
	Target int `json:"target" validate:"gte=0"`
}

func (s *Server) handleSetTarget(w http.ResponseWriter, r *http.Request) {
	var req setTargetRequest
	if !s.decodeValid(w, r, &req) {
		return
	}
	s.engine.SetTarget(r.Context(), r.PathValue("month"), req.Target)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Target updated"})
}
