package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/classtrack/institute-backend-go/internal/domain/attendance"
	"github.com/classtrack/institute-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	MarkBatch(w http.ResponseWriter, r *http.Request)
	GetMy(w http.ResponseWriter, r *http.Request)
	GetMyStats(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	GetUserStats(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	GetStudents(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	aggregate, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		slog.Error("check-in failed", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked in", attendance.NewUserAttendanceResponse(aggregate))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	aggregate, err := h.attendanceService.CheckOut(r.Context())
	if err != nil {
		slog.Error("check-out failed", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", attendance.NewUserAttendanceResponse(aggregate))
}

// Mark implements AttendanceHandler.
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	aggregate, err := h.attendanceService.MarkUserAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", attendance.NewUserAttendanceResponse(aggregate))
}

// MarkBatch implements AttendanceHandler.
func (h *attendanceHandlerImpl) MarkBatch(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkBatchAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BatchID = chi.URLParam(r, "batchID")

	result, err := h.attendanceService.MarkBatchAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch attendance marked", result)
}

func claimsIdentity(r *http.Request) (userID string, batchID string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", err
	}
	userID, _ = claims["user_id"].(string)
	batchID, _ = claims["batch_id"].(string)
	return userID, batchID, nil
}

// GetMy implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMy(w http.ResponseWriter, r *http.Request) {
	userID, batchID, err := claimsIdentity(r)
	if err != nil || userID == "" {
		response.Unauthorized(w, "user identity missing from token")
		return
	}

	aggregate, err := h.attendanceService.GetUserAttendance(r.Context(), userID, batchID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			// No profile yet is a normal outcome: an empty record set.
			response.Success(w, attendance.UserAttendanceResponse{
				UserID:  userID,
				BatchID: batchID,
				Records: []attendance.RecordResponse{},
			})
			return
		}
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewUserAttendanceResponse(aggregate))
}

// GetMyStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyStats(w http.ResponseWriter, r *http.Request) {
	userID, batchID, err := claimsIdentity(r)
	if err != nil || userID == "" {
		response.Unauthorized(w, "user identity missing from token")
		return
	}

	summary, err := h.attendanceService.GetUserStats(r.Context(), userID, batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetUser implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	batchID := r.URL.Query().Get("batch_id")

	aggregate, err := h.attendanceService.GetUserAttendance(r.Context(), userID, batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewUserAttendanceResponse(aggregate))
}

// GetUserStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	batchID := r.URL.Query().Get("batch_id")

	summary, err := h.attendanceService.GetUserStats(r.Context(), userID, batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetBatch implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	aggregates, err := h.attendanceService.GetBatchAttendance(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.UserAttendanceResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, attendance.NewUserAttendanceResponse(aggregate))
	}

	response.Success(w, responses)
}

// GetStudents implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetStudents(w http.ResponseWriter, r *http.Request) {
	idsParam := r.URL.Query().Get("ids")
	if idsParam == "" {
		response.BadRequest(w, "Query parameter 'ids' is required", nil)
		return
	}

	userIDs := strings.Split(idsParam, ",")

	aggregates, err := h.attendanceService.GetStudentsAttendance(r.Context(), userIDs)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]attendance.UserAttendanceResponse, 0, len(aggregates))
	for _, aggregate := range aggregates {
		responses = append(responses, attendance.NewUserAttendanceResponse(aggregate))
	}

	response.Success(w, responses)
}
