package http

import (
	"encoding/json"
	"net/http"

	"github.com/classtrack/institute-backend-go/internal/domain/batch"
	"github.com/classtrack/institute-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type BatchHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type batchHandlerImpl struct {
	batchService batch.BatchService
}

func NewBatchHandler(batchService batch.BatchService) BatchHandler {
	return &batchHandlerImpl{
		batchService: batchService,
	}
}

// Create implements BatchHandler.
func (h *batchHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req batch.CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.batchService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Batch created", batch.NewBatchResponse(created))
}

// Get implements BatchHandler.
func (h *batchHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	found, err := h.batchService.GetByID(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, batch.NewBatchResponse(found))
}

// List implements BatchHandler.
func (h *batchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	batches, err := h.batchService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	responses := make([]batch.BatchResponse, 0, len(batches))
	for _, b := range batches {
		responses = append(responses, batch.NewBatchResponse(b))
	}

	response.Success(w, responses)
}

// Update implements BatchHandler.
func (h *batchHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req batch.UpdateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "batchID")

	updated, err := h.batchService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch updated", batch.NewBatchResponse(updated))
}

// Delete implements BatchHandler.
func (h *batchHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchID")

	if err := h.batchService.Delete(r.Context(), batchID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch deleted", nil)
}
