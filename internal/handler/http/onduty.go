package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/onduty"
	"github.com/lgu-hris/hris-backend-go/internal/handler/http/response"
)

type OnDutyHandler interface {
	Schedule(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type onDutyHandlerImpl struct {
	onDutyService onduty.Service
}

func NewOnDutyHandler(onDutyService onduty.Service) OnDutyHandler {
	return &onDutyHandlerImpl{
		onDutyService: onDutyService,
	}
}

// Schedule implements OnDutyHandler.
func (h *onDutyHandlerImpl) Schedule(w http.ResponseWriter, r *http.Request) {
	var req onduty.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.onDutyService.Schedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "On-duty assignment scheduled", result)
}

// List implements OnDutyHandler.
func (h *onDutyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		response.BadRequest(w, "Query parameters 'from' and 'to' are required", nil)
		return
	}

	result, err := h.onDutyService.ListByRange(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Cancel implements OnDutyHandler.
func (h *onDutyHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.onDutyService.Cancel(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "On-duty assignment cancelled", nil)
}
