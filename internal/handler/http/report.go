package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lgu-hris/hris-backend-go/internal/handler/http/response"
	"github.com/lgu-hris/hris-backend-go/internal/service/report"
)

type ReportHandler interface {
	MonthlyDTR(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MonthlyDTR implements ReportHandler. The format query parameter selects
// xlsx (default) or csv.
func (h *reportHandlerImpl) MonthlyDTR(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "id")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' is required", nil)
		return
	}
	monthNum, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		response.BadRequest(w, "Query parameter 'month' must be 1-12", nil)
		return
	}
	month := time.Month(monthNum)

	filename := fmt.Sprintf("dtr-%s-%04d-%02d", employeeID, year, monthNum)

	switch r.URL.Query().Get("format") {
	case "csv":
		data, err := h.reportService.MonthlyDTRCSV(r.Context(), employeeID, year, month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		_, _ = w.Write(data)

	default:
		data, err := h.reportService.MonthlyDTRXLSX(r.Context(), employeeID, year, month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		_, _ = w.Write(data)
	}
}
