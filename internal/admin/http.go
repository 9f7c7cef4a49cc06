// Copyright (c) 2026 Cinelog. All rights reserved.

package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/movie"
	"github.com/cinelog/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/sec"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// Handler implements the moderation HTTP endpoints.
type Handler struct {
	adminService *Service
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service) *Handler {
	return &Handler{adminService: service}
}

// Routes returns a [chi.Router] configured with moderation routes. The whole
// group requires the ADMIN role.
//
// # Endpoints
//   - GET /                  : Lists the moderation queue.
//   - GET /{id}              : Returns one report with context.
//   - PATCH /status/{id}     : Sets a report's status.
//   - DELETE /{id}           : Deletes the movie the report points at.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listReports)
	router.Get("/{id}", handler.getReport)
	router.Patch("/status/{id}", handler.updateStatus)
	router.Delete("/{id}", handler.deleteReportedMovie)

	return router
}

type statusRequest struct {
	Status string `json:"status"`
}

/*
listReports returns the moderation queue, newest first.

GET /api/v1/admin/reports

Response:
  - 200: Array of reports with movie and reporter context
*/
func (handler *Handler) listReports(writer http.ResponseWriter, request *http.Request) {
	views, err := handler.adminService.ListReports(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, views)
}

/*
getReport returns one report with its movie and reporter context.

GET /api/v1/admin/reports/{id}

Response:
  - 200: The report view
  - 404: Report not found
*/
func (handler *Handler) getReport(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.adminService.GetReport(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
updateStatus sets a report's moderation status.

PATCH /api/v1/admin/reports/status/{id}

Response:
  - 200: The updated report view
  - 400: Unknown status value
  - 404: Report not found
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	var payload statusRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldStatus, payload.Status).
		OneOf(FieldStatus, payload.Status, movie.ReportStatusValues()...)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.adminService.UpdateReportStatus(
		request.Context(),
		requestutil.ID(request, "id"),
		movie.ReportStatus(payload.Status),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
deleteReportedMovie removes the movie a report points at.

DELETE /api/v1/admin/reports/{id}

Response:
  - 204: Movie deleted (ratings and reports cascade)
  - 404: Report not found
*/
func (handler *Handler) deleteReportedMovie(writer http.ResponseWriter, request *http.Request) {
	if err := handler.adminService.DeleteReportedMovie(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
