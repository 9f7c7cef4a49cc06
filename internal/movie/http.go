// Copyright (c) 2026 Cinelog. All rights reserved.

package movie

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinelog/cinelog/internal/platform/middleware"
	requestutil "github.com/cinelog/cinelog/internal/platform/request"
	"github.com/cinelog/cinelog/internal/platform/respond"
	"github.com/cinelog/cinelog/internal/platform/validate"
)

// Handler implements the movie catalogue HTTP endpoints.
type Handler struct {
	movieService *Service
}

// NewHandler constructs a new [Handler] with its dependencies.
func NewHandler(service *Service) *Handler {
	return &Handler{movieService: service}
}

// Routes returns a [chi.Router] configured with catalogue routes. Every
// endpoint requires an authenticated member.
//
// # Endpoints
//   - POST /                    : Adds a movie owned by the caller.
//   - PUT /{id}                 : Updates a movie (owner only).
//   - GET /                     : Lists the full catalogue.
//   - GET /{id}                 : Returns one movie with ratings detail.
//   - POST /rating/{movieId}    : Rates a movie (first time).
//   - PUT /rating/{movieId}     : Changes an existing rating.
//   - POST /report/{movieId}    : Files an abuse report.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.createMovie)
	router.Get("/", handler.listMovies)
	router.Get("/{id}", handler.getMovie)
	router.Put("/{id}", handler.updateMovie)

	router.Post("/rating/{movieId}", handler.createRating)
	router.Put("/rating/{movieId}", handler.updateRating)

	router.Post("/report/{movieId}", handler.reportMovie)

	return router
}

// # Request Payloads

type movieRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ReleasedAt  string `json:"released_at"`
	Duration    int    `json:"duration"`
	Genre       string `json:"genre"`
	Language    string `json:"language"`
}

// validate runs the shared field rules for create and update.
func (payload *movieRequest) validate() error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, payload.Title).
		MaxLen(FieldTitle, payload.Title, 255).
		Required(FieldDescription, payload.Description).
		Required(FieldReleasedAt, payload.ReleasedAt).
		ISODate(FieldReleasedAt, payload.ReleasedAt).
		Positive(FieldDuration, payload.Duration).
		Required(FieldGenre, payload.Genre).
		Required(FieldLanguage, payload.Language)
	return validator.Err()
}

func (payload *movieRequest) toInput() MovieInput {
	return MovieInput{
		Title:       payload.Title,
		Description: payload.Description,
		ReleasedAt:  payload.ReleasedAt,
		Duration:    payload.Duration,
		Genre:       payload.Genre,
		Language:    payload.Language,
	}
}

type ratingRequest struct {
	Value int `json:"value"`
}

type reportRequest struct {
	Reason string `json:"reason"`
}

/*
createMovie adds a new catalogue entry.

POST /api/v1/movies

Response:
  - 201: The created movie
  - 400: Validation failure
*/
func (handler *Handler) createMovie(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload movieRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := payload.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	m, err := handler.movieService.CreateMovie(request.Context(), userID, payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, m)
}

/*
updateMovie replaces the mutable fields of a movie the caller owns.

PUT /api/v1/movies/{id}

Response:
  - 200: The updated movie
  - 403: Caller is not the owner
  - 404: Movie not found
*/
func (handler *Handler) updateMovie(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	movieID := requestutil.ID(request, "id")

	var payload movieRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if err := payload.validate(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	m, err := handler.movieService.UpdateMovie(request.Context(), userID, movieID, payload.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, m)
}

/*
listMovies returns the entire catalogue as listing summaries.

GET /api/v1/movies

Response:
  - 200: Array of summaries (id, title, slug, genre, aggregates)
*/
func (handler *Handler) listMovies(writer http.ResponseWriter, request *http.Request) {
	summaries, err := handler.movieService.GetAllMovies(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summaries)
}

/*
getMovie returns one movie with owner and ratings detail.

GET /api/v1/movies/{id}

Response:
  - 200: Detail (movie + owner username + rating values)
  - 404: Movie not found
*/
func (handler *Handler) getMovie(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.movieService.GetMovieByID(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
createRating records the caller's first rating for a movie.

POST /api/v1/movies/rating/{movieId}

Response:
  - 201: Rating joined with the recomputed movie aggregate
  - 404: Movie not found
  - 409: Caller already rated this movie
*/
func (handler *Handler) createRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload ratingRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Range(FieldValue, payload.Value, RatingValueMin, RatingValueMax).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rated, err := handler.movieService.CreateRating(request.Context(), userID, requestutil.ID(request, "movieId"), payload.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, rated)
}

/*
updateRating changes the caller's existing rating for a movie.

PUT /api/v1/movies/rating/{movieId}

Response:
  - 200: Rating joined with the recomputed movie aggregate
  - 404: Movie or existing rating not found
*/
func (handler *Handler) updateRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload ratingRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Range(FieldValue, payload.Value, RatingValueMin, RatingValueMax).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rated, err := handler.movieService.UpdateRating(request.Context(), userID, requestutil.ID(request, "movieId"), payload.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rated)
}

/*
reportMovie files an abuse report against a movie.

POST /api/v1/movies/report/{movieId}

Response:
  - 201: The created report (status PENDING)
  - 404: Movie not found
*/
func (handler *Handler) reportMovie(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload reportRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.Required(FieldReason, payload.Reason).MaxLen(FieldReason, payload.Reason, 1000).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.movieService.ReportMovie(request.Context(), userID, requestutil.ID(request, "movieId"), payload.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}
