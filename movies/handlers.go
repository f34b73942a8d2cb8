package movies

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/filmoteca-go/apperror"
	"github.com/user/filmoteca-go/auth"
)

// Operation names used to configure per-route protection. These are the values
// accepted in MOVIES_PROTECTED_OPS.
const (
	OpList           = "list"
	OpGet            = "get"
	OpListByCategory = "get_by_category"
	OpCreate         = "create"
	OpUpdate         = "update"
	OpDelete         = "delete"
)

// Handler exposes the catalog over HTTP. It is a pure composition layer: each
// route maps to one Service operation and translates its result into the
// status code and fixed body the wire contract prescribes.
type Handler struct {
	service *Service
}

// NewHandler creates a new Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the movie routes. guard is the authorization gate;
// protected says which operations it covers. Protection is route composition
// here, never a decision inside a handler.
func (h *Handler) RegisterRoutes(r chi.Router, guard func(next http.Handler) http.Handler, protected map[string]bool) {
	gate := func(op string, hf http.HandlerFunc) http.HandlerFunc {
		if protected[op] {
			return guard(hf).ServeHTTP
		}
		return hf
	}

	r.Get("/movies", gate(OpList, h.handleList()))
	// The trailing-slash route is distinct on purpose: /movies/ carries the
	// category query while /movies is the full listing.
	r.Get("/movies/", gate(OpListByCategory, h.handleListByCategory()))
	r.Get("/movies/{id}", gate(OpGet, h.handleGetByID()))
	r.Post("/movies", gate(OpCreate, h.handleCreate()))
	r.Put("/movies/{id}", gate(OpUpdate, h.handleUpdate()))
	r.Delete("/movies/{id}", gate(OpDelete, h.handleDelete()))
}

// handleList godoc
// @Summary List all movies
// @Description Returns every movie in insertion order.
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} movies.Movie
// @Failure 401 {object} apperror.ErrorResponse "Missing or malformed bearer header"
// @Failure 403 {object} apperror.ErrorResponse "Invalid token or wrong identity"
// @Router /movies [get]
func (h *Handler) handleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := h.service.List(r.Context())
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, records)
	}
}

// handleGetByID godoc
// @Summary Get a movie by id
// @Tags movies
// @Produce json
// @Param id path int true "Movie id" minimum(1) maximum(2000)
// @Success 200 {object} movies.Movie
// @Failure 404 {object} movies.LookupMissResponse
// @Failure 422 {object} apperror.ErrorResponse "Id outside [1, 2000]"
// @Router /movies/{id} [get]
func (h *Handler) handleGetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		record, err := h.service.GetByID(r.Context(), id)
		if err != nil {
			writeLookupError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, record)
	}
}

// handleListByCategory godoc
// @Summary List movies by category
// @Description Returns the movies whose category matches exactly. A category with no matches is a 404, not an empty list.
// @Tags movies
// @Produce json
// @Param category query string true "Category" minLength(5) maxLength(15)
// @Success 200 {array} movies.Movie
// @Failure 404 {object} movies.LookupMissResponse
// @Failure 422 {object} apperror.ErrorResponse "Category length outside [5, 15]"
// @Router /movies/ [get]
func (h *Handler) handleListByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := r.URL.Query().Get("category")
		records, err := h.service.ListByCategory(r.Context(), category)
		if err != nil {
			writeLookupError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, records)
	}
}

// handleCreate godoc
// @Summary Create a movie
// @Description Persists a new movie with a store-assigned id and returns a fixed confirmation message.
// @Tags movies
// @Accept json
// @Produce json
// @Param movieBody body movies.MovieRequest true "Movie fields"
// @Success 201 {object} movies.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Malformed request body"
// @Failure 422 {object} apperror.ErrorResponse "Field constraint violation"
// @Router /movies [post]
func (h *Handler) handleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeMovieRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if _, err := h.service.Create(r.Context(), *req); err != nil {
			auth.WriteError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusCreated, MessageResponse{Response: msgMovieCreated})
	}
}

// handleUpdate godoc
// @Summary Update a movie
// @Description Overwrites every field except the id. No partial updates.
// @Tags movies
// @Accept json
// @Produce json
// @Param id path int true "Movie id"
// @Param movieBody body movies.MovieRequest true "Movie fields"
// @Success 200 {object} movies.MessageResponse
// @Failure 404 {object} movies.MessageResponse
// @Failure 422 {object} apperror.ErrorResponse "Field constraint violation"
// @Router /movies/{id} [put]
func (h *Handler) handleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		req, err := decodeMovieRequest(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if err := h.service.Update(r.Context(), id, *req); err != nil {
			writeMutationError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, MessageResponse{Response: msgMovieUpdated})
	}
}

// handleDelete godoc
// @Summary Delete a movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie id"
// @Success 200 {object} movies.MessageResponse
// @Failure 404 {object} movies.MessageResponse
// @Failure 422 {object} apperror.ErrorResponse "Non-integer id"
// @Router /movies/{id} [delete]
func (h *Handler) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r)
		if err != nil {
			auth.WriteError(w, r, err)
			return
		}
		if err := h.service.Delete(r.Context(), id); err != nil {
			writeMutationError(w, r, err)
			return
		}
		auth.WriteJSON(w, http.StatusOK, MessageResponse{Response: msgMovieDeleted})
	}
}

// idParam parses the {id} path parameter. A non-numeric id is a validation
// failure, not a routing miss; the range check itself lives in the Service.
func idParam(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError("id must be an integer", err)
	}
	return id, nil
}

func decodeMovieRequest(r *http.Request) (*MovieRequest, error) {
	var req MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, apperror.NewBadRequestError("invalid request body: "+err.Error(), nil)
	}
	defer r.Body.Close()
	return &req, nil
}

// writeLookupError shapes read-path errors: a lookup miss becomes the
// {"nessage": ...} body, everything else goes through the standard error
// writer.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.IsNotFound(err) {
		auth.WriteJSON(w, http.StatusNotFound, LookupMissResponse{Nessage: msgMovieNotFound})
		return
	}
	auth.WriteError(w, r, err)
}

// writeMutationError shapes update/delete errors: a miss becomes the fixed
// {"Response": ...} body.
func writeMutationError(w http.ResponseWriter, r *http.Request, err error) {
	if apperror.IsNotFound(err) {
		auth.WriteJSON(w, http.StatusNotFound, MessageResponse{Response: msgNoMovieWithID})
		return
	}
	auth.WriteError(w, r, err)
}
