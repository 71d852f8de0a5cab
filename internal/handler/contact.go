package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/agendago/agenda-go/internal/middleware"
	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/service"
)

// ContactHandler handles HTTP requests for contact operations. All routes
// sit behind the bearer middleware, so the owner is always in context.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{service: svc}
}

// pageData is the payload shape for list and search responses.
type pageData struct {
	Contacts   []model.ContactResponse `json:"contacts"`
	Pagination model.Pagination        `json:"pagination"`
}

// HandleList handles GET /api/contacts requests.
func (h *ContactHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	page, err := h.service.List(r.Context(), ownerID, pageParam(r))
	if err != nil {
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", pageData{
		Contacts:   model.ContactsToResponse(page.Contacts),
		Pagination: page.Pagination,
	})
}

// HandleCreate handles POST /api/contacts requests.
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleDecodeError(w, err)
		return
	}

	contact, err := h.service.Create(r.Context(), ownerID, req)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			respondValidation(w, ve)
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusCreated, "Contacto creado exitosamente", model.NewContactResponse(contact))
}

// HandleGet handles GET /api/contacts/{id} requests.
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	contactID, ok := contactIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Contacto no encontrado")
		return
	}

	contact, err := h.service.Get(r.Context(), ownerID, contactID)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(w, http.StatusNotFound, "Contacto no encontrado")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", model.NewContactResponse(contact))
}

// HandleUpdate handles PUT /api/contacts/{id} requests.
func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	contactID, ok := contactIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Contacto no encontrado")
		return
	}

	var req model.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleDecodeError(w, err)
		return
	}

	contact, err := h.service.Update(r.Context(), ownerID, contactID, req)
	if err != nil {
		var ve *service.ValidationError
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			respondError(w, http.StatusNotFound, "Contacto no encontrado")
		case errors.As(err, &ve):
			respondValidation(w, ve)
		default:
			respondInternal(w, err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, "Contacto actualizado exitosamente", model.NewContactResponse(contact))
}

// HandleDelete handles DELETE /api/contacts/{id} requests.
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	contactID, ok := contactIDParam(r)
	if !ok {
		respondError(w, http.StatusNotFound, "Contacto no encontrado")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, contactID); err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(w, http.StatusNotFound, "Contacto no encontrado")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "Contacto eliminado exitosamente", nil)
}

// HandleSearch handles GET /api/contacts/search requests.
func (h *ContactHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "No autenticado.")
		return
	}

	page, err := h.service.Search(r.Context(), ownerID, r.URL.Query().Get("q"), pageParam(r))
	if err != nil {
		if errors.Is(err, service.ErrSearchTermRequired) {
			respondError(w, http.StatusBadRequest, "Debe proporcionar un término de búsqueda")
			return
		}
		respondInternal(w, err)
		return
	}

	respondSuccess(w, http.StatusOK, "", pageData{
		Contacts:   model.ContactsToResponse(page.Contacts),
		Pagination: page.Pagination,
	})
}

// pageParam reads the page query parameter; anything non-numeric or below 1
// means the first page.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// contactIDParam parses the {id} route parameter. A non-numeric id cannot
// name an existing contact, so callers treat it as not found.
func contactIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
