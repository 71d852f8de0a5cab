package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/repository"
)

// ContactService handles contact business logic. Every operation takes the
// authenticated owner explicitly and never reaches rows of other owners.
type ContactService struct {
	contacts ContactRepo
}

// NewContactService creates a new ContactService.
func NewContactService(contacts ContactRepo) *ContactService {
	return &ContactService{contacts: contacts}
}

// List returns one page of the owner's contacts ordered by nombre, 15 per
// page. Pages beyond the last return an empty list with consistent metadata.
func (s *ContactService) List(ctx context.Context, ownerID int64, page int) (*model.ContactPage, error) {
	page = normalizePage(page)

	total, err := s.contacts.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	items, err := s.contacts.ListByOwner(ctx, ownerID, model.DefaultPageSize, (page-1)*model.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	return &model.ContactPage{
		Contacts:   items,
		Pagination: model.NewPagination(page, model.DefaultPageSize, total, len(items)),
	}, nil
}

// Create validates and stores a new contact for the owner. Field problems,
// including a phone or email the owner already uses on another contact, come
// back as a ValidationError naming the offending fields.
func (s *ContactService) Create(ctx context.Context, ownerID int64, req model.ContactRequest) (*model.Contact, error) {
	ve := validateStruct(req)
	ve, err := s.checkDuplicates(ctx, ownerID, req, 0, ve)
	if err != nil {
		return nil, err
	}
	if ve != nil {
		return nil, ve
	}

	contact := &model.Contact{
		UserID:    ownerID,
		Nombre:    req.Nombre,
		Apellido:  req.Apellido,
		Telefono:  req.Telefono,
		Email:     req.Email,
		Direccion: direccionValue(req.Direccion),
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		if ve := duplicateToValidation(err); ve != nil {
			return nil, ve
		}
		return nil, err
	}
	return contact, nil
}

// Get retrieves one contact. A contact that does not exist and a contact
// owned by someone else are both ErrContactNotFound.
func (s *ContactService) Get(ctx context.Context, ownerID, contactID int64) (*model.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, ownerID, contactID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

// Update validates and rewrites an existing contact. The per-owner
// uniqueness checks exclude the contact itself, so resubmitting its own
// phone or email unchanged is fine.
func (s *ContactService) Update(ctx context.Context, ownerID, contactID int64, req model.ContactRequest) (*model.Contact, error) {
	contact, err := s.Get(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	ve := validateStruct(req)
	ve, err = s.checkDuplicates(ctx, ownerID, req, contactID, ve)
	if err != nil {
		return nil, err
	}
	if ve != nil {
		return nil, ve
	}

	contact.Nombre = req.Nombre
	contact.Apellido = req.Apellido
	contact.Telefono = req.Telefono
	contact.Email = req.Email
	contact.Direccion = direccionValue(req.Direccion)

	if err := s.contacts.Update(ctx, contact); err != nil {
		if ve := duplicateToValidation(err); ve != nil {
			return nil, ve
		}
		return nil, err
	}
	return contact, nil
}

// Delete removes a contact permanently, under the same not-found rule as Get.
func (s *ContactService) Delete(ctx context.Context, ownerID, contactID int64) error {
	err := s.contacts.Delete(ctx, ownerID, contactID)
	if errors.Is(err, repository.ErrContactNotFound) {
		return ErrContactNotFound
	}
	return err
}

// Search returns one page of the owner's contacts whose nombre, apellido,
// email or telefono contains q, ordered and paginated like List. An empty
// query fails before any store access.
func (s *ContactService) Search(ctx context.Context, ownerID int64, q string, page int) (*model.ContactPage, error) {
	if strings.TrimSpace(q) == "" {
		return nil, ErrSearchTermRequired
	}
	page = normalizePage(page)

	total, err := s.contacts.CountSearchByOwner(ctx, ownerID, q)
	if err != nil {
		return nil, err
	}

	items, err := s.contacts.SearchByOwner(ctx, ownerID, q, model.DefaultPageSize, (page-1)*model.DefaultPageSize)
	if err != nil {
		return nil, err
	}

	return &model.ContactPage{
		Contacts:   items,
		Pagination: model.NewPagination(page, model.DefaultPageSize, total, len(items)),
	}, nil
}

// checkDuplicates appends per-owner uniqueness failures for telefono and
// email to ve. excludeID skips the record being updated (0 for create).
func (s *ContactService) checkDuplicates(ctx context.Context, ownerID int64, req model.ContactRequest, excludeID int64, ve *ValidationError) (*ValidationError, error) {
	dup := newValidationError()

	if req.Telefono != "" {
		exists, err := s.contacts.PhoneExists(ctx, ownerID, req.Telefono, excludeID)
		if err != nil {
			return nil, err
		}
		if exists {
			dup.add("telefono", msgDuplicatePhone)
		}
	}

	if req.Email != "" {
		exists, err := s.contacts.EmailExists(ctx, ownerID, req.Email, excludeID)
		if err != nil {
			return nil, err
		}
		if exists {
			dup.add("email", msgDuplicateContactEmail)
		}
	}

	if len(dup.Fields) == 0 {
		return ve, nil
	}
	return ve.merge(dup), nil
}

// duplicateToValidation translates the unique-key backstop errors into the
// same field-level ValidationError the pre-check produces, so a write race
// surfaces as a 422 rather than a 500.
func duplicateToValidation(err error) *ValidationError {
	switch {
	case errors.Is(err, repository.ErrDuplicateContactPhone):
		ve := newValidationError()
		ve.add("telefono", msgDuplicatePhone)
		return ve
	case errors.Is(err, repository.ErrDuplicateContactEmail):
		ve := newValidationError()
		ve.add("email", msgDuplicateContactEmail)
		return ve
	}
	return nil
}

func direccionValue(direccion string) sql.NullString {
	if direccion == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: direccion, Valid: true}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
