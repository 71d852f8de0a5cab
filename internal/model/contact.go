package model

import (
	"database/sql"
	"time"
)

// DisplayTimeLayout is the human-readable timestamp format used in API
// responses (day/month/year hour:minute).
const DisplayTimeLayout = "02/01/2006 15:04"

// Contact represents an address-book entry in the database. Every contact
// belongs to exactly one user; UserID is immutable after creation.
type Contact struct {
	ID        int64
	UserID    int64
	Nombre    string
	Apellido  string
	Telefono  string
	Email     string
	Direccion sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ContactRequest represents the body of contact create and update requests.
type ContactRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=255"`
	Apellido  string `json:"apellido" validate:"required,max=255"`
	Telefono  string `json:"telefono" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Direccion string `json:"direccion" validate:"omitempty,max=500"`
}

// ContactResponse represents a contact shaped for API output. NombreCompleto
// and the formatted dates are derived at serialization time, never stored.
type ContactResponse struct {
	ID                 int64   `json:"id"`
	Nombre             string  `json:"nombre"`
	Apellido           string  `json:"apellido"`
	NombreCompleto     string  `json:"nombre_completo"`
	Telefono           string  `json:"telefono"`
	Email              string  `json:"email"`
	Direccion          *string `json:"direccion"`
	FechaCreacion      string  `json:"fecha_creacion"`
	FechaActualizacion string  `json:"fecha_actualizacion"`
}

// NewContactResponse shapes a Contact for API output.
func NewContactResponse(c *Contact) ContactResponse {
	resp := ContactResponse{
		ID:                 c.ID,
		Nombre:             c.Nombre,
		Apellido:           c.Apellido,
		NombreCompleto:     c.Nombre + " " + c.Apellido,
		Telefono:           c.Telefono,
		Email:              c.Email,
		FechaCreacion:      c.CreatedAt.Format(DisplayTimeLayout),
		FechaActualizacion: c.UpdatedAt.Format(DisplayTimeLayout),
	}
	if c.Direccion.Valid {
		resp.Direccion = &c.Direccion.String
	}
	return resp
}

// ContactsToResponse converts a slice of contacts for API output.
func ContactsToResponse(contacts []Contact) []ContactResponse {
	result := make([]ContactResponse, len(contacts))
	for i := range contacts {
		result[i] = NewContactResponse(&contacts[i])
	}
	return result
}
