package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/agendago/agenda-go/internal/middleware"
	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/repository"
	"github.com/agendago/agenda-go/internal/service"
)

// newTestAPI wires the handlers onto a router the same way cmd/api does,
// with in-memory stores underneath, and serves it from httptest.
func newTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	authSvc := service.NewAuthService(
		newMemUserRepo(), newMemTokenRepo(),
		"test-secret-at-least-32-chars-long!", time.Hour,
	)
	contactSvc := service.NewContactService(newMemContactRepo())

	authHandler := NewAuthHandler(authSvc)
	contactHandler := NewContactHandler(contactSvc)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(authSvc))

			r.Post("/auth/logout", authHandler.HandleLogout)
			r.Get("/auth/me", authHandler.HandleMe)

			r.Get("/contacts", contactHandler.HandleList)
			r.Post("/contacts", contactHandler.HandleCreate)
			r.Get("/contacts/search", contactHandler.HandleSearch)
			r.Get("/contacts/{id}", contactHandler.HandleGet)
			r.Put("/contacts/{id}", contactHandler.HandleUpdate)
			r.Delete("/contacts/{id}", contactHandler.HandleDelete)
		})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

// apiResponse decodes the common envelope.
type apiResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, token, body string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

// register creates an account and returns its bearer token.
func register(t *testing.T, srv *httptest.Server, email string) string {
	t.Helper()

	body := `{"first_name":"Juan","last_name":"Pérez","email":"` + email +
		`","password":"secreto123","password_confirmation":"secreto123"}`
	status, resp := doRequest(t, srv, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

// In-memory repositories, same contracts as the MySQL ones.

type memUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *memUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type memTokenRepo struct {
	tokens map[string]*model.AuthToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*model.AuthToken)}
}

func (m *memTokenRepo) Create(_ context.Context, token *model.AuthToken) error {
	m.tokens[token.ID] = token
	return nil
}

func (m *memTokenRepo) Get(_ context.Context, id string) (*model.AuthToken, error) {
	tk, ok := m.tokens[id]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	return tk, nil
}

func (m *memTokenRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.tokens[id]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(m.tokens, id)
	return nil
}

func (m *memTokenRepo) TouchLastUsed(_ context.Context, id string) error {
	return nil
}

type memContactRepo struct {
	contacts map[int64]*model.Contact
	nextID   int64
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: make(map[int64]*model.Contact), nextID: 1}
}

func (m *memContactRepo) Create(_ context.Context, contact *model.Contact) error {
	contact.ID = m.nextID
	m.nextID++
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	stored := *contact
	m.contacts[contact.ID] = &stored
	return nil
}

func (m *memContactRepo) GetByID(_ context.Context, ownerID, id int64) (*model.Contact, error) {
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, repository.ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func (m *memContactRepo) Update(_ context.Context, contact *model.Contact) error {
	contact.UpdatedAt = time.Now()
	stored := *contact
	m.contacts[contact.ID] = &stored
	return nil
}

func (m *memContactRepo) Delete(_ context.Context, ownerID, id int64) error {
	c, ok := m.contacts[id]
	if !ok || c.UserID != ownerID {
		return repository.ErrContactNotFound
	}
	delete(m.contacts, id)
	return nil
}

func (m *memContactRepo) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]model.Contact, error) {
	return slicePage(m.owned(ownerID, ""), limit, offset), nil
}

func (m *memContactRepo) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	return len(m.owned(ownerID, "")), nil
}

func (m *memContactRepo) SearchByOwner(_ context.Context, ownerID int64, q string, limit, offset int) ([]model.Contact, error) {
	return slicePage(m.owned(ownerID, q), limit, offset), nil
}

func (m *memContactRepo) CountSearchByOwner(_ context.Context, ownerID int64, q string) (int, error) {
	return len(m.owned(ownerID, q)), nil
}

func (m *memContactRepo) PhoneExists(_ context.Context, ownerID int64, telefono string, excludeID int64) (bool, error) {
	for _, c := range m.contacts {
		if c.UserID == ownerID && c.Telefono == telefono && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memContactRepo) EmailExists(_ context.Context, ownerID int64, email string, excludeID int64) (bool, error) {
	for _, c := range m.contacts {
		if c.UserID == ownerID && c.Email == email && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memContactRepo) owned(ownerID int64, q string) []model.Contact {
	q = strings.ToLower(q)
	var out []model.Contact
	for _, c := range m.contacts {
		if c.UserID != ownerID {
			continue
		}
		if q != "" && !contactMatches(c, q) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Nombre != out[j].Nombre {
			return out[i].Nombre < out[j].Nombre
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func contactMatches(c *model.Contact, q string) bool {
	for _, field := range []string{c.Nombre, c.Apellido, c.Email, c.Telefono} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func slicePage(items []model.Contact, limit, offset int) []model.Contact {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
