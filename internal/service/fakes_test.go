package service

import (
	"context"
	"sort"
	"strings"

	"github.com/agendago/agenda-go/internal/model"
	"github.com/agendago/agenda-go/internal/repository"
)

// In-memory ports for service tests. They mirror the persistence contracts,
// including owner scoping and the sentinel errors the real repositories use.

type fakeUserRepo struct {
	users  map[int64]*model.User
	nextID int64

	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	tokens  map[string]*model.AuthToken
	touched []string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*model.AuthToken)}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *model.AuthToken) error {
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) Get(_ context.Context, id string) (*model.AuthToken, error) {
	t, ok := f.tokens[id]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	return t, nil
}

func (f *fakeTokenRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tokens[id]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(f.tokens, id)
	return nil
}

func (f *fakeTokenRepo) TouchLastUsed(_ context.Context, id string) error {
	f.touched = append(f.touched, id)
	return nil
}

type fakeContactRepo struct {
	contacts map[int64]*model.Contact
	nextID   int64

	createErr error
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: make(map[int64]*model.Contact), nextID: 1}
}

func (f *fakeContactRepo) Create(_ context.Context, contact *model.Contact) error {
	if f.createErr != nil {
		return f.createErr
	}
	contact.ID = f.nextID
	f.nextID++
	stored := *contact
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, ownerID, id int64) (*model.Contact, error) {
	c, ok := f.contacts[id]
	if !ok || c.UserID != ownerID {
		return nil, repository.ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeContactRepo) Update(_ context.Context, contact *model.Contact) error {
	stored := *contact
	f.contacts[contact.ID] = &stored
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, ownerID, id int64) error {
	c, ok := f.contacts[id]
	if !ok || c.UserID != ownerID {
		return repository.ErrContactNotFound
	}
	delete(f.contacts, id)
	return nil
}

func (f *fakeContactRepo) ListByOwner(_ context.Context, ownerID int64, limit, offset int) ([]model.Contact, error) {
	return paginate(f.owned(ownerID, ""), limit, offset), nil
}

func (f *fakeContactRepo) CountByOwner(_ context.Context, ownerID int64) (int, error) {
	return len(f.owned(ownerID, "")), nil
}

func (f *fakeContactRepo) SearchByOwner(_ context.Context, ownerID int64, q string, limit, offset int) ([]model.Contact, error) {
	return paginate(f.owned(ownerID, q), limit, offset), nil
}

func (f *fakeContactRepo) CountSearchByOwner(_ context.Context, ownerID int64, q string) (int, error) {
	return len(f.owned(ownerID, q)), nil
}

func (f *fakeContactRepo) PhoneExists(_ context.Context, ownerID int64, telefono string, excludeID int64) (bool, error) {
	for _, c := range f.contacts {
		if c.UserID == ownerID && c.Telefono == telefono && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeContactRepo) EmailExists(_ context.Context, ownerID int64, email string, excludeID int64) (bool, error) {
	for _, c := range f.contacts {
		if c.UserID == ownerID && c.Email == email && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// owned returns the owner's contacts matching q (all of them when q is
// empty), sorted the way the real queries order them.
func (f *fakeContactRepo) owned(ownerID int64, q string) []model.Contact {
	q = strings.ToLower(q)
	var out []model.Contact
	for _, c := range f.contacts {
		if c.UserID != ownerID {
			continue
		}
		if q != "" && !matches(c, q) {
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

func matches(c *model.Contact, q string) bool {
	for _, field := range []string{c.Nombre, c.Apellido, c.Email, c.Telefono} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func paginate(items []model.Contact, limit, offset int) []model.Contact {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
