package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	byEmail map[string]*User
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return ErrAlreadyExist
	}
	if m.byEmail == nil {
		m.byEmail = map[string]*User{}
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func TestRegisterNormalizesEmail(t *testing.T) {
	svc := NewService(&memRepo{})

	u, err := svc.Register(context.Background(), "  Jane@Example.COM ", "longenough", " Jane ")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, "longenough", u.PasswordHash)
}

func TestRegisterShortPassword(t *testing.T) {
	svc := NewService(&memRepo{})
	_, err := svc.Register(context.Background(), "jane@example.com", "short", "Jane")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterDuplicate(t *testing.T) {
	svc := NewService(&memRepo{})
	_, err := svc.Register(context.Background(), "jane@example.com", "longenough", "Jane")
	require.NoError(t, err)

	// same email, different case
	_, err = svc.Register(context.Background(), "JANE@example.com", "longenough", "Jane")
	assert.ErrorIs(t, err, ErrAlreadyExist)
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(&memRepo{})
	_, err := svc.Register(context.Background(), "jane@example.com", "longenough", "Jane")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "Jane@Example.com", "longenough")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", u.Email)

	// wrong password and unknown email look identical
	_, err = svc.Authenticate(context.Background(), "jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "longenough")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
