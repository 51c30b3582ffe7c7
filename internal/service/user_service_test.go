package service

import (
	"Creatr/internal/pkg/security"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestUsers(m *memStore) UserService {
	return NewUserService(m, NewIdentityService(m))
}

func TestIdentity_Resolve(t *testing.T) {
	m := newMemStore()
	u := m.addUser(1, "ada")
	svc := NewIdentityService(m)
	ctx := context.Background()

	got, err := svc.Resolve(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = svc.Resolve(ctx, &security.Identity{Subject: u.ExternalID})
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.ID)

	got, err = svc.Resolve(ctx, &security.Identity{Subject: "unknown", TokenIdentifier: u.TokenIdentifier})
	require.NoError(t, err)
	require.Equal(t, uint64(1), got.ID)

	got, err = svc.Resolve(ctx, &security.Identity{Subject: "unknown"})
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = svc.RequireUser(ctx, nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	_, err = svc.RequireUser(ctx, &security.Identity{Subject: "unknown"})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestStore_CreatesThenPatches(t *testing.T) {
	m := newMemStore()
	svc := newTestUsers(m)
	ctx := context.Background()
	id := &security.Identity{Subject: "sub-1", TokenIdentifier: "iss|sub-1", Email: "a@example.com"}

	created, err := svc.Store(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Anonymous", created.Name)
	require.Equal(t, "a@example.com", created.Email)
	require.Nil(t, created.ImageURL)

	id.Name = "Ada"
	id.PictureURL = "https://img.example.com/a.png"
	updated, err := svc.Store(ctx, id)
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)
	require.Equal(t, "Ada", updated.Name)
	require.Equal(t, "https://img.example.com/a.png", *updated.ImageURL)
	require.Len(t, m.users, 1)

	_, err = svc.Store(ctx, nil)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateUsername_Validation(t *testing.T) {
	m := newMemStore()
	me := m.addUser(1, "")
	m.addUser(2, "taken_name")
	svc := newTestUsers(m)
	ctx := context.Background()

	cases := []struct {
		username string
		err      error
	}{
		{"ab", ErrUsernameLength},
		{"a_very_long_username_indeed", ErrUsernameLength},
		{"bad name", ErrUsernameFormat},
		{"", ErrUsernameFormat},
		{"no!", ErrUsernameFormat},
		{"taken_name", ErrUsernameTaken},
	}
	for _, c := range cases {
		_, err := svc.UpdateUsername(ctx, identityOf(me), c.username)
		require.ErrorIs(t, err, c.err, c.username)
	}
	require.Equal(t, "username is already taken", ErrUsernameTaken.Error())

	out, err := svc.UpdateUsername(ctx, identityOf(me), "valid_name-1")
	require.NoError(t, err)
	require.Equal(t, "valid_name-1", *out.Username)
	require.Equal(t, "valid_name-1", *m.users[1].Username)

	// 与当前用户名相同视为成功
	_, err = svc.UpdateUsername(ctx, identityOf(me), "valid_name-1")
	require.NoError(t, err)
}

func TestUpdateUsername_RequiresUser(t *testing.T) {
	svc := newTestUsers(newMemStore())
	_, err := svc.UpdateUsername(context.Background(), nil, "valid")
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestGetByUsername(t *testing.T) {
	m := newMemStore()
	m.addUser(3, "ada")
	svc := newTestUsers(m)
	ctx := context.Background()

	p, err := svc.GetByUsername(ctx, "")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = svc.GetByUsername(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, p)

	p, err = svc.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	require.Equal(t, uint64(3), p.ID)
	require.Equal(t, "ext-ada", p.ExternalID)

	boom := errors.New("db")
	m.fail["GetUserByUsername"] = boom
	_, err = svc.GetByUsername(ctx, "ada")
	require.ErrorIs(t, err, boom)
}
