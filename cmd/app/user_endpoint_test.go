package main

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_MissingRoleRedirectsUnchanged(t *testing.T) {
	app := newTestApp(t)

	rec := postForm(app, "/users/create", url.Values{
		"name":    {"Carol"},
		"email":   {"carol@example.com"},
		"role_id": {"99"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users", rec.Header().Get("Location"))
	assert.Empty(t, app.users.users, "no user created for a missing role")
}

func TestCreateUser_Success(t *testing.T) {
	app := newTestApp(t)

	rec := postForm(app, "/users/create", url.Values{
		"name":    {"Carol"},
		"email":   {"carol@example.com"},
		"role_id": {"2"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, app.users.users, 1)
	assert.Equal(t, int64(2), app.users.users[1].Roles[0].ID)

	rec = get(app, "/users")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "carol@example.com")
}
