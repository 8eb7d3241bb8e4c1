package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarthiksaathi/aarthik-be/internal/models"
	"github.com/aarthiksaathi/aarthik-be/internal/models/dto"
)

func registerBody(username string) map[string]string {
	return map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"phone":    "9876543210",
		"password": "correct-horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register", "", registerBody("asha"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.User
	decodeData(t, rec, &created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "asha", created.Username)
	assert.NotContains(t, rec.Body.String(), "correct-horse")

	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{"identifier": "asha@example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login dto.LoginResponse
	decodeData(t, rec, &login)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, created.ID, login.User.ID)

	assert.False(t, login.HasProfile)

	claims, err := env.tokens.Parse(login.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)

	env.saveProfile(t, created.ID, models.ProfileForm{Name: "Asha"})
	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{"identifier": "ASHA@Example.com", "password": "correct-horse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login = dto.LoginResponse{}
	decodeData(t, rec, &login)
	assert.True(t, login.HasProfile)
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/register", "", registerBody("ravi")).Code)

	rec := env.do(t, http.MethodPost, "/register", "", registerBody("ravi"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"malformed json", `{"username":`, ""},
		{"trailing data", `{"username":"a"} {}`, ""},
		{"missing username", map[string]string{"email": "a@example.com", "phone": "1", "password": "long-enough"}, "username"},
		{"username with space", map[string]string{"username": "a b", "email": "a@example.com", "phone": "1", "password": "long-enough"}, "username"},
		{"bad email", map[string]string{"username": "a", "email": "not-an-email", "phone": "1", "password": "long-enough"}, "email"},
		{"missing phone", map[string]string{"username": "a", "email": "a@example.com", "password": "long-enough"}, "phone"},
		{"short password", map[string]string{"username": "a", "email": "a@example.com", "phone": "1", "password": "short"}, "password"},
		{"password too long", map[string]string{"username": "a", "email": "a@example.com", "phone": "1", "password": strings.Repeat("x", 73)}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/register", "", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			resp := decodeData(t, rec, nil)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestRegisterAcceptsLegacyPhoneField(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]string{
		"username":    "meera",
		"email":       "meera@example.com",
		"phoneNumber": "9123456780",
		"password":    "correct-horse",
	}
	rec := env.do(t, http.MethodPost, "/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.User
	decodeData(t, rec, &created)
	assert.Equal(t, "9123456780", created.Phone)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/register", "", registerBody("kiran")).Code)

	rec := env.do(t, http.MethodPost, "/login", "", map[string]string{"identifier": "kiran", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{"identifier": "nobody", "password": "correct-horse"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/login", "", map[string]string{"identifier": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
