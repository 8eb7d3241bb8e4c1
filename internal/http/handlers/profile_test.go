package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarthiksaathi/aarthik-be/internal/events"
	"github.com/aarthiksaathi/aarthik-be/internal/models"
)

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/profile", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPut, "/profile", "not-a-jwt", map[string]string{"name": "x"}).Code)
}

func TestProfileLifecycle(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.signUp(t, "asha")

	rec := env.do(t, http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := map[string]any{
		"name":       "  Asha  ",
		"age":        34,
		"gender":     "Female",
		"state":      "Kerala",
		"income":     180000,
		"occupation": "Farmer",
		"caste":      "   ",
		"category":   "OBC",
	}
	rec = env.do(t, http.MethodPut, "/profile", token, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var saved models.Profile
	decodeData(t, rec, &saved)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, user.ID, saved.UserID)
	assert.Equal(t, "Asha", saved.Name)
	assert.Nil(t, saved.Caste, "blank caste is stored as unknown")
	require.NotNil(t, saved.Income)
	assert.Equal(t, int64(180000), *saved.Income)

	rec = env.do(t, http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched models.Profile
	decodeData(t, rec, &fetched)
	assert.Equal(t, saved.ID, fetched.ID)

	recorded := env.events.Events()
	require.Len(t, recorded, 1)
	assert.Equal(t, events.TypeProfileSaved, recorded[0].Type)
	assert.Equal(t, user.ID, recorded[0].UserID)
}

func TestProfileUpdateKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signUp(t, "ravi")

	rec := env.do(t, http.MethodPut, "/profile", token, map[string]any{"name": "Ravi", "income": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	var first models.Profile
	decodeData(t, rec, &first)
	require.NotNil(t, first.Income, "zero income is a known value")

	rec = env.do(t, http.MethodPut, "/profile", token, map[string]any{"name": "Ravi Kumar"})
	require.Equal(t, http.StatusOK, rec.Code)
	var second models.Profile
	decodeData(t, rec, &second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ravi Kumar", second.Name)
	assert.Nil(t, second.Income, "omitted fields are cleared")
	assert.Len(t, env.events.Events(), 2)
}

func TestProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.signUp(t, "kiran")

	tests := []struct {
		name  string
		body  any
		field string
	}{
		{"missing name", map[string]any{"age": 20}, "name"},
		{"blank name", map[string]any{"name": "   "}, "name"},
		{"negative age", map[string]any{"name": "K", "age": -1}, "age"},
		{"negative income", map[string]any{"name": "K", "income": -5}, "income"},
		{"unknown gender", map[string]any{"name": "K", "gender": "robot"}, "gender"},
		{"unknown state", map[string]any{"name": "K", "state": "Atlantis"}, "state"},
		{"unknown category", map[string]any{"name": "K", "category": "VIP"}, "category"},
		{"wrong type", `{"name":"K","age":"old"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPut, "/profile", token, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			if tt.field != "" {
				resp := decodeData(t, rec, nil)
				assert.Equal(t, tt.field, resp.Field)
			}
		})
	}
	assert.Empty(t, env.events.Events())
}

func TestProfileSaveForDeletedAccount(t *testing.T) {
	env := newTestEnv(t)
	token, err := env.tokens.Generate(models.User{ID: 999, Username: "ghost"})
	require.NoError(t, err)

	rec := env.do(t, http.MethodPut, "/profile", token, map[string]any{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, env.events.Events())
}
