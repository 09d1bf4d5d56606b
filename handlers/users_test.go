package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahafle/costs-manager/models"
)

type fakeUserStore struct {
	users     map[int]models.User
	insertErr error
	findErr   error
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	store := &fakeUserStore{users: map[int]models.User{}}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (f *fakeUserStore) Insert(ctx context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, nil
}

func (f *fakeUserStore) FindAll(ctx context.Context) ([]models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	all := []models.User{}
	for _, user := range f.users {
		all = append(all, user)
	}
	return all, nil
}

type fakeTotaler struct {
	total float64
	err   error
}

func (f *fakeTotaler) GetTotal(ctx context.Context, userID int) (float64, error) {
	return f.total, f.err
}

func userRouter(h *UserHandler) *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.POST("/add", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	router.NoRoute(NotFound)
	return router
}

func testUser() models.User {
	return models.User{
		ID:        3,
		FirstName: "Mosh",
		LastName:  "Israeli",
		Birthday:  time.Date(1990, time.January, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetUserWithTotal(t *testing.T) {
	h := NewUserHandler(newFakeUserStore(testUser()), &fakeTotaler{total: 250})
	router := userRouter(h)

	w := doRequest(router, http.MethodGet, "/api/users/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got UserWithTotal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, UserWithTotal{ID: 3, FirstName: "Mosh", LastName: "Israeli", Total: 250}, got)
}

func TestGetUserDegradedTotal(t *testing.T) {
	// costs-service down: the user is still served, with total 0.
	h := NewUserHandler(newFakeUserStore(testUser()), &fakeTotaler{err: errors.New("connection refused")})
	router := userRouter(h)

	w := doRequest(router, http.MethodGet, "/api/users/3", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got UserWithTotal
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Zero(t, got.Total)
	assert.Equal(t, "Mosh", got.FirstName)
}

func TestGetUserNotFound(t *testing.T) {
	h := NewUserHandler(newFakeUserStore(), &fakeTotaler{})
	router := userRouter(h)

	w := doRequest(router, http.MethodGet, "/api/users/99", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeEnvelope(t, w).Message)
}

func TestGetUserInvalidID(t *testing.T) {
	h := NewUserHandler(newFakeUserStore(), &fakeTotaler{})
	router := userRouter(h)

	w := doRequest(router, http.MethodGet, "/api/users/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user ID. Must be a number", decodeEnvelope(t, w).Message)
}

func TestCreateUser(t *testing.T) {
	store := newFakeUserStore()
	h := NewUserHandler(store, &fakeTotaler{})
	router := userRouter(h)

	body := `{"id":7,"first_name":"Dana","last_name":"Cohen","birthday":"1995-03-02T00:00:00Z"}`
	w := doRequest(router, http.MethodPost, "/api/add", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var got models.RenderedUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Dana Cohen", got.FullName)

	_, ok := store.users[7]
	assert.True(t, ok)
}

func TestCreateUserMissingFields(t *testing.T) {
	h := NewUserHandler(newFakeUserStore(), &fakeTotaler{})
	router := userRouter(h)

	w := doRequest(router, http.MethodPost, "/api/add", `{"id":7,"first_name":"Dana"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	decodeEnvelope(t, w)
}

func TestListUsers(t *testing.T) {
	h := NewUserHandler(newFakeUserStore(testUser()), &fakeTotaler{})
	router := userRouter(h)

	w := doRequest(router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []models.RenderedUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Mosh Israeli", got[0].FullName)
}
