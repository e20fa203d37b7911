package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-service/internal/entity"
	"shop-service/internal/service"
)

type fakeUserService struct {
	users      map[int]*entity.User
	nextID     int
	listSkip   int
	listLimit  int
	failCreate error
}

func newFakeUserService() *fakeUserService {
	return &fakeUserService{users: map[int]*entity.User{}, nextID: 1}
}

func (f *fakeUserService) ListUsers(ctx context.Context, skip, limit int) ([]*entity.User, error) {
	f.listSkip = skip
	f.listLimit = limit
	users := []*entity.User{}
	for id := 1; id < f.nextID; id++ {
		if user, ok := f.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (f *fakeUserService) CreateUser(ctx context.Context, in entity.UserCreate) (*entity.User, error) {
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	now := time.Now()
	user := &entity.User{ID: f.nextID, Username: in.Username, Email: in.Email, CreatedAt: now, UpdatedAt: now}
	f.users[user.ID] = user
	f.nextID++
	return user, nil
}

func (f *fakeUserService) GetUser(ctx context.Context, id int) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserService) UpdateUser(ctx context.Context, id int, in entity.UserUpdate) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	in.Apply(user)
	user.UpdatedAt = time.Now()
	return user, nil
}

func (f *fakeUserService) DeleteUser(ctx context.Context, id int) error {
	if _, ok := f.users[id]; !ok {
		return service.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newUserEcho(svc *fakeUserService) *echo.Echo {
	e := echo.New()
	h := NewUserHandler(svc)
	users := e.Group("/users")
	users.GET("/", h.GetUsers)
	users.POST("/", h.CreateUser)
	users.GET("/:id", h.GetUserByID)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	return e
}

func TestCreateUserHandler(t *testing.T) {
	e := newUserEcho(newFakeUserService())

	rec := doRequest(t, e, http.MethodPost, "/users/", `{"username":"alice","email":"alice@example.com"}`)
	require.Equal(t, 200, rec.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestCreateUserHandlerConflict(t *testing.T) {
	svc := newFakeUserService()
	svc.failCreate = service.ErrEmailTaken
	e := newUserEcho(svc)

	rec := doRequest(t, e, http.MethodPost, "/users/", `{"username":"alice","email":"alice@example.com"}`)
	require.Equal(t, 400, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Email already registered", body["error"])
}

func TestGetUserHandlerInvalidID(t *testing.T) {
	e := newUserEcho(newFakeUserService())

	rec := doRequest(t, e, http.MethodGet, "/users/abc", "")
	assert.Equal(t, 400, rec.Code)
}

func TestGetUserHandlerNotFound(t *testing.T) {
	e := newUserEcho(newFakeUserService())

	rec := doRequest(t, e, http.MethodGet, "/users/42", "")
	require.Equal(t, 404, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User not found", body["error"])
}

func TestListUsersHandlerDefaults(t *testing.T) {
	svc := newFakeUserService()
	e := newUserEcho(svc)

	rec := doRequest(t, e, http.MethodGet, "/users/", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 0, svc.listSkip)
	assert.Equal(t, 100, svc.listLimit)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestListUsersHandlerPagination(t *testing.T) {
	svc := newFakeUserService()
	e := newUserEcho(svc)

	rec := doRequest(t, e, http.MethodGet, "/users/?skip=5&limit=10", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, 5, svc.listSkip)
	assert.Equal(t, 10, svc.listLimit)
}

func TestUpdateUserHandler(t *testing.T) {
	svc := newFakeUserService()
	_, err := svc.CreateUser(context.Background(), entity.UserCreate{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	e := newUserEcho(svc)

	rec := doRequest(t, e, http.MethodPut, "/users/1", `{"username":"alicia"}`)
	require.Equal(t, 200, rec.Code)

	var user entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alicia", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUpdateUserHandlerNotFound(t *testing.T) {
	e := newUserEcho(newFakeUserService())

	rec := doRequest(t, e, http.MethodPut, "/users/42", `{"username":"alicia"}`)
	assert.Equal(t, 404, rec.Code)
}

func TestDeleteUserHandler(t *testing.T) {
	svc := newFakeUserService()
	_, err := svc.CreateUser(context.Background(), entity.UserCreate{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	e := newUserEcho(svc)

	rec := doRequest(t, e, http.MethodDelete, "/users/1", "")
	require.Equal(t, 200, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "User deleted successfully", body["message"])

	rec = doRequest(t, e, http.MethodDelete, "/users/1", "")
	assert.Equal(t, 404, rec.Code)
}
