package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/handler"
	"github.com/noah-isme/learnroute-api/internal/service"
)

type stubUserService struct {
	created *dto.UserCreateRequest
	updated *dto.UserUpdateRequest
	listed  *dto.UserListRequest
	user    dto.UserResponse
	err     error
	calls   int
}

func (s *stubUserService) Create(_ context.Context, req dto.UserCreateRequest) (dto.UserResponse, error) {
	s.calls++
	s.created = &req
	return s.user, s.err
}

func (s *stubUserService) List(_ context.Context, req dto.UserListRequest) (dto.ListResult[dto.UserResponse], error) {
	s.calls++
	s.listed = &req
	return dto.ListResult[dto.UserResponse]{Items: []dto.UserResponse{}, Pagination: dto.Pagination{Page: 1, Limit: 10}}, s.err
}

func (s *stubUserService) Get(context.Context, string) (dto.UserResponse, error) {
	s.calls++
	return s.user, s.err
}

func (s *stubUserService) Update(_ context.Context, _ string, req dto.UserUpdateRequest) (dto.UserResponse, error) {
	s.calls++
	s.updated = &req
	return s.user, s.err
}

func (s *stubUserService) Delete(context.Context, string) error {
	s.calls++
	return s.err
}

func newUserApp(svc service.UserService) *fiber.App {
	app := fiber.New()
	handler.NewUserHandler(svc, testValidator(), testLogger()).Register(app.Group("/api/users"))
	return app
}

func TestUserHandler_CreateNeverReturnsPasswordHash(t *testing.T) {
	svc := &stubUserService{user: dto.UserResponse{ID: userID, FullName: "Ada Lovelace", Email: "ada@example.com", Role: "student", CreatedAt: time.Now()}}
	app := newUserApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    " Ada@Example.COM ",
		"password": "secret123",
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "User created successfully", env.Message)
	require.NotContains(t, string(env.Data), "password")
	require.Equal(t, "ada@example.com", svc.created.Email)
}

func TestUserHandler_DuplicateEmailIsBadRequest(t *testing.T) {
	app := newUserApp(&stubUserService{err: service.Conflict("Email already exists")})

	resp, env := doJSON(t, app, http.MethodPost, "/api/users", map[string]string{
		"fullName": "Ada Lovelace",
		"email":    "ada@example.com",
		"password": "secret123",
	})

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Email already exists", env.Message)
}

func TestUserHandler_UpdateRejectsPasswordFields(t *testing.T) {
	svc := &stubUserService{}
	app := newUserApp(svc)

	resp, env := doJSON(t, app, http.MethodPut, "/api/users/"+userID, map[string]string{
		"passwordHash": "x",
		"fullName":     "Ada",
	})

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, env.Errors, "passwordHash")
	require.Zero(t, svc.calls)
}

func TestUserHandler_ListLowercasesRoleFilter(t *testing.T) {
	svc := &stubUserService{}
	app := newUserApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/api/users?role=ADMIN", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Users retrieved successfully", env.Message)
	require.Equal(t, "[]", string(env.Data))
	require.Equal(t, "admin", svc.listed.Role)
}

func TestUserHandler_ValidationFailureFromService(t *testing.T) {
	app := newUserApp(&stubUserService{err: service.Invalid(map[string]string{"email": "must be unique"})})

	resp, env := doJSON(t, app, http.MethodGet, "/api/users/"+userID, nil)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "must be unique", env.Errors["email"])
}
