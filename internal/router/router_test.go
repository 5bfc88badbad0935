package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/config"
	"github.com/noah-isme/learnroute-api/internal/database"
	"github.com/noah-isme/learnroute-api/internal/handler"
	"github.com/noah-isme/learnroute-api/internal/middleware"
	"github.com/noah-isme/learnroute-api/internal/repository"
	"github.com/noah-isme/learnroute-api/internal/router"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

const jwtSecret = "router-test-secret"

type envelope struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       json.RawMessage        `json:"data"`
	Errors     map[string]string      `json:"errors"`
	Pagination map[string]interface{} `json:"pagination"`
}

type testServer struct {
	app   *fiber.App
	token string
}

func newTestServer(t *testing.T, withAuth bool) *testServer {
	t.Helper()

	cfg := config.Config{
		AppName:        "LearnRoute API",
		AppEnv:         "test",
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MenuCacheTTL:   time.Minute,
		BcryptCost:     4,
	}
	if withAuth {
		cfg.JWTSecret = jwtSecret
	}

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(repository.AllModels()...))

	mini := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	logger := zerolog.Nop()
	validator := validation.NewValidator()
	engine := validator.Engine()

	users := repository.NewUserStore(db, engine)
	menus := repository.NewMenuStore(db, engine)
	skillPaths := repository.NewSkillPathStore(db, engine)
	modules := repository.NewModuleStore(db, engine)
	resources := repository.NewResourceStore(db, engine)
	enrollments := repository.NewEnrollmentStore(db, engine)
	statuses := repository.NewResourceStatusStore(db, engine)
	activity := repository.NewActivityLogStore(db, engine)

	deps := router.Dependencies{
		UserHandler:           handler.NewUserHandler(service.NewUserService(users, cfg.BcryptCost, logger), validator, logger),
		MenuHandler:           handler.NewMenuHandler(service.NewMenuService(menus, cache, cfg.MenuCacheTTL, logger), validator, logger),
		SkillPathHandler:      handler.NewSkillPathHandler(service.NewSkillPathService(skillPaths, modules, logger), validator, logger),
		ModuleHandler:         handler.NewModuleHandler(service.NewModuleService(modules, skillPaths, resources, logger), validator, logger),
		ResourceHandler:       handler.NewResourceHandler(service.NewResourceService(resources, modules, logger), validator, logger),
		EnrollmentHandler:     handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollments, users, skillPaths, logger), validator, logger),
		ResourceStatusHandler: handler.NewResourceStatusHandler(service.NewResourceStatusService(statuses, users, resources, logger), validator, logger),
		ActivityLogHandler:    handler.NewActivityLogHandler(service.NewActivityLogService(activity, nil, "", logger), validator, logger),
	}
	server := &testServer{}
	if cfg.AuthEnabled() {
		deps.JWTMiddleware = middleware.JWTProtected(cfg.JWTSecret)
		server.token = signToken(t, "admin")
	}

	server.app = router.New(cfg, logger, deps)
	return server
}

func signToken(t *testing.T, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  uuid.NewString(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return signed
}

func (s *testServer) request(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	return s.requestAs(t, s.token, method, path, body)
}

func (s *testServer) requestAs(t *testing.T, token, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func (s *testServer) create(t *testing.T, path string, body interface{}) string {
	t.Helper()
	status, env := s.request(t, http.MethodPost, path, body)
	require.Equal(t, fiber.StatusCreated, status, env.Message, env.Errors)
	var created struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	return created.ID
}

func TestRouterServesRootHealthMetricsAndFallback(t *testing.T) {
	server := newTestServer(t, false)

	status, env := server.request(t, http.MethodGet, "/", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, env.Success)

	status, env = server.request(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, string(env.Data), `"status":"ok"`)

	status, _ = server.request(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env = server.request(t, http.MethodGet, "/api/does-not-exist", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.False(t, env.Success)
	require.Equal(t, "Route not found", env.Message)
}

func TestMenuLifecycle(t *testing.T) {
	server := newTestServer(t, false)

	rootID := server.create(t, "/api/menus", map[string]interface{}{"title": "Learn", "path": "/learn", "displayOrder": 2})
	otherID := server.create(t, "/api/menus", map[string]interface{}{"title": "Home", "path": "/", "displayOrder": 1})
	childID := server.create(t, "/api/menus", map[string]interface{}{"title": "Paths", "path": "/learn/paths", "parentId": rootID})

	status, env := server.request(t, http.MethodPost, "/api/menus", map[string]interface{}{"title": "Ghost", "path": "/ghost", "parentId": uuid.NewString()})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "Parent menu not found", env.Message)

	status, env = server.request(t, http.MethodPut, "/api/menus/"+rootID, map[string]interface{}{"parentId": rootID})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "Menu cannot be its own parent", env.Message)

	status, _ = server.request(t, http.MethodPut, "/api/menus/"+rootID, map[string]interface{}{"parentId": childID})
	require.Equal(t, fiber.StatusBadRequest, status)

	status, env = server.request(t, http.MethodGet, "/api/menus/hierarchy", nil)
	require.Equal(t, fiber.StatusOK, status)
	var tree []struct {
		ID       string `json:"id"`
		Children []struct {
			ID string `json:"id"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tree))
	require.Len(t, tree, 2)
	require.Equal(t, otherID, tree[0].ID)
	require.Equal(t, rootID, tree[1].ID)
	require.Len(t, tree[1].Children, 1)
	require.Equal(t, childID, tree[1].Children[0].ID)

	status, env = server.request(t, http.MethodGet, "/api/menus?parentId=null&limit=1&page=2", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.EqualValues(t, 2, env.Pagination["total"])
	require.EqualValues(t, 2, env.Pagination["pages"])

	status, env = server.request(t, http.MethodDelete, "/api/menus/"+rootID, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "Cannot delete menu with child items. Please delete or reassign children first.", env.Message)

	status, _ = server.request(t, http.MethodDelete, "/api/menus/"+childID, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, env = server.request(t, http.MethodDelete, "/api/menus/"+rootID, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "null", string(env.Data))

	status, env = server.request(t, http.MethodGet, "/api/menus/"+rootID, nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.Equal(t, "Menu not found", env.Message)
}

func TestLearningProgressFlow(t *testing.T) {
	server := newTestServer(t, false)

	userID := server.create(t, "/api/users", map[string]interface{}{"fullName": "Ada Lovelace", "email": "Ada@Example.com", "password": "secret123"})
	status, env := server.request(t, http.MethodPost, "/api/users", map[string]interface{}{"fullName": "Ada Again", "email": "ada@example.com", "password": "secret123"})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "Email already exists", env.Message)

	status, env = server.request(t, http.MethodPost, "/api/modules", map[string]interface{}{"skillPathId": uuid.NewString(), "title": "Orphan"})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "SkillPath not found", env.Message)

	skillPathID := server.create(t, "/api/skill-paths", map[string]interface{}{"title": "Go Fundamentals", "level": "Beginner"})
	moduleID := server.create(t, "/api/modules", map[string]interface{}{"skillPathId": skillPathID, "title": "Syntax"})
	resourceID := server.create(t, "/api/resources", map[string]interface{}{"moduleId": moduleID, "title": "Tour of Go", "url": "https://go.dev/tour"})

	status, env = server.request(t, http.MethodGet, "/api/resources/"+resourceID, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, string(env.Data), `"module":{`)

	enrollmentID := server.create(t, "/api/enrollments", map[string]interface{}{"userId": userID, "skillPathId": skillPathID})
	status, env = server.request(t, http.MethodPost, "/api/enrollments", map[string]interface{}{"userId": userID, "skillPathId": skillPathID})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "User is already enrolled in this skill path", env.Message)

	status, env = server.request(t, http.MethodPut, "/api/enrollments/"+enrollmentID, map[string]interface{}{"progressPercent": -1})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "Validation failed", env.Message)
	require.Contains(t, env.Errors, "progressPercent")

	status, env = server.request(t, http.MethodPost, "/api/enrollments", map[string]interface{}{"userId": userID, "skillPathId": skillPathID, "progressPercent": 101})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "progressPercent")

	status, env = server.request(t, http.MethodPut, "/api/enrollments/"+enrollmentID, map[string]interface{}{"status": "completed", "progressPercent": 100})
	require.Equal(t, fiber.StatusOK, status)
	var enrollment struct {
		Status      string     `json:"status"`
		CompletedAt *time.Time `json:"completedAt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &enrollment))
	require.Equal(t, "completed", enrollment.Status)
	require.NotNil(t, enrollment.CompletedAt)

	status, env = server.request(t, http.MethodGet, "/api/enrollments/user/"+userID, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.EqualValues(t, 1, env.Pagination["total"])

	server.create(t, "/api/resource-statuses", map[string]interface{}{"userId": userID, "resourceId": resourceID})
	status, env = server.request(t, http.MethodPost, "/api/resource-statuses", map[string]interface{}{"userId": userID, "resourceId": resourceID})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "User already has a status for this resource", env.Message)

	server.create(t, "/api/activity-logs", map[string]interface{}{"userId": userID, "eventType": "resource_completed", "details": map[string]interface{}{"resourceId": resourceID}})
	status, env = server.request(t, http.MethodGet, "/api/activity-logs?userId="+userID, nil)
	require.Equal(t, fiber.StatusOK, status)
	require.EqualValues(t, 1, env.Pagination["total"])

	status, env = server.request(t, http.MethodDelete, "/api/skill-paths/"+skillPathID, nil)
	require.Equal(t, fiber.StatusBadRequest, status)
	require.False(t, env.Success)
}

func TestCatalogWritesRequireAdminWhenAuthEnabled(t *testing.T) {
	server := newTestServer(t, true)
	body := map[string]interface{}{"title": "Home", "path": "/"}

	status, _ := server.requestAs(t, "", http.MethodPost, "/api/menus", body)
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = server.requestAs(t, signToken(t, "student"), http.MethodPost, "/api/menus", body)
	require.Equal(t, fiber.StatusForbidden, status)

	menuID := server.create(t, "/api/menus", body)

	status, _ = server.requestAs(t, "", http.MethodGet, "/api/menus/"+menuID, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = server.requestAs(t, "", http.MethodPost, "/api/users", map[string]interface{}{"fullName": "Grace Hopper", "email": "grace@example.com", "password": "secret123"})
	require.Equal(t, fiber.StatusCreated, status)
}
