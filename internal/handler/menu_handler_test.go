package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/handler"
	"github.com/noah-isme/learnroute-api/internal/service"
	"github.com/noah-isme/learnroute-api/internal/utils"
)

type stubMenuService struct {
	created   *dto.MenuCreateRequest
	updated   *dto.MenuUpdateRequest
	listed    *dto.MenuListRequest
	deletedID string
	menu      dto.MenuResponse
	tree      []dto.MenuNode
	err       error
	calls     int
}

func (s *stubMenuService) Create(_ context.Context, req dto.MenuCreateRequest) (dto.MenuResponse, error) {
	s.calls++
	s.created = &req
	return s.menu, s.err
}

func (s *stubMenuService) List(_ context.Context, req dto.MenuListRequest) (dto.ListResult[dto.MenuResponse], error) {
	s.calls++
	s.listed = &req
	if s.err != nil {
		return dto.ListResult[dto.MenuResponse]{}, s.err
	}
	return dto.ListResult[dto.MenuResponse]{
		Items:      []dto.MenuResponse{s.menu},
		Pagination: dto.Pagination{Page: 1, Limit: 10, Total: 1, Pages: 1},
	}, nil
}

func (s *stubMenuService) Get(_ context.Context, _ string) (dto.MenuResponse, error) {
	s.calls++
	return s.menu, s.err
}

func (s *stubMenuService) Hierarchy(context.Context) ([]dto.MenuNode, error) {
	s.calls++
	return s.tree, s.err
}

func (s *stubMenuService) Update(_ context.Context, _ string, req dto.MenuUpdateRequest) (dto.MenuResponse, error) {
	s.calls++
	s.updated = &req
	return s.menu, s.err
}

func (s *stubMenuService) Delete(_ context.Context, id string) error {
	s.calls++
	s.deletedID = id
	return s.err
}

func newMenuApp(svc service.MenuService, guards ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handler.NewMenuHandler(svc, testValidator(), testLogger()).Register(app.Group("/api/menus"), guards...)
	return app
}

func TestMenuHandler_CreateNormalisesAndReturns201(t *testing.T) {
	svc := &stubMenuService{menu: dto.MenuResponse{ID: menuID, Title: "Home", Path: "/"}}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/api/menus", map[string]interface{}{
		"title":    "  Home ",
		"path":     "/",
		"parentId": nil,
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)
	require.Equal(t, "Menu created successfully", env.Message)
	require.NotNil(t, svc.created)
	require.Equal(t, "Home", svc.created.Title)
	require.True(t, svc.created.ParentID.Set)
	require.False(t, svc.created.ParentID.Valid)
}

func TestMenuHandler_CreateAggregatesValidationErrors(t *testing.T) {
	svc := &stubMenuService{}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/api/menus", map[string]interface{}{
		"title":        "   ",
		"path":         "home",
		"displayOrder": -1,
	})

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.False(t, env.Success)
	require.Equal(t, "Validation failed", env.Message)
	require.Contains(t, env.Errors, "title")
	require.Contains(t, env.Errors, "path")
	require.Contains(t, env.Errors, "displayOrder")
	require.Zero(t, svc.calls)
}

func TestMenuHandler_TypeMismatchIsFieldError(t *testing.T) {
	svc := &stubMenuService{}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodPost, "/api/menus", `{"title":"Home","path":"/","displayOrder":"x"}`)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, env.Errors, "displayOrder")
	require.Zero(t, svc.calls)
}

func TestMenuHandler_MalformedBody(t *testing.T) {
	app := newMenuApp(&stubMenuService{})

	resp, env := doJSON(t, app, http.MethodPost, "/api/menus", `{"title":`)

	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid request body", env.Message)
}

func TestMenuHandler_InvalidIDFormat(t *testing.T) {
	svc := &stubMenuService{}
	app := newMenuApp(svc)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		resp, env := doJSON(t, app, method, "/api/menus/not-an-id", nil)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		require.Equal(t, "Invalid menu ID format", env.Message)
	}
	require.Zero(t, svc.calls)
}

func TestMenuHandler_ServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "not found", err: service.NotFound("Menu not found"), status: fiber.StatusNotFound, message: "Menu not found"},
		{name: "conflict", err: service.Conflict("Cannot delete menu with child items. Please delete or reassign children first."), status: fiber.StatusBadRequest, message: "Cannot delete menu with child items. Please delete or reassign children first."},
		{name: "unexpected", err: errors.New("connection reset"), status: fiber.StatusInternalServerError, message: "Failed to delete menu"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newMenuApp(&stubMenuService{err: tc.err})
			resp, env := doJSON(t, app, http.MethodDelete, "/api/menus/"+menuID, nil)
			require.Equal(t, tc.status, resp.StatusCode)
			require.False(t, env.Success)
			require.Equal(t, tc.message, env.Message)
			require.Nil(t, env.Errors)
		})
	}
}

func TestMenuHandler_DeleteReturnsNullData(t *testing.T) {
	svc := &stubMenuService{}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodDelete, "/api/menus/"+menuID, nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Menu deleted successfully", env.Message)
	require.Equal(t, "null", string(env.Data))
	require.Equal(t, menuID, svc.deletedID)
}

func TestMenuHandler_HierarchyIsNotCapturedByIDRoute(t *testing.T) {
	svc := &stubMenuService{tree: []dto.MenuNode{{MenuResponse: dto.MenuResponse{ID: menuID}, Children: []dto.MenuNode{}}}}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/api/menus/hierarchy", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Nil(t, env.Pagination)
	require.Contains(t, string(env.Data), menuID)
}

func TestMenuHandler_ListFilters(t *testing.T) {
	svc := &stubMenuService{menu: dto.MenuResponse{ID: menuID}}
	app := newMenuApp(svc)

	resp, env := doJSON(t, app, http.MethodGet, "/api/menus?parentId=null&isActive=true&page=2&limit=500&sort=-title&search=home", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Pagination)
	require.NotNil(t, svc.listed)
	require.NotNil(t, svc.listed.ParentID)
	require.Empty(t, *svc.listed.ParentID)
	require.True(t, *svc.listed.IsActive)
	require.Equal(t, 2, svc.listed.Page)
	require.Equal(t, 500, svc.listed.Limit)
	require.Equal(t, "-title", svc.listed.Sort)
	require.Equal(t, "home", svc.listed.Search)

	_, _ = doJSON(t, app, http.MethodGet, "/api/menus", nil)
	require.Nil(t, svc.listed.ParentID)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/menus?parentId="+parentID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, parentID, *svc.listed.ParentID)

	resp, env = doJSON(t, app, http.MethodGet, "/api/menus?page=abc", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "page must be an integer", env.Message)
}

func TestMenuHandler_UpdateAcceptsNullParent(t *testing.T) {
	svc := &stubMenuService{menu: dto.MenuResponse{ID: menuID}}
	app := newMenuApp(svc)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/menus/"+menuID, `{"parentId":null,"displayOrder":3}`)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.updated)
	require.True(t, svc.updated.ParentID.Set)
	require.False(t, svc.updated.ParentID.Valid)
	require.Equal(t, 3, *svc.updated.DisplayOrder)
	require.Nil(t, svc.updated.Title)
}

func TestMenuHandler_WriteGuardsOnlyCoverMutations(t *testing.T) {
	svc := &stubMenuService{menu: dto.MenuResponse{ID: menuID}}
	deny := func(c *fiber.Ctx) error {
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	}
	app := newMenuApp(svc, deny)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/menus", map[string]string{"title": "Home", "path": "/"})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodDelete, "/api/menus/"+menuID, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/api/menus/"+menuID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, 1, svc.calls)
}
