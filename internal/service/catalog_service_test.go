package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/learnroute-api/internal/dto"
	"github.com/noah-isme/learnroute-api/internal/models"
)

func strRef(value string) *string { return &value }

func TestSkillPathServiceCreateSanitisesAndDefaults(t *testing.T) {
	stores := newTestStores(t)
	svc := NewSkillPathService(stores.skillPaths, stores.modules, testLogger())

	created, err := svc.Create(context.Background(), dto.SkillPathCreateRequest{
		Title:       "Go Basics",
		Slug:        strRef("go-basics"),
		Description: strRef("<script>alert(1)</script><p>Learn Go</p>"),
	})
	require.NoError(t, err)
	require.Equal(t, models.LevelBeginner, created.Level)
	require.True(t, created.IsActive)
	require.Equal(t, "<p>Learn Go</p>", created.Description)

	_, err = svc.Create(context.Background(), dto.SkillPathCreateRequest{Title: "Go Again", Slug: strRef("go-basics")})
	requireKind(t, err, KindConflict, "Slug already exists")
}

func TestSkillPathServiceDeleteBlockedByModules(t *testing.T) {
	stores := newTestStores(t)
	svc := NewSkillPathService(stores.skillPaths, stores.modules, testLogger())
	path := stores.seedSkillPath(t, "rust")
	module := stores.seedModule(t, path.ID)

	err := svc.Delete(context.Background(), path.ID)
	requireKind(t, err, KindConflict, "")

	_, err = stores.modules.DeleteByID(context.Background(), module.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), path.ID))
}

func TestModuleServiceRequiresExistingSkillPath(t *testing.T) {
	stores := newTestStores(t)
	svc := NewModuleService(stores.modules, stores.skillPaths, stores.resources, testLogger())

	_, err := svc.Create(context.Background(), dto.ModuleCreateRequest{SkillPathID: models.NewID(), Title: "Loops"})
	requireKind(t, err, KindBadReference, "SkillPath not found")

	path := stores.seedSkillPath(t, "go")
	created, err := svc.Create(context.Background(), dto.ModuleCreateRequest{SkillPathID: path.ID, Title: "Loops"})
	require.NoError(t, err)
	require.NotNil(t, created.SkillPath)
	require.Equal(t, "go", created.SkillPath.Slug)
	require.Equal(t, 1, created.DisplayOrder)
	require.True(t, created.IsActive)

	missing := models.NewID()
	_, err = svc.Update(context.Background(), created.ID, dto.ModuleUpdateRequest{SkillPathID: &missing})
	requireKind(t, err, KindBadReference, "SkillPath not found")

	title := "Loops and Ranges"
	updated, err := svc.Update(context.Background(), created.ID, dto.ModuleUpdateRequest{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, path.ID, updated.SkillPathID)
}

func TestModuleServiceListFiltersBySkillPath(t *testing.T) {
	stores := newTestStores(t)
	svc := NewModuleService(stores.modules, stores.skillPaths, stores.resources, testLogger())
	goPath := stores.seedSkillPath(t, "go")
	rustPath := stores.seedSkillPath(t, "rust")
	stores.seedModule(t, goPath.ID)
	stores.seedModule(t, goPath.ID)
	stores.seedModule(t, rustPath.ID)

	result, err := svc.List(context.Background(), dto.ModuleListRequest{SkillPathID: goPath.ID})
	require.NoError(t, err)
	require.Equal(t, int64(2), result.Pagination.Total)
	for _, item := range result.Items {
		require.Equal(t, goPath.ID, item.SkillPathID)
	}
}

func TestModuleServiceDeleteBlockedByResources(t *testing.T) {
	stores := newTestStores(t)
	svc := NewModuleService(stores.modules, stores.skillPaths, stores.resources, testLogger())
	module := stores.seedModule(t, stores.seedSkillPath(t, "go").ID)
	stores.seedResource(t, module.ID)

	err := svc.Delete(context.Background(), module.ID)
	requireKind(t, err, KindConflict, "")
}

func TestResourceServiceCreateChecksModule(t *testing.T) {
	stores := newTestStores(t)
	svc := NewResourceService(stores.resources, stores.modules, testLogger())

	_, err := svc.Create(context.Background(), dto.ResourceCreateRequest{ModuleID: models.NewID(), Title: "Video"})
	requireKind(t, err, KindBadReference, "Module not found")

	module := stores.seedModule(t, stores.seedSkillPath(t, "go").ID)
	created, err := svc.Create(context.Background(), dto.ResourceCreateRequest{ModuleID: module.ID, Title: "Reading"})
	require.NoError(t, err)
	require.Equal(t, models.ResourceTypeArticle, created.ResourceType)
	require.NotNil(t, created.Module)
	require.Equal(t, module.ID, created.Module.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = svc.Get(context.Background(), created.ID)
	requireKind(t, err, KindNotFound, "Resource not found")
}
