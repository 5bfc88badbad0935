package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/learnroute-api/internal/models"
	"github.com/noah-isme/learnroute-api/internal/repository"
	"github.com/noah-isme/learnroute-api/internal/validation"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

type testStores struct {
	db          *gorm.DB
	users       *repository.Store[models.User]
	menus       *repository.Store[models.Menu]
	skillPaths  *repository.Store[models.SkillPath]
	modules     *repository.Store[models.Module]
	resources   *repository.Store[models.Resource]
	enrollments *repository.Store[models.UserSkillEnrollment]
	statuses    *repository.Store[models.UserResourceStatus]
	activity    *repository.Store[models.ActivityLog]
}

func newTestStores(t *testing.T) testStores {
	t.Helper()
	return openTestStores(t, "")
}

// newForeignKeyTestStores enforces foreign keys the way postgres does.
func newForeignKeyTestStores(t *testing.T) testStores {
	t.Helper()
	return openTestStores(t, "&_foreign_keys=1")
}

func openTestStores(t *testing.T, params string) testStores {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared%s", uuid.NewString(), params)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(repository.AllModels()...))

	validate := validation.New()
	return testStores{
		db:          db,
		users:       repository.NewUserStore(db, validate),
		menus:       repository.NewMenuStore(db, validate),
		skillPaths:  repository.NewSkillPathStore(db, validate),
		modules:     repository.NewModuleStore(db, validate),
		resources:   repository.NewResourceStore(db, validate),
		enrollments: repository.NewEnrollmentStore(db, validate),
		statuses:    repository.NewResourceStatusStore(db, validate),
		activity:    repository.NewActivityLogStore(db, validate),
	}
}

func (s testStores) seedUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{FullName: "Test User", Email: email, PasswordHash: "hash", Role: models.RoleStudent}
	require.NoError(t, s.users.Create(context.Background(), &user))
	return user
}

func (s testStores) seedSkillPath(t *testing.T, slug string) models.SkillPath {
	t.Helper()
	path := models.SkillPath{Title: slug, Slug: slug, Level: models.LevelBeginner, IsActive: true}
	require.NoError(t, s.skillPaths.Create(context.Background(), &path))
	return path
}

func (s testStores) seedModule(t *testing.T, skillPathID string) models.Module {
	t.Helper()
	module := models.Module{SkillPathID: skillPathID, Title: "Basics", IsActive: true}
	require.NoError(t, s.modules.Create(context.Background(), &module))
	return module
}

func (s testStores) seedResource(t *testing.T, moduleID string) models.Resource {
	t.Helper()
	resource := models.Resource{ModuleID: moduleID, Title: "Intro", ResourceType: models.ResourceTypeArticle, IsActive: true}
	require.NoError(t, s.resources.Create(context.Background(), &resource))
	return resource
}

func requireKind(t *testing.T, err error, kind ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, kind, svcErr.Kind, "unexpected kind for %v", err)
	if message != "" {
		require.Equal(t, message, svcErr.Message)
	}
}
