package bootstrap

import (
	"context"
	"fmt"
	"strings"

	appRepos "github.com/schoolhub/registrar/internal/app/repositories"
	appServices "github.com/schoolhub/registrar/internal/app/services"
	"github.com/schoolhub/registrar/internal/config"
	"github.com/schoolhub/registrar/internal/db"
	"github.com/schoolhub/registrar/internal/pkg/logger"
)

// App holds all the application dependencies
type App struct {
	Config *config.Config
	DB     *db.SQLiteDB
	Repos  *appRepos.Repositories

	StudentService      *appServices.StudentService
	InstructorService   *appServices.InstructorService
	CourseService       *appServices.CourseService
	RegistrationService *appServices.RegistrationService
	SnapshotService     *appServices.SnapshotService
	ExportService       *appServices.ExportService
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	ConfigureLogger(cfg)
	return cfg, nil
}

// ConfigureLogger applies the config's logging section to the global
// logger. Called again after command-line overrides are folded in.
func ConfigureLogger(cfg *config.Config) {
	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: cfg.Logging.Pretty,
	})
}

// NewApp opens the store at the configured path, applies the schema, and
// wires repositories and services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	database, err := db.NewSQLiteDB(cfg)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.InitSchema(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	app := &App{Config: cfg, DB: database}
	app.Repos = appRepos.NewRepositories(database)

	app.StudentService = appServices.NewStudentService(
		app.Repos.StudentRepository,
		app.Repos.RegistrationRepository,
	)
	app.InstructorService = appServices.NewInstructorService(
		app.Repos.InstructorRepository,
		app.Repos.CourseRepository,
	)
	app.CourseService = appServices.NewCourseService(
		app.Repos.CourseRepository,
		app.Repos.InstructorRepository,
	)
	app.RegistrationService = appServices.NewRegistrationService(
		app.Repos.RegistrationRepository,
		app.Repos.StudentRepository,
		app.Repos.InstructorRepository,
		app.Repos.CourseRepository,
	)
	app.SnapshotService = appServices.NewSnapshotService(
		app.Repos.StudentRepository,
		app.Repos.InstructorRepository,
		app.Repos.CourseRepository,
		app.Repos.RegistrationRepository,
	)
	app.ExportService = appServices.NewExportService(
		app.StudentService,
		app.InstructorService,
		app.CourseService,
		app.Repos.RegistrationRepository,
		database,
	)

	return app, nil
}

// Close releases the store connection.
func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}
