package analytics

import (
	"embed"

	"github.com/skillforge/skillforge/modules/analytics/catalogue"
	"github.com/skillforge/skillforge/modules/analytics/domain/notification"
	"github.com/skillforge/skillforge/modules/analytics/handlers"
	"github.com/skillforge/skillforge/modules/analytics/infrastructure/persistence"
	"github.com/skillforge/skillforge/modules/analytics/services"
	workforcepersistence "github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence"
	"github.com/skillforge/skillforge/pkg/application"
	"github.com/skillforge/skillforge/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/analytics-schema.sql
var MigrationFiles embed.FS

type ModuleOptions struct {
	// Catalogue overrides the embedded growth templates. Nil falls back to
	// GROWTH_CATALOGUE_PATH, then to the embedded default.
	Catalogue *catalogue.Catalogue
	// Dispatcher receives notification messages. Nil drops them.
	Dispatcher notification.Dispatcher
}

func NewModule(opts *ModuleOptions) application.Module {
	if opts == nil {
		opts = &ModuleOptions{}
	}
	return &Module{opts: opts}
}

type Module struct {
	opts *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)

	cat := m.opts.Catalogue
	if cat == nil {
		conf := configuration.Use()
		if path := conf.Analytics.CataloguePath; path != "" {
			loaded, err := catalogue.Load(path)
			if err != nil {
				return err
			}
			cat = loaded
		} else {
			cat = catalogue.Default()
		}
	}

	loader := persistence.NewSnapshotRepository()
	roles := workforcepersistence.NewJobRoleRepository()

	riskCases := services.NewRiskCaseService(persistence.NewRiskCaseRepository(), app.EventPublisher(), app.Logger())
	app.RegisterServices(
		services.NewSkillMapService(loader, app.EventPublisher(), app.Logger()),
		riskCases,
		services.NewSuccessionService(loader),
		services.NewGrowthService(loader, cat),
		services.NewStaffingService(loader),
		services.NewProfileGapService(loader, roles),
		services.NewScenarioService(persistence.NewScenarioRepository(), roles, loader, app.EventPublisher(), app.Logger()),
	)

	handlers.RegisterRiskDetectedHandler(app, riskCases)
	handlers.RegisterNotificationHandler(app, m.opts.Dispatcher)
	return nil
}

func (m *Module) Name() string {
	return "analytics"
}
