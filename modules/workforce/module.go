package workforce

import (
	"embed"

	"github.com/skillforge/skillforge/modules/workforce/infrastructure/persistence"
	"github.com/skillforge/skillforge/modules/workforce/services"
	"github.com/skillforge/skillforge/pkg/application"
)

//go:embed infrastructure/persistence/schema/workforce-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewEmployeeService(
			persistence.NewEmployeeRepository(),
			persistence.NewAssignmentRepository(),
			app.EventPublisher(),
		),
		services.NewSkillService(persistence.NewSkillRepository()),
		services.NewJobRoleService(persistence.NewJobRoleRepository()),
	)
	return nil
}

func (m *Module) Name() string {
	return "workforce"
}
