package modules

import (
	"github.com/skillforge/skillforge/modules/analytics"
	"github.com/skillforge/skillforge/modules/workforce"
	"github.com/skillforge/skillforge/pkg/application"
)

var BuiltInModules = []application.Module{
	workforce.NewModule(),
	analytics.NewModule(nil),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range append(BuiltInModules, externalModules...) {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
