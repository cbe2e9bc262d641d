package modules

import (
	"github.com/louisbranch/pickarick/internal/services/web/module"
	"github.com/louisbranch/pickarick/internal/services/web/modules/assets"
	"github.com/louisbranch/pickarick/internal/services/web/modules/home"
	"github.com/louisbranch/pickarick/internal/services/web/modules/public"
)

// DefaultModules returns the modules mounted by the web server. The public
// module owns the root subtree, so it only receives paths no other module
// claims. Its health route reports on every module that can tell.
func DefaultModules(deps Dependencies) []Module {
	all := []Module{
		home.NewWithGateway(deps.Gateway, home.Options{
			SSR:      deps.SSR,
			Shell:    deps.Shell,
			Defaults: deps.Defaults,
			Logger:   deps.Logger,
			Observer: deps.CounterObserver,
		}),
		assets.New(assets.Options{OutputDir: deps.OutputDir}),
	}
	var health []module.HealthReporter
	for _, m := range all {
		if reporter, ok := m.(module.HealthReporter); ok {
			health = append(health, reporter)
		}
	}
	return append(all, public.New(public.Options{
		Shell:   deps.Shell,
		Metrics: deps.Metrics,
		Logger:  deps.Logger,
		Health:  health,
	}))
}
