package app

import (
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/modules/cosmology"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/modules/gauge"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/modules/topology"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/modules/validation"
)

// coreModules is the definitive list of all modules that are compiled
// into the pm binary.
var coreModules = []module.Module{
	topology.New(),
	gauge.New(),
	cosmology.New(),
	validation.New(),
}

// CoreModules returns the compiled-in module set.
func CoreModules() []module.Module {
	return coreModules
}
