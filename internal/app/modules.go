package app

import (
	"github.com/vk/t3dlaunch/internal/registry"
	"github.com/vk/t3dlaunch/modules/engine"
	"github.com/vk/t3dlaunch/modules/geometryapp"
	"github.com/vk/t3dlaunch/modules/hello"
	"github.com/vk/t3dlaunch/modules/platformapp"
	"github.com/vk/t3dlaunch/modules/textureapp"
)

// coreModules is the definitive list of all modules that are compiled into
// the t3dlaunch binary.
var coreModules = []registry.Module{
	&engine.Module{},
	&platformapp.Module{},
	&geometryapp.Module{},
	&textureapp.Module{},
	&hello.Module{},
}
