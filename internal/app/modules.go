package app

import (
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/modules/env_vars"
	"github.com/vk/bldrgo/modules/execute"
	"github.com/vk/bldrgo/modules/filesystem"
	"github.com/vk/bldrgo/modules/http_client"
	"github.com/vk/bldrgo/modules/print"
	"github.com/vk/bldrgo/modules/socketio"
)

// coreModules returns every module compiled into the bldr binary. The core
// itself has no call types; all of them come from these modules.
func coreModules() []registry.Module {
	return []registry.Module{
		&execute.Module{},
		&filesystem.Module{},
		&print.Module{},
		&env_vars.Module{},
		&http_client.Module{},
		&socketio.Module{},
	}
}
