package merkle

import (
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

var log = logger.RegisterSubSystem("SIMP")
