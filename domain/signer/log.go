package signer

import (
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

var log = logger.RegisterSubSystem("SIGN")
