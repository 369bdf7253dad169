package main

import (
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
)

var log = logger.RegisterSubSystem("HSIM")
