package rpc

import (
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
	"github.com/halsimplicity/halsimplicity/util/panics"
)

var log = logger.RegisterSubSystem("RPCS")
var spawn = panics.GoroutineWrapperFunc(log)
