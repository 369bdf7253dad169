package main

import (
	"os"

	"github.com/halsimplicity/halsimplicity/app/rpc"
	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/halsimplicity/halsimplicity/infrastructure/logger"
	"github.com/halsimplicity/halsimplicity/infrastructure/os/signal"
	"github.com/halsimplicity/halsimplicity/util/profiling"
	"github.com/halsimplicity/halsimplicity/version"
	"github.com/pkg/errors"
)

func startDaemon(conf *daemonConfig) error {
	err := os.MkdirAll(conf.LogDir, 0700)
	if err != nil {
		return errors.Wrapf(err, "error creating log directory %s", conf.LogDir)
	}
	logger.InitLog(conf.LogFile(), conf.ErrLogFile())
	err = logger.ParseAndSetLogLevels(conf.LogLevel)
	if err != nil {
		return err
	}

	oracle, err := signer.ByName(conf.Signer)
	if err != nil {
		return err
	}

	interrupt := signal.InterruptListener()
	log.Infof("Version %s", version.Version())
	log.Infof("Network %s, signature oracle %s", conf.Network().Name, oracle.Name())

	if conf.Profile != "" {
		profiling.Start(conf.Profile, log)
	}

	server := rpc.NewServer(conf.Listen, oracle, conf.Network())
	err = server.Start()
	if err != nil {
		return err
	}
	log.Infof("JSON-RPC server listening on %s", server.Address())

	<-interrupt
	log.Infof("Served %d requests", server.RequestCount())
	return server.Stop()
}
