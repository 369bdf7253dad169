package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

func main() {
	cfg, subCmd, subConfig, err := parseCommandLine(os.Args[1:])
	if err != nil {
		if isHelpError(err) {
			printHelpAndExit(err)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var result interface{}
	switch subCmd {
	case simplicitySubCmd + " " + infoSubCmd:
		result, err = info(subConfig.(*infoConfig))
	case simplicitySubCmd + " " + sighashSubCmd:
		result, err = sighash(subConfig.(*sighashConfig))
	case keypairSubCmd + " " + generateSubCmd:
		result, err = keypairGenerate(subConfig.(*keypairGenerateConfig))
	case txSubCmd + " " + decodeSubCmd:
		result, err = txDecode(subConfig.(*txDecodeConfig))
	case addressSubCmd + " " + inspectSubCmd:
		result, err = addressInspect(subConfig.(*addressInspectConfig))
	case daemonSubCmd:
		err = startDaemon(subConfig.(*daemonConfig))
		if err != nil {
			printErrorAndExit(err, cfg.YAML)
		}
		return
	default:
		err = errors.Errorf("Unknown sub-command '%s'", subCmd)
	}

	if err != nil {
		printErrorAndExit(err, cfg.YAML)
	}
	err = printResult(os.Stdout, result, cfg.YAML)
	if err != nil {
		printErrorAndExit(err, cfg.YAML)
	}
}
