package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/halsimplicity/halsimplicity/infrastructure/network/rpcclient"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		printErrorAndExit(fmt.Sprintf("error parsing command-line arguments: %s", err))
	}

	if cfg.ListCommands {
		printCommands()
		return
	}

	client := rpcclient.NewRPCClient(cfg.RPCServer)
	client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)

	if cfg.RequestJSON != "" {
		responseString, err := client.PostJSON(cfg.RequestJSON)
		if err != nil {
			printErrorAndExit(fmt.Sprintf("error posting the request to the RPC server: %s", err))
		}
		fmt.Println(responseString)
		return
	}

	responseString, err := postCommand(client, cfg.CommandAndParameters)
	if err != nil {
		printErrorAndExit(err.Error())
	}
	fmt.Println(responseString)
}

func postCommand(client *rpcclient.RPCClient, commandAndParameters []string) (string, error) {
	command, err := findCommand(commandAndParameters[0])
	if err != nil {
		return "", err
	}
	params, err := command.parseParameters(commandAndParameters[1:])
	if err != nil {
		return "", err
	}
	var result json.RawMessage
	err = client.Call(command.name, params, &result)
	if err != nil {
		return "", err
	}
	var indented bytes.Buffer
	err = json.Indent(&indented, result, "", "  ")
	if err != nil {
		return "", errors.Wrapf(err, "error formatting the result")
	}
	return indented.String(), nil
}

func printErrorAndExit(message string) {
	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(1)
}
