package main

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

func TestParseInfoCommand(t *testing.T) {
	tests := []struct {
		name            string
		args            []string
		expectedWitness *string
		expectedNetwork *taproot.Network
		expectedYAML    bool
	}{
		{
			name:            "program only",
			args:            []string{"simplicity", "info", "24"},
			expectedNetwork: taproot.Liquid,
		},
		{
			name:            "empty witness",
			args:            []string{"simplicity", "info", "24", ""},
			expectedWitness: stringPointer(""),
			expectedNetwork: taproot.Liquid,
		},
		{
			name:            "witness and network after the sub-command",
			args:            []string{"--yaml", "simplicity", "info", "--testnet", "24", "80"},
			expectedWitness: stringPointer("80"),
			expectedNetwork: taproot.LiquidTestnet,
			expectedYAML:    true,
		},
		{
			name:            "network before the sub-command",
			args:            []string{"--regtest", "simplicity", "info", "24"},
			expectedNetwork: taproot.ElementsRegtest,
		},
	}

	for _, test := range tests {
		cfg, subCmd, subConfig, err := parseCommandLine(test.args)
		if err != nil {
			t.Fatalf("TestParseInfoCommand: %s: %+v", test.name, err)
		}
		if subCmd != "simplicity info" {
			t.Fatalf("TestParseInfoCommand: %s: unexpected sub-command %s", test.name, subCmd)
		}
		conf := subConfig.(*infoConfig)
		if conf.Args.Program != "24" {
			t.Fatalf("TestParseInfoCommand: %s: unexpected program %s", test.name, conf.Args.Program)
		}
		if (conf.Args.Witness == nil) != (test.expectedWitness == nil) ||
			(conf.Args.Witness != nil && *conf.Args.Witness != *test.expectedWitness) {
			t.Fatalf("TestParseInfoCommand: %s: expected witness %s, got %s",
				test.name, spew.Sdump(test.expectedWitness), spew.Sdump(conf.Args.Witness))
		}
		if conf.Network() != test.expectedNetwork {
			t.Fatalf("TestParseInfoCommand: %s: expected network %s, got %s",
				test.name, test.expectedNetwork.Name, conf.Network().Name)
		}
		if cfg.YAML != test.expectedYAML {
			t.Fatalf("TestParseInfoCommand: %s: expected yaml %t", test.name, test.expectedYAML)
		}
	}
}

func TestParseSighashCommand(t *testing.T) {
	args := []string{"simplicity", "sighash", "-i", "51:aa:1", "--input-utxo", "52:bb:2",
		"-g", "00", "-x", "11", "-p", "22", "-s", "33", "--signer", "btcec", "0200", "1", "cmr", "cb"}
	_, subCmd, subConfig, err := parseCommandLine(args)
	if err != nil {
		t.Fatalf("TestParseSighashCommand: %+v", err)
	}
	if subCmd != "simplicity sighash" {
		t.Fatalf("TestParseSighashCommand: unexpected sub-command %s", subCmd)
	}
	conf := subConfig.(*sighashConfig)
	if conf.Args.Tx != "0200" || conf.Args.InputIndex != 1 || conf.Args.CMR != "cmr" ||
		conf.Args.ControlBlock == nil || *conf.Args.ControlBlock != "cb" {
		t.Fatalf("TestParseSighashCommand: unexpected positional arguments: %s", spew.Sdump(conf.Args))
	}
	if len(conf.InputUTXOs) != 2 || conf.InputUTXOs[1] != "52:bb:2" {
		t.Fatalf("TestParseSighashCommand: unexpected input UTXOs: %v", conf.InputUTXOs)
	}
	if *conf.GenesisHash != "00" || *conf.SecretKey != "11" || *conf.PublicKey != "22" || *conf.Signature != "33" {
		t.Fatalf("TestParseSighashCommand: unexpected options: %s", spew.Sdump(conf))
	}
	if conf.Signer != "btcec" {
		t.Fatalf("TestParseSighashCommand: unexpected signer %s", conf.Signer)
	}

	_, _, subConfig, err = parseCommandLine([]string{"simplicity", "sighash", "0200", "0", "cmr"})
	if err != nil {
		t.Fatalf("TestParseSighashCommand: %+v", err)
	}
	conf = subConfig.(*sighashConfig)
	if conf.Args.ControlBlock != nil || conf.GenesisHash != nil || conf.Signer != "secp256k1" {
		t.Fatalf("TestParseSighashCommand: unexpected defaults: %s", spew.Sdump(conf))
	}
}

func TestParseAddressInspectCommand(t *testing.T) {
	_, subCmd, subConfig, err := parseCommandLine([]string{"address", "inspect", "ex1qexample"})
	if err != nil {
		t.Fatalf("TestParseAddressInspectCommand: %+v", err)
	}
	if subCmd != "address inspect" {
		t.Fatalf("TestParseAddressInspectCommand: unexpected sub-command %s", subCmd)
	}
	conf := subConfig.(*addressInspectConfig)
	if conf.Args.Address != "ex1qexample" {
		t.Fatalf("TestParseAddressInspectCommand: unexpected arguments: %s", spew.Sdump(conf.Args))
	}
}

func TestParseCommandLineErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no sub-command", args: nil},
		{name: "missing nested sub-command", args: []string{"simplicity"}},
		{name: "missing program", args: []string{"simplicity", "info"}},
		{name: "two networks", args: []string{"--testnet", "simplicity", "info", "--regtest", "24"}},
		{name: "bad input index", args: []string{"simplicity", "sighash", "0200", "first", "cmr"}},
		{name: "unknown signer", args: []string{"keypair", "generate", "--signer", "openssl"}},
		{name: "unknown sub-command", args: []string{"wallet"}},
		{name: "missing address", args: []string{"address", "inspect"}},
	}
	for _, test := range tests {
		_, _, _, err := parseCommandLine(test.args)
		if err == nil {
			t.Fatalf("TestParseCommandLineErrors: %s: expected an error", test.name)
		}
		if isHelpError(err) {
			t.Fatalf("TestParseCommandLineErrors: %s: unexpected help error", test.name)
		}
	}

	_, _, _, err := parseCommandLine([]string{"simplicity", "info", "--help"})
	if !isHelpError(err) {
		t.Fatalf("TestParseCommandLineErrors: expected a help error, got %+v", err)
	}
}

func stringPointer(s string) *string {
	return &s
}
