package main

import (
	"os"

	"github.com/halsimplicity/halsimplicity/domain/signer"
	"github.com/halsimplicity/halsimplicity/infrastructure/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	simplicitySubCmd = "simplicity"
	infoSubCmd       = "info"
	sighashSubCmd    = "sighash"
	keypairSubCmd    = "keypair"
	generateSubCmd   = "generate"
	txSubCmd         = "tx"
	decodeSubCmd     = "decode"
	addressSubCmd    = "address"
	inspectSubCmd    = "inspect"
	daemonSubCmd     = "daemon"
)

type configFlags struct {
	YAML bool `long:"yaml" short:"y" description:"Print the output as YAML instead of JSON"`
	config.NetworkFlags
}

type signerFlags struct {
	Signer string `long:"signer" description:"Signature oracle {secp256k1, btcec}" default:"secp256k1"`
}

func (sf *signerFlags) oracle() (signer.Oracle, error) {
	return signer.ByName(sf.Signer)
}

type infoConfig struct {
	State *string `long:"state" short:"s" description:"32-byte state commitment to put alongside the program when generating addresses (hex)"`
	Args  struct {
		Program string  `positional-arg-name:"program" description:"A Simplicity program (hex or base64)" required:"yes"`
		Witness *string `positional-arg-name:"witness" description:"The witness data of the program (hex or base64)"`
	} `positional-args:"yes"`
	config.NetworkFlags
}

type sighashConfig struct {
	GenesisHash *string  `long:"genesis-hash" short:"g" description:"Genesis hash of the blockchain the transaction belongs to (hex)"`
	SecretKey   *string  `long:"secret-key" short:"x" description:"Secret key to sign the transaction with (hex)"`
	PublicKey   *string  `long:"public-key" short:"p" description:"Public key which is checked against secret-key (if provided) and the signature (if provided) (hex)"`
	Signature   *string  `long:"signature" short:"s" description:"Signature to validate; requires public-key (hex)"`
	InputUTXOs  []string `long:"input-utxo" short:"i" description:"An input UTXO in the form <scriptPubKey>:<asset ID or commitment>:<amount or value commitment>; give one per transaction input"`
	Args        struct {
		Tx           string  `positional-arg-name:"tx" description:"Transaction to sign (hex) or PSET (base64)" required:"yes"`
		InputIndex   uint32  `positional-arg-name:"input-index" description:"The index of the input to sign" required:"yes"`
		CMR          string  `positional-arg-name:"cmr" description:"CMR of the input program (hex)" required:"yes"`
		ControlBlock *string `positional-arg-name:"control-block" description:"Taproot control block of the input program (hex)"`
	} `positional-args:"yes"`
	signerFlags
}

type keypairGenerateConfig struct {
	signerFlags
}

type txDecodeConfig struct {
	Args struct {
		RawTx string `positional-arg-name:"raw-tx" description:"Raw transaction (hex)" required:"yes"`
	} `positional-args:"yes"`
	config.NetworkFlags
}

type addressInspectConfig struct {
	Args struct {
		Address string `positional-arg-name:"address" description:"An Elements address, confidential or not" required:"yes"`
	} `positional-args:"yes"`
}

type daemonConfig struct {
	config.DaemonFlags
}

// parseCommandLine parses args and returns the name of the selected
// sub-command, e.g. "simplicity info", with its configuration.
func parseCommandLine(args []string) (cfg *configFlags, subCommand string, subConfig interface{}, err error) {
	cfg = &configFlags{}
	parser := flags.NewParser(cfg, flags.HelpFlag)

	simplicityCommand, err := parser.AddCommand(simplicitySubCmd, "Simplicity program tools",
		"Decode Simplicity programs and compute signature hashes", &struct{}{})
	if err != nil {
		return nil, "", nil, err
	}
	infoConf := &infoConfig{}
	_, err = simplicityCommand.AddCommand(infoSubCmd, "Parse a Simplicity program and decode it",
		"Decodes a program, infers its type, computes its commitments and derives its addresses", infoConf)
	if err != nil {
		return nil, "", nil, err
	}
	sighashConf := &sighashConfig{}
	_, err = simplicityCommand.AddCommand(sighashSubCmd, "Compute signature hashes or signatures for use with Simplicity",
		"Computes the SIGHASH_ALL signature hash of an input, and optionally signs it or verifies a signature", sighashConf)
	if err != nil {
		return nil, "", nil, err
	}

	keypairCommand, err := parser.AddCommand(keypairSubCmd, "Key pair tools", "Key pair tools", &struct{}{})
	if err != nil {
		return nil, "", nil, err
	}
	keypairGenerateConf := &keypairGenerateConfig{}
	_, err = keypairCommand.AddCommand(generateSubCmd, "Generate a random key pair",
		"Generates a random secp256k1 key pair", keypairGenerateConf)
	if err != nil {
		return nil, "", nil, err
	}

	txCommand, err := parser.AddCommand(txSubCmd, "Transaction tools", "Transaction tools", &struct{}{})
	if err != nil {
		return nil, "", nil, err
	}
	txDecodeConf := &txDecodeConfig{}
	_, err = txCommand.AddCommand(decodeSubCmd, "Decode a raw transaction",
		"Decodes a raw Elements transaction to JSON", txDecodeConf)
	if err != nil {
		return nil, "", nil, err
	}

	addressCommand, err := parser.AddCommand(addressSubCmd, "Address tools", "Address tools", &struct{}{})
	if err != nil {
		return nil, "", nil, err
	}
	addressInspectConf := &addressInspectConfig{}
	_, err = addressCommand.AddCommand(inspectSubCmd, "Inspect an address",
		"Decodes an Elements address into its network, type and output script", addressInspectConf)
	if err != nil {
		return nil, "", nil, err
	}

	daemonConf := &daemonConfig{DaemonFlags: *config.DefaultDaemonFlags()}
	_, err = parser.AddCommand(daemonSubCmd, "Run the JSON-RPC daemon",
		"Serves the tools over JSON-RPC 2.0 on HTTP", daemonConf)
	if err != nil {
		return nil, "", nil, err
	}

	_, err = parser.ParseArgs(args)
	if err != nil {
		return nil, "", nil, err
	}

	active := parser.Command.Active
	if active == nil {
		return nil, "", nil, errors.New("a sub-command is required")
	}
	subCommand = active.Name
	if active.Active != nil {
		subCommand += " " + active.Active.Name
	}

	switch subCommand {
	case simplicitySubCmd + " " + infoSubCmd:
		config.CombineNetworkFlags(&infoConf.NetworkFlags, &cfg.NetworkFlags)
		err = infoConf.ResolveNetwork(parser)
		subConfig = infoConf
	case simplicitySubCmd + " " + sighashSubCmd:
		_, err = sighashConf.oracle()
		subConfig = sighashConf
	case keypairSubCmd + " " + generateSubCmd:
		_, err = keypairGenerateConf.oracle()
		subConfig = keypairGenerateConf
	case txSubCmd + " " + decodeSubCmd:
		config.CombineNetworkFlags(&txDecodeConf.NetworkFlags, &cfg.NetworkFlags)
		err = txDecodeConf.ResolveNetwork(parser)
		subConfig = txDecodeConf
	case addressSubCmd + " " + inspectSubCmd:
		subConfig = addressInspectConf
	case daemonSubCmd:
		config.CombineNetworkFlags(&daemonConf.NetworkFlags, &cfg.NetworkFlags)
		err = daemonConf.ApplyConfigFile(argsAfter(args, daemonSubCmd))
		subConfig = daemonConf
	default:
		err = errors.Errorf("%s requires a sub-command", subCommand)
	}
	if err != nil {
		return nil, "", nil, err
	}
	return cfg, subCommand, subConfig, nil
}

// argsAfter returns the arguments following the first occurrence of
// command.
func argsAfter(args []string, command string) []string {
	for i, arg := range args {
		if arg == command {
			return args[i+1:]
		}
	}
	return nil
}

func isHelpError(err error) bool {
	var flagsErr *flags.Error
	return errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp
}

func printHelpAndExit(err error) {
	os.Stdout.WriteString(err.Error() + "\n")
	os.Exit(0)
}
