package config

import (
	"fmt"
	"os"

	"github.com/halsimplicity/halsimplicity/domain/taproot"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Liquid  bool `long:"liquid" description:"Use the Liquid network"`
	Testnet bool `long:"testnet" description:"Use the Liquid test network"`
	Regtest bool `long:"regtest" description:"Use the Elements regression test network"`

	ActiveNetwork *taproot.Network
}

// ResolveNetwork parses the network command line argument and sets ActiveNetwork accordingly.
// It returns error if more than one network was selected, nil otherwise.
// Liquid is used when no network is selected.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	networkFlags.ActiveNetwork = taproot.Liquid
	// Multiple networks can't be selected simultaneously.
	numNets := 0
	if networkFlags.Liquid {
		numNets++
	}
	if networkFlags.Testnet {
		numNets++
		networkFlags.ActiveNetwork = taproot.LiquidTestnet
	}
	if networkFlags.Regtest {
		numNets++
		networkFlags.ActiveNetwork = taproot.ElementsRegtest
	}
	if numNets > 1 {
		message := "Multiple networks parameters (liquid, testnet, regtest) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		if parser != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
		}
		return err
	}
	return nil
}

// Network returns the ActiveNetwork
func (networkFlags *NetworkFlags) Network() *taproot.Network {
	return networkFlags.ActiveNetwork
}

// CombineNetworkFlags merges the network flags given before a sub-command
// into the flags of the sub-command.
func CombineNetworkFlags(dst, src *NetworkFlags) {
	dst.Liquid = dst.Liquid || src.Liquid
	dst.Testnet = dst.Testnet || src.Testnet
	dst.Regtest = dst.Regtest || src.Regtest
}
