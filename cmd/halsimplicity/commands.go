package main

import (
	"github.com/halsimplicity/halsimplicity/app/actions"
)

func info(conf *infoConfig) (*actions.InfoResult, error) {
	return actions.Info(&actions.InfoRequest{
		Program: conf.Args.Program,
		Witness: conf.Args.Witness,
		State:   conf.State,
		Network: conf.Network().Name,
	})
}

func sighash(conf *sighashConfig) (*actions.SighashResult, error) {
	oracle, err := conf.oracle()
	if err != nil {
		return nil, err
	}
	return actions.Sighash(oracle, &actions.SighashRequest{
		Tx:           conf.Args.Tx,
		InputIndex:   conf.Args.InputIndex,
		CMR:          conf.Args.CMR,
		ControlBlock: conf.Args.ControlBlock,
		GenesisHash:  conf.GenesisHash,
		SecretKey:    conf.SecretKey,
		PublicKey:    conf.PublicKey,
		Signature:    conf.Signature,
		InputUTXOs:   conf.InputUTXOs,
	})
}

func keypairGenerate(conf *keypairGenerateConfig) (*actions.KeypairResult, error) {
	oracle, err := conf.oracle()
	if err != nil {
		return nil, err
	}
	return actions.GenerateKeypair(oracle)
}

// txDecode leaves the network empty unless one was selected explicitly, so
// that the regtest default of tx decoding applies.
func txDecode(conf *txDecodeConfig) (*actions.TxDecodeResult, error) {
	network := ""
	if conf.Liquid || conf.Testnet || conf.Regtest {
		network = conf.Network().Name
	}
	return actions.DecodeTransaction(&actions.TxDecodeRequest{
		RawTx:   conf.Args.RawTx,
		Network: network,
	})
}

func addressInspect(conf *addressInspectConfig) (*actions.AddressInspectResult, error) {
	return actions.InspectAddress(&actions.AddressInspectRequest{Address: conf.Args.Address})
}
