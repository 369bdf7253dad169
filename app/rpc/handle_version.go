package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/jets"
	"github.com/halsimplicity/halsimplicity/version"
)

// VersionResult is the result of the version command.
type VersionResult struct {
	Version string `json:"version"`
	JSONRPC string `json:"jsonrpc"`
	Jets    string `json:"jets"`
	Network string `json:"network"`
	Signer  string `json:"signer"`
}

// handleVersion implements the version command.
func handleVersion(s *Server, _ json.RawMessage) (interface{}, error) {
	return &VersionResult{
		Version: version.Version(),
		JSONRPC: Version,
		Jets:    jets.SetName,
		Network: s.network.Name,
		Signer:  s.oracle.Name(),
	}, nil
}
