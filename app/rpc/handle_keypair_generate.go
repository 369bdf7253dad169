package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/app/actions"
)

// handleKeypairGenerate handles keypair_generate commands. It takes no
// parameters.
func handleKeypairGenerate(s *Server, _ json.RawMessage) (interface{}, error) {
	result, err := actions.GenerateKeypair(s.oracle)
	if err != nil {
		return nil, NewRPCError(ErrCodeInternal, err.Error())
	}
	return result, nil
}
