package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/app/actions"
)

// handleSimplicitySighash handles simplicity_sighash commands.
func handleSimplicitySighash(s *Server, params json.RawMessage) (interface{}, error) {
	request := &actions.SighashRequest{}
	err := parseParams(params, request)
	if err != nil {
		return nil, err
	}

	result, err := actions.Sighash(s.oracle, request)
	if err != nil {
		return nil, applicationError(err, ErrCodeSighash)
	}
	return result, nil
}
