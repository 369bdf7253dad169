package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/app/actions"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

// handleTxDecode handles tx_decode commands.
func handleTxDecode(s *Server, params json.RawMessage) (interface{}, error) {
	request := &actions.TxDecodeRequest{}
	err := parseParams(params, request)
	if err != nil {
		return nil, err
	}
	if request.Network != "" {
		if _, err := taproot.NetworkByName(request.Network); err != nil {
			return nil, NewRPCError(ErrCodeInvalidParams, err.Error())
		}
	}

	result, err := actions.DecodeTransaction(request)
	if err != nil {
		return nil, applicationError(err, ErrCodeProgram)
	}
	return result, nil
}
