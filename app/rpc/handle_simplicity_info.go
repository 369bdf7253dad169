package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/app/actions"
	"github.com/halsimplicity/halsimplicity/domain/taproot"
)

// handleSimplicityInfo handles simplicity_info commands.
func handleSimplicityInfo(s *Server, params json.RawMessage) (interface{}, error) {
	request := &actions.InfoRequest{}
	err := parseParams(params, request)
	if err != nil {
		return nil, err
	}
	if request.Network == "" {
		request.Network = s.network.Name
	} else if _, err := taproot.NetworkByName(request.Network); err != nil {
		return nil, NewRPCError(ErrCodeInvalidParams, err.Error())
	}

	result, err := actions.Info(request)
	if err != nil {
		return nil, applicationError(err, ErrCodeProgram)
	}
	return result, nil
}
