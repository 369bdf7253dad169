package rpc

import (
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/app/actions"
)

// handleAddressInspect handles address_inspect commands.
func handleAddressInspect(s *Server, params json.RawMessage) (interface{}, error) {
	request := &actions.AddressInspectRequest{}
	err := parseParams(params, request)
	if err != nil {
		return nil, err
	}

	result, err := actions.InspectAddress(request)
	if err != nil {
		return nil, applicationError(err, ErrCodeProgram)
	}
	return result, nil
}
