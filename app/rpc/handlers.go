package rpc

import (
	"bytes"
	"encoding/json"

	"github.com/halsimplicity/halsimplicity/domain/simplicity/simplicityerrors"
	"github.com/pkg/errors"
)

type commandHandler func(s *Server, params json.RawMessage) (interface{}, error)

// rpcHandlers maps RPC method names to their handlers.
var rpcHandlers map[string]commandHandler

func init() {
	rpcHandlers = map[string]commandHandler{
		"simplicity_info":    handleSimplicityInfo,
		"simplicity_sighash": handleSimplicitySighash,
		"keypair_generate":   handleKeypairGenerate,
		"tx_decode":          handleTxDecode,
		"address_inspect":    handleAddressInspect,
		"version":            handleVersion,
	}
}

// parseParams decodes named parameters into target. Unknown parameters are
// rejected.
func parseParams(params json.RawMessage, target interface{}) error {
	if len(params) == 0 || bytes.Equal(params, nullID) {
		return NewRPCError(ErrCodeInvalidParams, "Missing parameters")
	}
	decoder := json.NewDecoder(bytes.NewReader(params))
	decoder.DisallowUnknownFields()
	err := decoder.Decode(target)
	if err != nil {
		return NewRPCError(ErrCodeInvalidParams, "Invalid parameters: "+err.Error())
	}
	return nil
}

// applicationError converts a failure of a domain operation into an
// RPCError. Witness errors always get ErrCodeWitness; everything else gets
// code.
func applicationError(err error, code int) *RPCError {
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		return rpcErr
	}
	if errors.Is(err, simplicityerrors.ErrWitnessLengthMismatch) {
		code = ErrCodeWitness
	}
	result := NewRPCError(code, err.Error())
	var simplicityErr simplicityerrors.SimplicityError
	if errors.As(err, &simplicityErr) {
		result.Data = &ErrorData{Kind: simplicityErr.Kind()}
	}
	return result
}
