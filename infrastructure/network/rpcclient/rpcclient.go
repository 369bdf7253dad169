package rpcclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/halsimplicity/halsimplicity/app/rpc"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// RPCClient is a JSON-RPC 2.0 client of the halsimplicity daemon.
type RPCClient struct {
	rpcAddress string
	url        string
	httpClient *http.Client
	nextID     uint64
}

// NewRPCClient creates a client of the daemon at rpcAddress, given either
// as host:port or as a full http URL.
func NewRPCClient(rpcAddress string) *RPCClient {
	url := rpcAddress
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "http://" + url
	}
	return &RPCClient{
		rpcAddress: rpcAddress,
		url:        url,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout sets the timeout by which to wait for RPC responses
func (c *RPCClient) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// Address returns the address the RPC client connects to
func (c *RPCClient) Address() string {
	return c.rpcAddress
}

// ErrRPC is an error in the RPC protocol
var ErrRPC = errors.New("rpc error")

// RPCError is an error response returned by the server.
type RPCError struct {
	Code    int
	Message string
	Kind    string
}

func (e *RPCError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s (code %d, %s)", e.Message, e.Code, e.Kind)
	}
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// Is makes every RPCError match ErrRPC.
func (e *RPCError) Is(target error) bool {
	return target == ErrRPC
}

func convertRPCError(rpcError *rpc.RPCError) error {
	result := &RPCError{Code: rpcError.Code, Message: rpcError.Message}
	if data, ok := rpcError.Data.(map[string]interface{}); ok {
		if kind, ok := data["kind"].(string); ok {
			result.Kind = kind
		}
	}
	return errors.WithStack(result)
}

// Call sends method with the given named params and decodes the result into
// result. params may be nil.
func (c *RPCClient) Call(method string, params interface{}, result interface{}) error {
	request := &rpc.Request{
		JSONRPC: rpc.Version,
		Method:  method,
		ID:      json.RawMessage(fmt.Sprintf("%d", atomic.AddUint64(&c.nextID, 1))),
	}
	if params != nil {
		marshalledParams, err := json.Marshal(params)
		if err != nil {
			return errors.Wrapf(err, "error marshalling the params of %s", method)
		}
		request.Params = marshalledParams
	}
	requestBytes, err := json.Marshal(request)
	if err != nil {
		return errors.Wrapf(err, "error marshalling the request")
	}

	responseBytes, err := c.post(requestBytes)
	if err != nil {
		return err
	}
	response := &rpc.Response{}
	err = json.Unmarshal(responseBytes, response)
	if err != nil {
		return errors.Wrapf(err, "error parsing the response from the RPC server")
	}
	if response.Error != nil {
		return convertRPCError(response.Error)
	}
	if result == nil {
		return nil
	}
	err = json.Unmarshal(response.Result, result)
	if err != nil {
		return errors.Wrapf(err, "error parsing the result of %s", method)
	}
	return nil
}

// PostJSON sends a raw JSON-RPC request and returns the raw response.
func (c *RPCClient) PostJSON(requestJSON string) (string, error) {
	if !json.Valid([]byte(requestJSON)) {
		return "", errors.Errorf("error parsing the request: invalid JSON")
	}
	responseBytes, err := c.post([]byte(requestJSON))
	if err != nil {
		return "", err
	}
	return string(responseBytes), nil
}

func (c *RPCClient) post(requestBytes []byte) ([]byte, error) {
	log.Tracef("Sending request to %s: %s", c.url, requestBytes)
	httpResponse, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(requestBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "error sending the request to the RPC server")
	}
	defer httpResponse.Body.Close()

	responseBytes, err := ioutil.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error receiving the response from the RPC server")
	}
	if httpResponse.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if httpResponse.StatusCode != http.StatusOK {
		return nil, errors.Errorf("unexpected status from the RPC server: %s", httpResponse.Status)
	}
	return responseBytes, nil
}
