package rpcclient

import "github.com/halsimplicity/halsimplicity/app/actions"

// DecodeTransaction sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) DecodeTransaction(request *actions.TxDecodeRequest) (*actions.TxDecodeResult, error) {
	result := &actions.TxDecodeResult{}
	err := c.Call("tx_decode", request, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
