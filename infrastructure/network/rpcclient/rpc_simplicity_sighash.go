package rpcclient

import "github.com/halsimplicity/halsimplicity/app/actions"

// SimplicitySighash sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) SimplicitySighash(request *actions.SighashRequest) (*actions.SighashResult, error) {
	result := &actions.SighashResult{}
	err := c.Call("simplicity_sighash", request, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
