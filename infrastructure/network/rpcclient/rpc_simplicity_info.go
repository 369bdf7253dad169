package rpcclient

import "github.com/halsimplicity/halsimplicity/app/actions"

// SimplicityInfo sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) SimplicityInfo(request *actions.InfoRequest) (*actions.InfoResult, error) {
	result := &actions.InfoResult{}
	err := c.Call("simplicity_info", request, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
