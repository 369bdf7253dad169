package rpcclient

import "github.com/halsimplicity/halsimplicity/app/rpc"

// GetVersion sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GetVersion() (*rpc.VersionResult, error) {
	result := &rpc.VersionResult{}
	err := c.Call("version", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
