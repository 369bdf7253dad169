package rpcclient

import "github.com/halsimplicity/halsimplicity/app/actions"

// GenerateKeypair sends an RPC request respective to the function's name and returns the RPC server's response
func (c *RPCClient) GenerateKeypair() (*actions.KeypairResult, error) {
	result := &actions.KeypairResult{}
	err := c.Call("keypair_generate", nil, result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
