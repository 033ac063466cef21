package rpc

import "encoding/json"

func callWithoutParams(call func() (any, error)) (any, *rpcError) {
	result, err := call()
	if err != nil {
		return nil, mapServiceError(err)
	}
	return result, nil
}

func callWithSingleStringParam(rawParams json.RawMessage, call func(string) (any, error)) (any, *rpcError) {
	param, err := decodeSingleStringParam(rawParams)
	if err != nil {
		return nil, rpcInvalidParams()
	}
	result, err := call(param)
	if err != nil {
		return nil, mapServiceError(err)
	}
	return result, nil
}
