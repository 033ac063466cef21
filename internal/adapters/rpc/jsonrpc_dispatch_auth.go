package rpc

import "encoding/json"

func (s *Server) dispatchAuthRPC(method string, rawParams json.RawMessage) (any, *rpcError, bool) {
	switch method {
	case "auth.login":
		username, password, err := decodeLoginParams(rawParams)
		if err != nil {
			return nil, rpcInvalidParams(), true
		}
		snap, err := s.service.Login(username, password)
		if err != nil {
			return nil, mapServiceError(err), true
		}
		return map[string]any{"session": snap}, nil, true
	case "auth.logout":
		result, rpcErr := callWithoutParams(func() (any, error) {
			snap, err := s.service.Logout()
			if err != nil {
				return nil, err
			}
			return map[string]any{"session": snap}, nil
		})
		return result, rpcErr, true
	default:
		return nil, nil, false
	}
}
