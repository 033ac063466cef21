package rpc

import "encoding/json"

func (s *Server) dispatchNavSessionRPC(method string, rawParams json.RawMessage) (any, *rpcError, bool) {
	switch method {
	case "nav.goto":
		result, rpcErr := callWithSingleStringParam(rawParams, func(page string) (any, error) {
			snap, err := s.service.Navigate(page)
			if err != nil {
				return nil, err
			}
			return map[string]any{"session": snap}, nil
		})
		return result, rpcErr, true
	case "nav.apply":
		result, rpcErr := callWithSingleStringParam(rawParams, func(trigger string) (any, error) {
			snap, err := s.service.Apply(trigger)
			if err != nil {
				return nil, err
			}
			return map[string]any{"session": snap}, nil
		})
		return result, rpcErr, true
	case "session.get":
		result, rpcErr := callWithoutParams(func() (any, error) {
			return map[string]any{"session": s.service.Snapshot()}, nil
		})
		return result, rpcErr, true
	case "metrics.get":
		result, rpcErr := callWithoutParams(func() (any, error) {
			return s.service.GetMetrics(), nil
		})
		return result, rpcErr, true
	default:
		return nil, nil, false
	}
}
