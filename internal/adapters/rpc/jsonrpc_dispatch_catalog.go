package rpc

import "encoding/json"

func (s *Server) dispatchCatalogRPC(method string, rawParams json.RawMessage) (any, *rpcError, bool) {
	switch method {
	case "catalog.restaurants.list":
		result, rpcErr := callWithoutParams(func() (any, error) {
			return map[string]any{"restaurants": s.service.ListRestaurants()}, nil
		})
		return result, rpcErr, true
	case "catalog.restaurant.get":
		result, rpcErr := callWithSingleStringParam(rawParams, func(restaurantID string) (any, error) {
			restaurant, err := s.service.GetRestaurant(restaurantID)
			if err != nil {
				return nil, err
			}
			return map[string]any{"restaurant": restaurant}, nil
		})
		return result, rpcErr, true
	case "catalog.search":
		query, err := decodeOptionalStringParam(rawParams)
		if err != nil {
			return nil, rpcInvalidParams(), true
		}
		return map[string]any{"restaurants": s.service.SearchRestaurants(query)}, nil, true
	default:
		return nil, nil, false
	}
}
