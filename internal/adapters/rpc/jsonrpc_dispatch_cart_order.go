package rpc

import "encoding/json"

func (s *Server) dispatchCartOrderRPC(method string, rawParams json.RawMessage) (any, *rpcError, bool) {
	switch method {
	case "cart.add":
		itemID, quantity, err := decodeCartAddParams(rawParams)
		if err != nil {
			return nil, rpcInvalidParams(), true
		}
		snap, err := s.service.AddToCart(itemID, quantity)
		if err != nil {
			return nil, mapServiceError(err), true
		}
		return map[string]any{"cart": snap}, nil, true
	case "cart.remove_line":
		index, err := decodeIndexParam(rawParams)
		if err != nil {
			return nil, rpcInvalidParams(), true
		}
		snap, err := s.service.RemoveCartLine(index)
		if err != nil {
			return nil, mapServiceError(err), true
		}
		return map[string]any{"cart": snap}, nil, true
	case "cart.get":
		result, rpcErr := callWithoutParams(func() (any, error) {
			snap, err := s.service.GetCart()
			if err != nil {
				return nil, err
			}
			return map[string]any{"cart": snap}, nil
		})
		return result, rpcErr, true
	case "order.confirm":
		result, rpcErr := callWithoutParams(func() (any, error) {
			order, err := s.service.ConfirmOrder()
			if err != nil {
				return nil, err
			}
			return map[string]any{"order": order}, nil
		})
		return result, rpcErr, true
	case "order.list":
		result, rpcErr := callWithoutParams(func() (any, error) {
			orders, err := s.service.GetOrders()
			if err != nil {
				return nil, err
			}
			return map[string]any{"orders": orders}, nil
		})
		return result, rpcErr, true
	default:
		return nil, nil, false
	}
}
