package rpc

import (
	"encoding/json"
	"math"
	"strings"
)

func decodeSingleStringParam(raw json.RawMessage) (string, error) {
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 1 && arr[0] != "" {
		return arr[0], nil
	}
	return "", errInvalidParams
}

// decodeOptionalStringParam accepts no params, an empty array, or a single
// string. Used by catalog.search, where an absent query means "everything".
func decodeOptionalStringParam(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		switch len(arr) {
		case 0:
			return "", nil
		case 1:
			return arr[0], nil
		}
	}
	return "", errInvalidParams
}

func decodeLoginParams(raw json.RawMessage) (string, string, error) {
	// Preferred shape: ["username", "password"]
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 2 {
		return arr[0], arr[1], nil
	}

	// Alternative shape: { "username": ..., "password": ... }
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Username) != "" {
		return payload.Username, payload.Password, nil
	}
	return "", "", errInvalidParams
}

func decodeCartAddParams(raw json.RawMessage) (string, int, error) {
	var arr []any
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) == 2 {
		itemID, ok := arr[0].(string)
		if !ok || strings.TrimSpace(itemID) == "" {
			return "", 0, errInvalidParams
		}
		quantity, err := decodeStrictNonNegativeInt(arr[1])
		if err != nil || quantity > maxCartQuantity {
			return "", 0, errInvalidParams
		}
		return itemID, quantity, nil
	}

	var payload struct {
		ItemID   string `json:"item_id"`
		Quantity *int   `json:"quantity"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", 0, errInvalidParams
	}
	if strings.TrimSpace(payload.ItemID) == "" || payload.Quantity == nil {
		return "", 0, errInvalidParams
	}
	if *payload.Quantity < 0 || *payload.Quantity > maxCartQuantity {
		return "", 0, errInvalidParams
	}
	return payload.ItemID, *payload.Quantity, nil
}

func decodeIndexParam(raw json.RawMessage) (int, error) {
	var arr []any
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) != 1 {
		return 0, errInvalidParams
	}
	index, err := decodeStrictNonNegativeInt(arr[0])
	if err != nil {
		return 0, errInvalidParams
	}
	return index, nil
}

func decodeStrictNonNegativeInt(raw any) (int, error) {
	v, ok := raw.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidParams
	}
	if v < 0 || math.Trunc(v) != v {
		return 0, errInvalidParams
	}
	maxInt := float64(^uint(0) >> 1)
	if v > maxInt {
		return 0, errInvalidParams
	}
	return int(v), nil
}
