// Package jsonx wraps the Sonic JSON codec so callers don't import it
// directly. Drop-in for encoding/json Marshal/Unmarshal.
package jsonx

import "github.com/bytedance/sonic"

var api = sonic.ConfigDefault

func Marshal(v any) ([]byte, error) {
	return api.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return api.Unmarshal(data, v)
}
