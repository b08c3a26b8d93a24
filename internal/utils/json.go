package utils

import (
	"github.com/bytedance/sonic"
)

// ToJSONBytes marshals a value to JSON bytes.
func ToJSONBytes(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

// FromJSONBytes unmarshals JSON bytes into a value.
func FromJSONBytes(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}
