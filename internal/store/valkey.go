package store

import (
	"context"

	"github.com/valkey-io/valkey-go"
)

// ValkeyKV persists keys in a Valkey (or Redis compatible) server under a prefix.
type ValkeyKV struct {
	client valkey.Client
	prefix string
}

// NewValkeyKV wraps an existing client. An empty prefix defaults to "weather".
func NewValkeyKV(client valkey.Client, prefix string) *ValkeyKV {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyKV{client: client, prefix: prefix}
}

func (s *ValkeyKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	cmd := s.client.B().Get().Key(s.key(key)).Build()
	payload, err := s.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

func (s *ValkeyKV) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(value)).Build()
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyKV) Close() error {
	s.client.Close()
	return nil
}

func (s *ValkeyKV) key(k string) string {
	return s.prefix + ":" + k
}
