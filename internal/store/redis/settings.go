package redis

import (
	"context"
	"encoding/json"
	"fmt"
)

// Settings returns every site setting as raw JSON, keyed by setting name.
func (s *Store) Settings(ctx context.Context) (map[string]json.RawMessage, error) {
	fields, err := s.client.HGetAll(ctx, KeySettings).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		out[k] = json.RawMessage(v)
	}
	return out, nil
}

// SetSetting stores value under key, JSON encoded.
func (s *Store) SetSetting(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal setting %s: %w", key, err)
	}

	if err := s.client.HSet(ctx, KeySettings, key, data).Err(); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
