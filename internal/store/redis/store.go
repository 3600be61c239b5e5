package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Store handles the hosted content tables, settings, accounts and sessions.
//
// A table is a set of ids (TableKey) plus one JSON value per record
// (RecordKey). Records never expire.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks that the hosted store answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveRecord inserts or replaces one record of table.
func (s *Store) SaveRecord(ctx context.Context, table, id string, record any) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", table, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, RecordKey(table, id), data, 0)
		pipe.SAdd(ctx, TableKey(table), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save %s record %s: %w", table, id, err)
	}

	return nil
}

// DeleteRecord removes one record of table. Unknown ids are not an error.
func (s *Store) DeleteRecord(ctx context.Context, table, id string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, RecordKey(table, id))
		pipe.SRem(ctx, TableKey(table), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s record %s: %w", table, id, err)
	}

	return nil
}

// RawRecords returns the JSON value of every record in table, unordered.
// Ids left in the set without a value are skipped.
func (s *Store) RawRecords(ctx context.Context, table string) ([][]byte, error) {
	ids, err := s.client.SMembers(ctx, TableKey(table)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s ids: %w", table, err)
	}

	if len(ids) == 0 {
		return [][]byte{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RecordKey(table, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", table, err)
	}

	out := make([][]byte, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		out = append(out, []byte(str))
	}

	return out, nil
}

// LoadTable decodes every record of table into T. A record that does not
// decode fails the whole table.
func LoadTable[T any](ctx context.Context, s *Store, table string) ([]T, error) {
	raws, err := s.RawRecords(ctx, table)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s record: %w", table, err)
		}
		items = append(items, item)
	}

	return items, nil
}
