package repository

import (
	"context"
	"errors"
)

// memKV is an in-memory KeyValueStore. failing makes every operation
// return an error to exercise the fail-soft paths.
type memKV struct {
	data    map[string]string
	failing bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.failing {
		return "", false, errors.New("storage unavailable")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(ctx context.Context, key, value string) error {
	if m.failing {
		return errors.New("storage unavailable")
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	if m.failing {
		return errors.New("storage unavailable")
	}
	delete(m.data, key)
	return nil
}
