// Package repository adapts the domain collections onto the key/value
// store. Each feature owns one key holding its whole collection as a JSON
// array; every save is a full-collection overwrite.
//
// Loads fail soft: a missing key, malformed stored payload, or a storage
// fault yields an empty collection. Nothing in this package returns a read
// error to its caller.
package repository

import (
	"context"
	"encoding/json"

	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// Storage keys, carried over from the original device-local layout.
const (
	eventsKey     = "daily-events"
	attendanceKey = "attendanceRecords"
	stepsKey      = "dailySteps"
	csrKey        = "csrEvents"
	profileKey    = "userProfile"
	remindersKey  = "reminders"
)

// loadRaw fetches and decodes a stored JSON document into dest. It returns
// false when the key is absent or the payload cannot be used; the caller
// substitutes its zero collection.
func loadRaw(ctx context.Context, kv ports.KeyValueStore, log *logger.Logger, key string, dest interface{}) bool {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.LogStorageFault("get", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.LogStorageFault("decode", key, err)
		return false
	}
	return true
}

// WipeAll deletes every stored collection. Used by the clear command.
func WipeAll(ctx context.Context, kv ports.KeyValueStore) error {
	keys := []string{eventsKey, attendanceKey, stepsKey, csrKey, profileKey, remindersKey}
	for _, key := range keys {
		if err := kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// saveRaw encodes and stores a JSON document under key.
func saveRaw(ctx context.Context, kv ports.KeyValueStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, string(raw))
}
