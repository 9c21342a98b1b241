package keyvalue

import "context"

// Store is the durable key-value surface the progress tracker writes through.
// Values are JSON documents; keys are namespaced by user upstream.
type Store interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any) error
	Del(ctx context.Context, keys ...string) error
}
