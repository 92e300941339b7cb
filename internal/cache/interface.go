package cache

import (
	"context"
	"time"
)

type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const ReceiptKeyPrefix = "receipt"

func ReceiptKey(receiptID string) string {
	return Key(ReceiptKeyPrefix, receiptID)
}

// Noop is used when no redis is configured: every Get misses and writes are dropped.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, string) error                  { return nil }
func (Noop) Close() error                                          { return nil }
