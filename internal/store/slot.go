package store

import "context"

// Slot is a named durable cell. Read reports ok=false when nothing has been
// written yet. Write replaces the whole value.
type Slot interface {
	Name() string
	Read(ctx context.Context) (data []byte, ok bool, err error)
	Write(ctx context.Context, data []byte) error
	Close() error
}
