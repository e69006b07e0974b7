// Package storage persists generated audio and hands back a URL the
// frontend can fetch. Exactly one backend is active per process: the local
// directory served under /storage, or an Azure blob container when a
// connection string is configured. Names are caller-chosen and overwriting
// an existing object is allowed.
package storage

import "context"

type Store interface {
	// Save persists data under name and returns a retrievable URL.
	Save(ctx context.Context, name string, data []byte) (string, error)
}
