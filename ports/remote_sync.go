package ports

import "context"

// RemoteLocation identifies a file in a remote content repository.
type RemoteLocation struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Path  string `json:"path"`
	Token string `json:"token"`
}

// RemoteSyncPort reads and writes an opaque document blob at a remote
// location. The core never sees transport details; it only hands over a
// dehydrated JSON payload (push) or receives one for validation (pull).
type RemoteSyncPort interface {
	// Pull fetches and decodes the remote document.
	Pull(ctx context.Context, loc RemoteLocation) ([]byte, error)

	// Push uploads the document, replacing any existing remote version.
	Push(ctx context.Context, loc RemoteLocation, payload []byte) error
}
