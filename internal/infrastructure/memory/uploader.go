package memory

import (
	"context"
	"io"
	"sync"

	"github.com/bookbridge/bookbridge/pkg/helpers"
)

// Uploader records uploaded objects and hands back deterministic URLs.
type Uploader struct {
	mu      sync.Mutex
	Objects map[string][]byte
}

func NewUploader() *Uploader {
	return &Uploader{Objects: make(map[string][]byte)}
}

func (u *Uploader) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	u.Objects[objectPath] = b
	u.mu.Unlock()
	return "memory://" + objectPath, nil
}

var _ helpers.Uploader = (*Uploader)(nil)
