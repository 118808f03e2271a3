package json

import (
	"fmt"
	"path"

	"github.com/mindkey/fraud/internal/storage"
)

// BlobStorage is a file backed Persistence keeping one json file per key.
type BlobStorage struct {
	path string
}

// NewBlobStorage creates a new blob storage under the given folder.
func NewBlobStorage(folder string) *BlobStorage {
	return &BlobStorage{path: path.Join(storage.DefaultDir, folder)}
}

func (b *BlobStorage) Store(k storage.Key, value interface{}) error {
	return Save(b.path, fmt.Sprintf("%s.json", k.Path()), value)
}

func (b *BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(b.path, fmt.Sprintf("%s.json", k.Path()), value)
}
