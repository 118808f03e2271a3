package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/mindkey/fraud/internal/storage"
)

const eventsFile = "%d.events.log"

// Registry is an append-only json event log, one file per key hash.
type Registry struct {
	path string
}

// NewEventRegistry creates a new registry under the given folder.
func NewEventRegistry(folder string) *Registry {
	return &Registry{path: path.Join(storage.DefaultDir, storage.ScoresDir, folder)}
}

func (r *Registry) Put(k storage.Key, value interface{}) error {
	filePath := path.Join(r.path, k.Name, k.Label)

	info, err := os.Stat(filePath)
	if err != nil {
		err := os.MkdirAll(filePath, os.ModePerm)
		if err != nil {
			return fmt.Errorf("could not make dir: %s: %w", filePath, err)
		}
	} else if !info.IsDir() {
		return fmt.Errorf("path given is not a directory: %s", filePath)
	}

	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode value '%+v': %w", value, err)
	}

	f, err := os.OpenFile(path.Join(filePath, fmt.Sprintf(eventsFile, k.Hash)), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return fmt.Errorf("could not open log file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(b, []byte("\n")...)); err != nil {
		return fmt.Errorf("could not write log file for '%+v': %w", k, err)
	}
	return nil
}
