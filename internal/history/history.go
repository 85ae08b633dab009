package history

import (
	"fmt"
	"os"
	"path/filepath"
)

// maxReadBytes bounds how much history is fed back into the refine prompt;
// only the most recent turns matter.
const maxReadBytes = 8192

// Store is an append-only conversation log. It is unstructured by design:
// the refine stage consumes it as plain text, keyed by nothing but recency.
type Store struct {
	path string
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Append records one completed turn.
func (s *Store) Append(query, answer string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "**User**: %s\n\n**AI**: %s\n\n---\n\n", query, answer)
	return err
}

// Read returns the tail of the log, or an empty string when no history exists.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if len(data) > maxReadBytes {
		data = data[len(data)-maxReadBytes:]
	}
	return string(data), nil
}
