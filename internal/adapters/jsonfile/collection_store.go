package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/example/commandcenter/internal/ports/secondary"
)

// Wrapper keys of the collection documents.
const (
	KeyDirectives      = "directives"
	KeyFeatureRequests = "featureRequests"
	KeyRecoveredTasks  = "recoveredTasks"
)

// CollectionStore implements secondary.CollectionStore for a document of the
// form {"<key>": [...]}. Other top-level keys in the document are preserved.
type CollectionStore[T any] struct {
	path string
	key  string
}

// NewCollectionStore creates a store for the collection under key in the file at path.
func NewCollectionStore[T any](path, key string) *CollectionStore[T] {
	return &CollectionStore[T]{path: path, key: key}
}

// Load returns the collection. A missing file or key is an empty collection;
// a malformed document is an error.
func (s *CollectionStore[T]) Load(ctx context.Context) ([]*T, error) {
	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}

	items := []*T{}
	raw, ok := doc[s.key]
	if !ok || string(raw) == "null" {
		return items, nil
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	return items, nil
}

// Save replaces the collection.
func (s *CollectionStore[T]) Save(ctx context.Context, items []*T) error {
	doc, err := s.readDocument()
	if err != nil {
		return err
	}
	if items == nil {
		items = []*T{}
	}

	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", s.key, err)
	}
	doc[s.key] = encoded

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", s.key, err)
	}
	return writeFile(s.path, data)
}

func (s *CollectionStore[T]) readDocument() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return doc, nil
}

// Ensure CollectionStore implements the interface
var _ secondary.CollectionStore[struct{}] = (*CollectionStore[struct{}])(nil)
