// Package location keeps variable selections the way a dashboard URL does:
// as "var-<name>" query parameters.
package location

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/selection"
)

// ParamPrefix is prepended to variable names to form query keys.
const ParamPrefix = "var-"

// Store is an in-memory location state. It is safe for concurrent use;
// writes are last-writer-wins.
type Store struct {
	mu     sync.RWMutex
	values url.Values
}

// New returns an empty store.
func New() *Store {
	return &Store{values: url.Values{}}
}

// Parse builds a store from a query string such as
// "var-country=USA&var-device=d1&var-device=d2". A leading "?" is allowed.
func Parse(query string) (*Store, error) {
	values, err := url.ParseQuery(strings.TrimPrefix(strings.TrimSpace(query), "?"))
	if err != nil {
		return nil, fmt.Errorf("parse location state: %w", err)
	}
	return &Store{values: values}, nil
}

// Read implements selection.Store. A key holding only an empty value is an
// explicitly empty selection.
func (s *Store) Read(name string) selection.Current {
	s.mu.RLock()
	defer s.mu.RUnlock()

	raw, ok := s.values[ParamPrefix+name]
	if !ok {
		return selection.CurrentOf(nil, false)
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v != "" {
			values = append(values, v)
		}
	}
	return selection.CurrentOf(values, true)
}

// Write implements selection.Store.
func (s *Store) Write(name string, values []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = url.Values{}
	}
	if len(values) == 0 {
		s.values[ParamPrefix+name] = []string{""}
		return
	}
	s.values[ParamPrefix+name] = append([]string(nil), values...)
}

// Delete removes a variable from the state entirely.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, ParamPrefix+name)
}

// Names lists the variables present in the state, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.values))
	for key := range s.values {
		if name, ok := strings.CutPrefix(key, ParamPrefix); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Encode renders the state as a query string with sorted keys.
func (s *Store) Encode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values.Encode()
}

// Load reads a state file holding a single query string. A missing file
// yields an empty store.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read location state: %w", err)
	}
	return Parse(string(data))
}

// Save writes the state to path, creating the directory if needed.
func (s *Store) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(s.Encode()+"\n"), 0644); err != nil {
		return fmt.Errorf("write location state: %w", err)
	}
	return nil
}
