package collection

import "fmt"

// Set is an ordered list of collections with unique names.
type Set struct {
	items []*Collection
	index map[string]int
}

// NewSet builds a set, rejecting duplicate or empty names.
func NewSet(collections ...*Collection) (*Set, error) {
	s := &Set{index: make(map[string]int, len(collections))}
	for _, c := range collections {
		if c == nil {
			continue
		}
		if c.Name == "" {
			return nil, fmt.Errorf("collection name cannot be empty")
		}
		if _, dup := s.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate collection name %q", c.Name)
		}
		s.index[c.Name] = len(s.items)
		s.items = append(s.items, c)
	}
	return s, nil
}

// All returns the collections in declaration order.
func (s *Set) All() []*Collection {
	if s == nil {
		return nil
	}
	out := make([]*Collection, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of collections.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// ByName returns the collection with the given name.
func (s *Set) ByName(name string) (*Collection, error) {
	if s != nil {
		if i, ok := s.index[name]; ok {
			return s.items[i], nil
		}
	}
	return nil, &NotFoundError{Name: name}
}

// ByPath returns the first collection that owns the entry path.
func (s *Set) ByPath(p string) (*Collection, error) {
	if s != nil {
		for _, c := range s.items {
			if c.Owns(p) {
				return c, nil
			}
		}
	}
	return nil, fmt.Errorf("no collection owns path %q: %w", p, ErrCollectionNotFound)
}
