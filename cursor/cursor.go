// Package cursor implements the opaque pagination token exchanged between a
// backend and the views that page through its entries.
//
// A Cursor is immutable: every mutating method returns a new value and leaves
// the receiver untouched, so a cursor can be shared freely between the
// listing that reads it and the dispatcher that replaces it.
package cursor

import (
	"encoding/json"
	"maps"
	"slices"
)

// Action names a pagination operation a backend advertises on a cursor.
type Action string

// Known cursor actions.
const (
	ActionAppendNext Action = "append_next"
	ActionNext       Action = "next"
	ActionPrev       Action = "prev"
	ActionFirst      Action = "first"
	ActionLast       Action = "last"
)

// ActionSet is the set of actions available on a cursor.
type ActionSet map[Action]struct{}

// NewActionSet builds a set from the given actions, dropping empty names.
func NewActionSet(actions ...Action) ActionSet {
	set := make(ActionSet, len(actions))
	for _, a := range actions {
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set contains the action.
func (s ActionSet) Has(a Action) bool {
	_, ok := s[a]
	return ok
}

// Len returns the number of actions in the set.
func (s ActionSet) Len() int {
	return len(s)
}

// Sorted returns the actions in lexical order.
func (s ActionSet) Sorted() []Action {
	out := make([]Action, 0, len(s))
	for a := range s {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

// Raw is the plain structure a cursor is built from.
type Raw struct {
	Actions []Action       `json:"actions,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
	Store   map[string]any `json:"store,omitempty"`
}

// Cursor is an immutable pagination token.
type Cursor struct {
	actions ActionSet
	data    map[string]any
	meta    map[string]any
	store   map[string]any
}

// New builds a cursor from its raw parts.
func New(raw Raw) Cursor {
	return Cursor{
		actions: NewActionSet(raw.Actions...),
		data:    maps.Clone(raw.Data),
		meta:    maps.Clone(raw.Meta),
		store:   maps.Clone(raw.Store),
	}
}

// Create normalizes an arbitrary value into a Cursor.
// Supported inputs are Cursor, *Cursor, Raw, *Raw, ActionSet, []Action,
// []string, JSON tokens as produced by MarshalJSON ([]byte or
// json.RawMessage) and decoded JSON objects carrying an "actions" list.
// Anything else, including nil or a malformed token, yields an empty cursor.
func Create(v any) Cursor {
	switch c := v.(type) {
	case Cursor:
		return c
	case *Cursor:
		if c == nil {
			return Cursor{}
		}
		return *c
	case Raw:
		return New(c)
	case *Raw:
		if c == nil {
			return Cursor{}
		}
		return New(*c)
	case ActionSet:
		return New(Raw{Actions: c.Sorted()})
	case []Action:
		return New(Raw{Actions: c})
	case []byte:
		return fromToken(c)
	case json.RawMessage:
		return fromToken(c)
	case []string:
		return New(Raw{Actions: toActions(c)})
	case map[string]any:
		return fromMap(c)
	default:
		return Cursor{}
	}
}

func fromToken(data []byte) Cursor {
	var c Cursor
	if err := c.UnmarshalJSON(data); err != nil {
		return Cursor{}
	}
	return c
}

func fromMap(m map[string]any) Cursor {
	raw := Raw{
		Actions: actionsFromAny(m["actions"]),
	}
	raw.Data, _ = m["data"].(map[string]any)
	raw.Meta, _ = m["meta"].(map[string]any)
	raw.Store, _ = m["store"].(map[string]any)
	return New(raw)
}

func actionsFromAny(v any) []Action {
	switch list := v.(type) {
	case []Action:
		return list
	case []string:
		return toActions(list)
	case []any:
		out := make([]Action, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, Action(s))
			}
		}
		return out
	case map[string]any:
		// Sets serialized as objects keyed by action name.
		out := make([]Action, 0, len(list))
		for k := range list {
			out = append(out, Action(k))
		}
		return out
	}
	return nil
}

func toActions(names []string) []Action {
	out := make([]Action, 0, len(names))
	for _, n := range names {
		out = append(out, Action(n))
	}
	return out
}

// Actions returns a copy of the cursor's action set.
func (c Cursor) Actions() ActionSet {
	return maps.Clone(c.actionSet())
}

// HasAction reports whether the action is available on the cursor.
func (c Cursor) HasAction(a Action) bool {
	return c.actions.Has(a)
}

// IsEmpty reports whether the cursor carries no actions, data, meta or store.
func (c Cursor) IsEmpty() bool {
	return len(c.actions) == 0 && len(c.data) == 0 && len(c.meta) == 0 && len(c.store) == 0
}

// Data returns a copy of the cursor data.
func (c Cursor) Data() map[string]any { return maps.Clone(c.data) }

// Meta returns a copy of the cursor metadata.
func (c Cursor) Meta() map[string]any { return maps.Clone(c.meta) }

// Store returns a copy of the backend-private store.
func (c Cursor) Store() map[string]any { return maps.Clone(c.store) }

// AddAction returns a cursor with the action added.
func (c Cursor) AddAction(a Action) Cursor {
	next := c.clone()
	if a != "" {
		next.actions[a] = struct{}{}
	}
	return next
}

// RemoveAction returns a cursor without the action.
func (c Cursor) RemoveAction(a Action) Cursor {
	next := c.clone()
	delete(next.actions, a)
	return next
}

// SetActions returns a cursor whose action set is exactly the given actions.
func (c Cursor) SetActions(actions ...Action) Cursor {
	next := c.clone()
	next.actions = NewActionSet(actions...)
	return next
}

// MergeActions returns a cursor with the given actions added to the existing ones.
func (c Cursor) MergeActions(actions ...Action) Cursor {
	next := c.clone()
	for a := range NewActionSet(actions...) {
		next.actions[a] = struct{}{}
	}
	return next
}

// SetData returns a cursor with its data replaced.
func (c Cursor) SetData(data map[string]any) Cursor {
	next := c.clone()
	next.data = maps.Clone(data)
	return next
}

// MergeData returns a cursor with data merged over the existing data.
func (c Cursor) MergeData(data map[string]any) Cursor {
	next := c.clone()
	next.data = merge(next.data, data)
	return next
}

// SetMeta returns a cursor with its metadata replaced.
func (c Cursor) SetMeta(meta map[string]any) Cursor {
	next := c.clone()
	next.meta = maps.Clone(meta)
	return next
}

// MergeMeta returns a cursor with metadata merged over the existing metadata.
func (c Cursor) MergeMeta(meta map[string]any) Cursor {
	next := c.clone()
	next.meta = merge(next.meta, meta)
	return next
}

// SetStore returns a cursor with its store replaced.
func (c Cursor) SetStore(store map[string]any) Cursor {
	next := c.clone()
	next.store = maps.Clone(store)
	return next
}

// MergeStore returns a cursor with store entries merged over the existing store.
func (c Cursor) MergeStore(store map[string]any) Cursor {
	next := c.clone()
	next.store = merge(next.store, store)
	return next
}

// ActionHandlers binds each available action to handler, returning one
// zero-argument callback per action.
func (c Cursor) ActionHandlers(handler func(Action)) map[Action]func() {
	out := make(map[Action]func(), len(c.actions))
	for a := range c.actions {
		out[a] = func() { handler(a) }
	}
	return out
}

// Raw returns the cursor's plain structure with actions in lexical order.
func (c Cursor) Raw() Raw {
	raw := Raw{
		Data:  maps.Clone(c.data),
		Meta:  maps.Clone(c.meta),
		Store: maps.Clone(c.store),
	}
	if len(c.actions) > 0 {
		raw.Actions = c.actions.Sorted()
	}
	return raw
}

// MarshalJSON implements json.Marshaler.
func (c Cursor) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Raw())
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var raw Raw
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = New(raw)
	return nil
}

func (c Cursor) actionSet() ActionSet {
	if c.actions == nil {
		return ActionSet{}
	}
	return c.actions
}

func (c Cursor) clone() Cursor {
	return Cursor{
		actions: maps.Clone(c.actionSet()),
		data:    maps.Clone(c.data),
		meta:    maps.Clone(c.meta),
		store:   maps.Clone(c.store),
	}
}

func merge(dst, src map[string]any) map[string]any {
	if dst == nil && len(src) > 0 {
		dst = make(map[string]any, len(src))
	}
	maps.Copy(dst, src)
	return dst
}
