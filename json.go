package nestedcsv

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
)

// MarshalJSON satisfies the json.Marshaler interface. Objects are encoded with
// their fields in insertion order, scalars as JSON strings. The zero record is
// encoded as null.
func (r Record) MarshalJSON() ([]byte, error) {
	if !r.IsValid() {
		return []byte("null"), nil
	}
	return r.appendJSON(make([]byte, 0, 64*r.Len()+16))
}

func (r Record) appendJSON(b []byte) ([]byte, error) {
	n := r.node()

	if n.kind == ScalarKind {
		return appendJSONString(b, n.value)
	}

	b = append(b, '{')
	for i, c := range n.children {
		if i != 0 {
			b = append(b, ',')
		}
		var err error
		if b, err = appendJSONString(b, r.arena.nodes[c].name); err != nil {
			return b, err
		}
		b = append(b, ':')
		if b, err = (Record{arena: r.arena, index: c}).appendJSON(b); err != nil {
			return b, err
		}
	}
	return append(b, '}'), nil
}

func appendJSONString(b []byte, s string) ([]byte, error) {
	q, err := json.Marshal(s)
	if err != nil {
		return b, err
	}
	return append(b, q...), nil
}

// UnmarshalJSON satisfies the json.Unmarshaler interface. Objects retain the
// order of their fields in the JSON input. Arrays are decoded as objects keyed
// by the index of their elements, strings as scalars, null as an empty scalar,
// and other values as scalars holding their JSON representation.
func (r *Record) UnmarshalJSON(b []byte) error {
	t := json.NewTokenizer(b)
	if err := nextToken(t); err != nil {
		return err
	}
	a := newArena(16)
	index, err := a.decodeJSON(t, "")
	if err != nil {
		return err
	}
	if t.Next() {
		return fmt.Errorf("unexpected JSON token after value: %s", t.Value)
	}
	if t.Err != nil {
		return t.Err
	}
	*r = Record{arena: a, index: index}
	return nil
}

func nextToken(t *json.Tokenizer) error {
	if t.Next() {
		return nil
	}
	if t.Err != nil {
		return t.Err
	}
	return io.ErrUnexpectedEOF
}

func (a *arena) decodeJSON(t *json.Tokenizer, name string) (int32, error) {
	switch t.Delim {
	case '{':
		parent := a.add(ObjectKind, name, "", noColumn)
		for {
			if err := nextToken(t); err != nil {
				return -1, err
			}
			switch {
			case t.Delim == '}':
				return parent, nil
			case t.Delim == ',':
				continue
			case t.IsKey:
				var key string
				if err := json.Unmarshal(t.Value, &key); err != nil {
					return -1, err
				}
				if err := nextValue(t); err != nil {
					return -1, err
				}
				child, err := a.decodeJSON(t, key)
				if err != nil {
					return -1, err
				}
				a.set(parent, child)
			default:
				return -1, fmt.Errorf("unexpected token in JSON object: %s", t.Value)
			}
		}

	case '[':
		parent := a.add(ObjectKind, name, "", noColumn)
		for i := 0; ; {
			if err := nextToken(t); err != nil {
				return -1, err
			}
			switch t.Delim {
			case ']':
				return parent, nil
			case ',':
				continue
			}
			child, err := a.decodeJSON(t, fmt.Sprint(i))
			if err != nil {
				return -1, err
			}
			a.attach(parent, child)
			i++
		}

	case 0:
		var value string
		switch {
		case len(t.Value) > 0 && t.Value[0] == '"':
			if err := json.Unmarshal(t.Value, &value); err != nil {
				return -1, err
			}
		case string(t.Value) == "null":
		default:
			value = string(t.Value)
		}
		return a.add(ScalarKind, name, value, noColumn), nil

	default:
		return -1, fmt.Errorf("unexpected token in JSON value: %s", t.Value)
	}
}

// nextValue advances t past the colon separating an object key from its value,
// which must be the next token.
func nextValue(t *json.Tokenizer) error {
	if err := nextToken(t); err != nil {
		return err
	}
	if t.Delim != ':' {
		return fmt.Errorf("expected a colon after JSON object key but found %s", t.Value)
	}
	return nextToken(t)
}
