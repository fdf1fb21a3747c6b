package serializer

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// absentMarker is implemented by wrapper types whose zero state must be
// left out of an enclosing object rather than written as null.
type absentMarker interface {
	isAbsent() bool
}

var (
	absentMarkerType = reflect.TypeOf((*absentMarker)(nil)).Elem()
	marshalerType    = reflect.TypeOf((*json.Marshaler)(nil)).Elem()
	memberCache      sync.Map // reflect.Type -> map[string]member
)

type member struct {
	typ      reflect.Type
	optional bool
}

func isOptional(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Pointer && t.Implements(absentMarkerType)
}

// dropAbsent removes object members that hold an absent Optional from data,
// the compact encoding of a value of type t. Everything else is copied
// byte for byte.
func dropAbsent(data []byte, t reflect.Type) ([]byte, error) {
	if t == nil || !bytes.Contains(data, jsonNull) {
		return data, nil
	}
	p := &absentPruner{src: data}
	p.out.Grow(len(data))
	if err := p.value(t); err != nil {
		return nil, err
	}
	return p.out.Bytes(), nil
}

type absentPruner struct {
	src []byte
	pos int
	out bytes.Buffer
}

func (p *absentPruner) value(t reflect.Type) error {
	t = shape(t)
	if p.pos >= len(p.src) {
		return fmt.Errorf("unexpected end of JSON at offset %d", p.pos)
	}
	switch p.src[p.pos] {
	case '{':
		return p.object(t)
	case '[':
		var elem reflect.Type
		if t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
			elem = t.Elem()
		}
		return p.array(elem)
	case '"':
		start := p.pos
		if err := p.skipString(); err != nil {
			return err
		}
		p.out.Write(p.src[start:p.pos])
		return nil
	default:
		start := p.pos
		for p.pos < len(p.src) && !strings.ContainsRune(",}]", rune(p.src[p.pos])) {
			p.pos++
		}
		p.out.Write(p.src[start:p.pos])
		return nil
	}
}

func (p *absentPruner) object(t reflect.Type) error {
	members := membersOf(t)
	p.out.WriteByte('{')
	p.pos++

	first := true
	for p.pos < len(p.src) && p.src[p.pos] != '}' {
		keyStart := p.pos
		if err := p.skipString(); err != nil {
			return err
		}
		rawKey := p.src[keyStart:p.pos]
		if p.pos >= len(p.src) || p.src[p.pos] != ':' {
			return fmt.Errorf("expected ':' at offset %d", p.pos)
		}
		p.pos++

		var key string
		if err := json.Unmarshal(rawKey, &key); err != nil {
			return err
		}
		m := members.lookup(t, key)

		if m.optional && p.atNull() {
			p.pos += len(jsonNull)
		} else {
			if !first {
				p.out.WriteByte(',')
			}
			first = false
			p.out.Write(rawKey)
			p.out.WriteByte(':')
			if err := p.value(m.typ); err != nil {
				return err
			}
		}

		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
		}
	}
	if p.pos >= len(p.src) {
		return fmt.Errorf("unterminated object")
	}
	p.pos++
	p.out.WriteByte('}')
	return nil
}

func (p *absentPruner) array(elem reflect.Type) error {
	p.out.WriteByte('[')
	p.pos++

	first := true
	for p.pos < len(p.src) && p.src[p.pos] != ']' {
		if !first {
			p.out.WriteByte(',')
		}
		first = false
		if err := p.value(elem); err != nil {
			return err
		}
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
		}
	}
	if p.pos >= len(p.src) {
		return fmt.Errorf("unterminated array")
	}
	p.pos++
	p.out.WriteByte(']')
	return nil
}

func (p *absentPruner) skipString() error {
	if p.pos >= len(p.src) || p.src[p.pos] != '"' {
		return fmt.Errorf("expected string at offset %d", p.pos)
	}
	for i := p.pos + 1; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case '"':
			p.pos = i + 1
			return nil
		}
	}
	return fmt.Errorf("unterminated string")
}

func (p *absentPruner) atNull() bool {
	if !bytes.HasPrefix(p.src[p.pos:], jsonNull) {
		return false
	}
	end := p.pos + len(jsonNull)
	return end == len(p.src) || strings.ContainsRune(",}]", rune(p.src[end]))
}

// shape returns the type whose JSON layout the encoder produces, or nil when
// the layout is opaque (interfaces, custom marshalers).
func shape(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}
	if t.Implements(marshalerType) || reflect.PointerTo(t).Implements(marshalerType) {
		return nil
	}
	return t
}

type memberSet map[string]member

func (s memberSet) lookup(t reflect.Type, key string) member {
	if t != nil && t.Kind() == reflect.Map {
		return member{typ: t.Elem(), optional: isOptional(t.Elem())}
	}
	return s[key]
}

func membersOf(t reflect.Type) memberSet {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := memberCache.Load(t); ok {
		return cached.(memberSet)
	}

	members := memberSet{}
	collectMembers(t, members, map[reflect.Type]bool{})
	memberCache.Store(t, members)
	return members
}

func collectMembers(t reflect.Type, members memberSet, seen map[reflect.Type]bool) {
	if seen[t] {
		return
	}
	seen[t] = true

	var embedded []reflect.Type
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				embedded = append(embedded, ft)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		members[name] = member{typ: f.Type, optional: isOptional(f.Type)}
	}

	// Fields declared on the outer struct shadow promoted ones.
	for _, et := range embedded {
		promoted := memberSet{}
		collectMembers(et, promoted, seen)
		for name, m := range promoted {
			if _, ok := members[name]; !ok {
				members[name] = m
			}
		}
	}
}
