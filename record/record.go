// Copyright 2026 The Dyncore Authors
// This file is part of dyncore.
//
// dyncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dyncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with dyncore. If not, see <http://www.gnu.org/licenses/>.

// Package record implements the foreign-record adaptor of §6.1/§6.2: an
// ordered string-keyed mapping that a snapshot round-trips through, and the
// persistence layer (external to this module, §1) is expected to serialize.
package record

import (
	"bytes"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/dyncore/dyncore/ident"
	"github.com/dyncore/dyncore/model"
	"github.com/dyncore/dyncore/variant"
)

// Reserved structural keys, §6.1.
const (
	KeyObjectID   = "object_id"
	KeySnapshotID = "snapshot_id"
	KeyType       = "type"
	KeyStructure  = "structure"
	KeyOrigin     = "origin"
	KeyTarget     = "target"
	KeyParent     = "parent"
	KeyChildren   = "children"
)

var reservedKeys = map[string]bool{
	KeyObjectID: true, KeySnapshotID: true, KeyType: true, KeyStructure: true,
	KeyOrigin: true, KeyTarget: true, KeyParent: true, KeyChildren: true,
}

// Record is the ordered mapping from string keys to values described by
// §6.1: structural keys (object_id, snapshot_id, type, structure, and for
// edges origin/target, plus optional parent/children) followed by the
// object's attributes. Insertion order is preserved on encode; Go's plain
// map would lose it, so Record tracks key order itself.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// New returns an empty Record.
func New() *Record {
	return &Record{values: make(map[string]interface{})}
}

// Set assigns key to value, appending key to the iteration order the first
// time it is used.
func (r *Record) Set(key string, value interface{}) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get looks up a key, reporting whether it was present.
func (r *Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (r *Record) Keys() []string { return append([]string(nil), r.keys...) }

// Attributes returns every non-reserved key and its decoded variant.Variant,
// i.e. the snapshot's attribute map (§6.1 "Remaining keys are attributes").
func (r *Record) Attributes() (map[string]variant.Variant, error) {
	out := make(map[string]variant.Variant)
	for _, k := range r.keys {
		if reservedKeys[k] {
			continue
		}
		v, err := toVariant(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("record: attribute %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

// MarshalJSON renders the record as a JSON object with keys in insertion
// order (§6.1: "serializable to JSON").
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := encodeFieldValue(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeFieldValue(v interface{}) ([]byte, error) {
	if vv, ok := v.(variant.Variant); ok {
		return vv.EncodeTaggedJSON()
	}
	return json.Marshal(v)
}

// UnmarshalJSON parses a JSON object into a Record, preserving key order
// and decoding reserved structural keys and attribute values (via
// variant.DecodeJSON) appropriately.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected a JSON object")
	}
	r.keys = nil
	r.values = make(map[string]interface{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: expected a string key")
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		val, err := decodeFieldValue(key, raw)
		if err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		r.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func decodeFieldValue(key string, raw json.RawMessage) (interface{}, error) {
	switch key {
	case KeyObjectID, KeySnapshotID, KeyOrigin, KeyTarget, KeyParent:
		var n uint64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		return n, nil
	case KeyType, KeyStructure:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return s, nil
	case KeyChildren:
		var ids []uint64
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, err
		}
		return ids, nil
	default:
		return variant.DecodeJSON(raw)
	}
}

func toVariant(v interface{}) (variant.Variant, error) {
	if vv, ok := v.(variant.Variant); ok {
		return vv, nil
	}
	return variant.Variant{}, fmt.Errorf("expected a variant value, got %T", v)
}

func toUint64(v interface{}) (uint64, error) {
	switch n := v.(type) {
	case uint64:
		return n, nil
	case int64:
		return uint64(n), nil
	case float64:
		return uint64(n), nil
	default:
		return 0, fmt.Errorf("expected a numeric ID, got %T", v)
	}
}

func toUint64Slice(v interface{}) ([]uint64, error) {
	switch s := v.(type) {
	case []uint64:
		return s, nil
	case []interface{}:
		out := make([]uint64, len(s))
		for i, e := range s {
			n, err := toUint64(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected an array of IDs, got %T", v)
	}
}

// MissingObjectType is a §6.3 loader failure: the record carries no "type"
// key at all.
type MissingObjectType struct{}

func (e *MissingObjectType) Error() string { return "record: missing required \"type\" key" }

// UnknownObjectType is a §6.3 loader failure: the named type is not in the
// metamodel given to Decode.
type UnknownObjectType struct{ Name string }

func (e *UnknownObjectType) Error() string {
	return fmt.Sprintf("record: unknown object type %q", e.Name)
}

// InvalidStructuralType is a §6.3 loader failure: the "structure" key names
// something other than unstructured/node/edge, or doesn't match the
// resolved type's structural role.
type InvalidStructuralType struct{ Value string }

func (e *InvalidStructuralType) Error() string {
	return fmt.Sprintf("record: invalid structural type %q", e.Value)
}

// Encode builds the foreign record for snap, per §6.1: structural keys
// first, then attributes. Attribute iteration order is not preserved by
// model.Snapshot (a plain Go map), so Encode orders them alphabetically for
// a deterministic, diffable output; this does not affect round-trip
// correctness, only presentation.
func Encode(snap *model.Snapshot) (*Record, error) {
	rec := New()
	rec.Set(KeyObjectID, uint64(snap.ObjectID))
	rec.Set(KeySnapshotID, uint64(snap.SnapshotID))
	if snap.Type != nil {
		rec.Set(KeyType, snap.Type.Name())
	}
	switch snap.Structure.Kind {
	case model.Unstructured:
		rec.Set(KeyStructure, "unstructured")
	case model.Node:
		rec.Set(KeyStructure, "node")
	case model.Edge:
		rec.Set(KeyStructure, "edge")
		rec.Set(KeyOrigin, uint64(snap.Structure.Origin))
		rec.Set(KeyTarget, uint64(snap.Structure.Target))
	default:
		return nil, fmt.Errorf("record: unknown structural kind %v", snap.Structure.Kind)
	}
	if snap.Parent != nil {
		rec.Set(KeyParent, uint64(*snap.Parent))
	}
	if len(snap.Children) > 0 {
		children := make([]uint64, len(snap.Children))
		for i, c := range snap.Children {
			children[i] = uint64(c)
		}
		rec.Set(KeyChildren, children)
	}

	attrNames := make([]string, 0, len(snap.Attributes))
	for name := range snap.Attributes {
		attrNames = append(attrNames, name)
	}
	sort.Strings(attrNames)
	for _, name := range attrNames {
		rec.Set(name, snap.Attributes[name])
	}
	return rec, nil
}

// Decode rebuilds a snapshot from a foreign record, resolving its type
// through mm (§6.1/§6.3). The returned snapshot is Frozen: a record is, by
// construction, a previously-accepted version of an object.
func Decode(rec *Record, mm model.Metamodel) (*model.Snapshot, error) {
	objIDv, ok := rec.Get(KeyObjectID)
	if !ok {
		return nil, fmt.Errorf("record: missing required %q key", KeyObjectID)
	}
	objID, err := toUint64(objIDv)
	if err != nil {
		return nil, fmt.Errorf("record: %q: %w", KeyObjectID, err)
	}

	snapIDv, ok := rec.Get(KeySnapshotID)
	if !ok {
		return nil, fmt.Errorf("record: missing required %q key", KeySnapshotID)
	}
	snapID, err := toUint64(snapIDv)
	if err != nil {
		return nil, fmt.Errorf("record: %q: %w", KeySnapshotID, err)
	}

	typeNameV, ok := rec.Get(KeyType)
	if !ok {
		return nil, &MissingObjectType{}
	}
	typeName, ok := typeNameV.(string)
	if !ok {
		return nil, &MissingObjectType{}
	}
	typ, ok := mm.ObjectType(typeName)
	if !ok {
		return nil, &UnknownObjectType{Name: typeName}
	}

	structureV, _ := rec.Get(KeyStructure)
	structureStr, _ := structureV.(string)
	var structure model.Structure
	switch structureStr {
	case "unstructured":
		structure = model.UnstructuredStructure()
	case "node":
		structure = model.NodeStructure()
	case "edge":
		originV, ok := rec.Get(KeyOrigin)
		if !ok {
			return nil, fmt.Errorf("record: edge missing %q key", KeyOrigin)
		}
		targetV, ok := rec.Get(KeyTarget)
		if !ok {
			return nil, fmt.Errorf("record: edge missing %q key", KeyTarget)
		}
		origin, err := toUint64(originV)
		if err != nil {
			return nil, fmt.Errorf("record: %q: %w", KeyOrigin, err)
		}
		target, err := toUint64(targetV)
		if err != nil {
			return nil, fmt.Errorf("record: %q: %w", KeyTarget, err)
		}
		structure = model.EdgeStructure(ident.ObjectID(origin), ident.ObjectID(target))
	default:
		return nil, &InvalidStructuralType{Value: structureStr}
	}
	if structure.Kind != typ.StructuralRole() {
		return nil, &InvalidStructuralType{Value: structureStr}
	}

	snap := model.New(ident.SnapshotID(snapID), ident.ObjectID(objID), typ, structure)

	if parentV, ok := rec.Get(KeyParent); ok {
		p, err := toUint64(parentV)
		if err != nil {
			return nil, fmt.Errorf("record: %q: %w", KeyParent, err)
		}
		parent := ident.ObjectID(p)
		snap.Parent = &parent
	}
	if childrenV, ok := rec.Get(KeyChildren); ok {
		raw, err := toUint64Slice(childrenV)
		if err != nil {
			return nil, fmt.Errorf("record: %q: %w", KeyChildren, err)
		}
		children := make([]ident.ObjectID, len(raw))
		for i, id := range raw {
			children[i] = ident.ObjectID(id)
		}
		snap.Children = children
	}

	attrs, err := rec.Attributes()
	if err != nil {
		return nil, err
	}
	snap.Attributes = attrs
	snap.State = model.Frozen
	return snap, nil
}
