package setting

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// MergeOps is one node's contribution to a mergeable property.
type MergeOps struct {
	Add    []cty.Value
	Remove []cty.Value
}

// Empty reports whether the contribution adds and removes nothing.
func (o MergeOps) Empty() bool {
	return len(o.Add) == 0 && len(o.Remove) == 0
}

// ParseMergeOps reads a contribution for p from a value. A collection is a
// list of additions; an object may carry "add" and "remove" collections; any
// other value is a single addition.
func ParseMergeOps(p *Property, v cty.Value) (MergeOps, error) {
	var ops MergeOps
	if v.IsNull() {
		return ops, nil
	}
	if !v.IsWhollyKnown() {
		return ops, fmt.Errorf("property %q: value must be known", p.Name)
	}

	ty := v.Type()
	var err error
	switch {
	case ty.IsObjectType() || ty.IsMapType():
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			switch k.AsString() {
			case "add":
				if ops.Add, err = convertEntries(p, ev); err != nil {
					return ops, err
				}
			case "remove":
				if ops.Remove, err = convertEntries(p, ev); err != nil {
					return ops, err
				}
			default:
				return ops, fmt.Errorf("property %q: unexpected key %q, only 'add' and 'remove' are allowed", p.Name, k.AsString())
			}
		}
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		if ops.Add, err = convertEntries(p, v); err != nil {
			return ops, err
		}
	default:
		e, err := convert.Convert(v, p.Type)
		if err != nil {
			return ops, fmt.Errorf("property %q: %w", p.Name, err)
		}
		ops.Add = []cty.Value{e}
	}
	return ops, nil
}

func convertEntries(p *Property, coll cty.Value) ([]cty.Value, error) {
	if coll.IsNull() {
		return nil, nil
	}
	if !coll.CanIterateElements() {
		e, err := convert.Convert(coll, p.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name, err)
		}
		return []cty.Value{e}, nil
	}
	var out []cty.Value
	for it := coll.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		e, err := convert.Convert(ev, p.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: entry: %w", p.Name, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// accumulator folds contributions visited from the branch output towards its
// inputs. An entry removed by a node suppresses the same entry added by any
// node further upstream, never one added downstream of it. Entries come out
// upstream-first.
type accumulator struct {
	set     bool
	elem    cty.Type
	entries []cty.Value
	removed []cty.Value
}

func newAccumulator(p *Property) *accumulator {
	return &accumulator{set: p.Kind == KindMergeSet, elem: p.Type}
}

func (a *accumulator) merge(ops MergeOps) {
	if ops.Empty() {
		return
	}
	var added []cty.Value
	for _, v := range ops.Add {
		if containsValue(a.removed, v) {
			continue
		}
		if a.set && (containsValue(a.entries, v) || containsValue(added, v)) {
			continue
		}
		added = append(added, v)
	}
	a.entries = append(added, a.entries...)
	a.removed = append(a.removed, ops.Remove...)
}

func (a *accumulator) value() cty.Value {
	if a.set {
		if len(a.entries) == 0 {
			return cty.SetValEmpty(a.elem)
		}
		return cty.SetVal(a.entries)
	}
	if len(a.entries) == 0 {
		return cty.ListValEmpty(a.elem)
	}
	return cty.ListVal(a.entries)
}

func containsValue(vals []cty.Value, v cty.Value) bool {
	for _, x := range vals {
		if x.RawEquals(v) {
			return true
		}
	}
	return false
}
