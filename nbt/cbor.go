package nbt

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ============================================================
// CBOR bridge
// ============================================================
//
// Every tag is a three-element array [kind, name, value]. Scalars map to
// CBOR integers, floats and text; byte arrays to a byte string; int and
// long arrays to integer arrays. A list value is [elementKind, [tag...]]
// and a compound value is the array of its entries in insertion order.

var (
	cborEnc cbor.EncMode
	cborDec cbor.DecMode
)

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("nbt: CBOR encoder initialization failed: " + err.Error())
	}
	cborDec, err = cbor.DecOptions{
		// Three CBOR levels per tag level, with room to spare.
		MaxNestedLevels:  65535,
		MaxArrayElements: 1 << 27,
	}.DecMode()
	if err != nil {
		panic("nbt: CBOR decoder initialization failed: " + err.Error())
	}
}

type cborNode struct {
	_     struct{} `cbor:",toarray"`
	Kind  Kind
	Name  string
	Value cbor.RawMessage
}

type cborList struct {
	_     struct{} `cbor:",toarray"`
	Elem  Kind
	Items []cbor.RawMessage
}

// MarshalCBOR encodes t with Core Deterministic Encoding.
func MarshalCBOR(t Tag, opts ...Option) ([]byte, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	if isNil(t) {
		return nil, fmt.Errorf("%w: nil tag", ErrInvalidArgument)
	}
	return encodeCBOR(t, o.MaxDepth)
}

// UnmarshalCBOR decodes a tag tree written by MarshalCBOR. Failures wrap
// ErrMalformed, ErrUnknownKind or ErrMaxDepth.
func UnmarshalCBOR(data []byte, opts ...Option) (Tag, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	return decodeCBOR(data, o.MaxDepth)
}

func encodeCBOR(t Tag, budget int) (cbor.RawMessage, error) {
	var v any
	switch x := t.(type) {
	case *EndTag:
		v = nil
	case *ByteTag:
		v = x.Value
	case *ShortTag:
		v = x.Value
	case *IntTag:
		v = x.Value
	case *LongTag:
		v = x.Value
	case *FloatTag:
		v = x.Value
	case *DoubleTag:
		v = x.Value
	case *StringTag:
		v = x.Value
	case *ByteArrayTag:
		v = x.Value
	case *IntArrayTag:
		v = x.Value
	case *LongArrayTag:
		v = x.Value
	case *ListTag:
		items, err := encodeCBORChildren(x.items, budget)
		if err != nil {
			return nil, err
		}
		v = cborList{Elem: x.elemKind, Items: items}
	case *CompoundTag:
		children := make([]Tag, len(x.entries))
		for i, e := range x.entries {
			children[i] = e.tag
		}
		items, err := encodeCBORChildren(children, budget)
		if err != nil {
			return nil, err
		}
		v = items
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownKind, t)
	}

	value, err := cborEnc.Marshal(v)
	if err != nil {
		return nil, err
	}
	return cborEnc.Marshal(cborNode{Kind: t.Kind(), Name: t.Name(), Value: value})
}

func encodeCBORChildren(children []Tag, budget int) ([]cbor.RawMessage, error) {
	items := make([]cbor.RawMessage, 0, len(children))
	if len(children) == 0 {
		return items, nil
	}
	next, err := descend(budget)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		raw, err := encodeCBOR(c, next)
		if err != nil {
			return nil, err
		}
		items = append(items, raw)
	}
	return items, nil
}

func decodeCBOR(raw []byte, budget int) (Tag, error) {
	var n cborNode
	if err := cborDec.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	t, err := Empty(n.Kind)
	if err != nil {
		return nil, err
	}

	switch x := t.(type) {
	case *EndTag:
	case *ByteTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *ShortTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *IntTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *LongTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *FloatTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *DoubleTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *StringTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *ByteArrayTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *IntArrayTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *LongArrayTag:
		err = cborDec.Unmarshal(n.Value, &x.Value)
	case *ListTag:
		if err := decodeCBORList(x, n, budget); err != nil {
			return nil, err
		}
	case *CompoundTag:
		if err := decodeCBORCompound(x, n, budget); err != nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s value: %w", ErrMalformed, n.Kind, err)
	}
	t.SetName(n.Name)
	return t, nil
}

func decodeCBORList(l *ListTag, n cborNode, budget int) error {
	var body cborList
	if err := cborDec.Unmarshal(n.Value, &body); err != nil {
		return fmt.Errorf("%w: list value: %w", ErrMalformed, err)
	}
	if len(body.Items) == 0 {
		return nil
	}
	if !body.Elem.Valid() || body.Elem == KindEnd {
		return fmt.Errorf("%w: list element kind %d", ErrMalformed, uint8(body.Elem))
	}
	next, err := descend(budget)
	if err != nil {
		return err
	}
	l.items = make([]Tag, 0, len(body.Items))
	for _, raw := range body.Items {
		child, err := decodeCBOR(raw, next)
		if err != nil {
			return err
		}
		if child.Kind() != body.Elem {
			return fmt.Errorf("%w: %s element in list of %s", ErrMalformed, child.Kind(), body.Elem)
		}
		l.items = append(l.items, child)
	}
	l.elemKind = body.Elem
	return nil
}

func decodeCBORCompound(c *CompoundTag, n cborNode, budget int) error {
	var items []cbor.RawMessage
	if err := cborDec.Unmarshal(n.Value, &items); err != nil {
		return fmt.Errorf("%w: compound value: %w", ErrMalformed, err)
	}
	if len(items) == 0 {
		return nil
	}
	next, err := descend(budget)
	if err != nil {
		return err
	}
	for _, raw := range items {
		child, err := decodeCBOR(raw, next)
		if err != nil {
			return err
		}
		if child.Kind() == KindEnd {
			return fmt.Errorf("%w: end tag inside compound", ErrMalformed)
		}
		c.put(child.Name(), child)
	}
	return nil
}
