package astjson

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"go/ast"
	"go/token"
	"reflect"

	"github.com/npillmayer/arbor/syntax"
)

// Node is the generic JSON shape of an encoded tree node.
type Node = map[string]interface{}

// EncodeTree encodes a parsed source unit.
func EncodeTree(t *syntax.Tree) (Node, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("cannot encode a nil tree")
	}
	v, err := Encode(t.Fset, t.Root)
	if err != nil {
		return nil, err
	}
	return v.(Node), nil
}

// Encode encodes a single tree node (and everything below it). fset may be
// nil, in which case no line/col attributes are emitted.
func Encode(fset *token.FileSet, n ast.Node) (interface{}, error) {
	if n == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(n)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, nil
	}
	rv = rv.Elem()
	rt := rv.Type()
	if _, known := nodeTypes[rt.Name()]; !known {
		return nil, fmt.Errorf("node type %s is not encodable", rt.Name())
	}
	m := Node{"node_type": rt.Name()}
	if fset != nil && n.Pos().IsValid() {
		p := fset.Position(n.Pos())
		m["line"] = p.Line
		m["col"] = p.Column
	}
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if skipField[field.Name] {
			continue
		}
		enc, err := encodeValue(fset, rv.Field(i))
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", rt.Name(), field.Name, err)
		}
		if enc != nil {
			m[field.Name] = enc
		}
	}
	return m, nil
}

func encodeValue(fset *token.FileSet, v reflect.Value) (interface{}, error) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		if n, ok := v.Interface().(ast.Node); ok {
			return Encode(fset, n)
		}
		// *ast.Object and friends: bookkeeping, not syntax.
		return nil, nil
	case reflect.Slice:
		out := make([]interface{}, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := encodeValue(fset, v.Index(i))
			if err != nil {
				return nil, err
			}
			if e != nil {
				out = append(out, e)
			}
		}
		return out, nil
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v.Type() {
		case posType:
			return nil, nil // positions are not part of the wire format
		case tokenType:
			return v.Interface().(token.Token).String(), nil
		}
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), nil
	}
	return nil, fmt.Errorf("unsupported field kind %s", v.Kind())
}
