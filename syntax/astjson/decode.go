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
	"reflect"
)

// Decode turns a generic JSON value (as produced by Encode, possibly after
// a trip through encoding/json) back into a tree node. Unknown node types
// and ill-shaped fields are reported as errors naming the offending spot.
func Decode(v interface{}) (ast.Node, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a node object, got %T", v)
	}
	name, _ := m["node_type"].(string)
	if name == "" {
		return nil, fmt.Errorf("node object without node_type")
	}
	rt, known := nodeTypes[name]
	if !known {
		return nil, fmt.Errorf("unknown node type %q", name)
	}
	np := reflect.New(rt)
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if skipField[field.Name] || field.Type == posType {
			continue
		}
		raw, present := m[field.Name]
		if !present || raw == nil {
			continue
		}
		if err := decodeInto(np.Elem().Field(i), raw); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, field.Name, err)
		}
	}
	tracer().Debugf("decoded node %s", name)
	return np.Interface().(ast.Node), nil
}

// DecodeFile decodes a value that must represent a complete source file.
func DecodeFile(v interface{}) (*ast.File, error) {
	n, err := Decode(v)
	if err != nil {
		return nil, err
	}
	f, ok := n.(*ast.File)
	if !ok {
		return nil, fmt.Errorf("expected a File node, got %s", reflect.TypeOf(n).Elem().Name())
	}
	// go/printer dereferences the package name unconditionally
	if f.Name == nil {
		return nil, fmt.Errorf("File node without a package Name")
	}
	return f, nil
}

func decodeInto(field reflect.Value, raw interface{}) error {
	switch field.Kind() {
	case reflect.Ptr, reflect.Interface:
		child, err := Decode(raw)
		if err != nil {
			return err
		}
		cv := reflect.ValueOf(child)
		if !cv.Type().AssignableTo(field.Type()) {
			return fmt.Errorf("node %s does not fit field type %s",
				cv.Type().Elem().Name(), field.Type())
		}
		field.Set(cv)
	case reflect.Slice:
		items, ok := raw.([]interface{})
		if !ok {
			return fmt.Errorf("expected an array, got %T", raw)
		}
		slice := reflect.MakeSlice(field.Type(), len(items), len(items))
		for i, item := range items {
			if err := decodeInto(slice.Index(i), item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		field.Set(slice)
	case reflect.String:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected a string, got %T", raw)
		}
		field.SetString(s)
	case reflect.Bool:
		b, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("expected a bool, got %T", raw)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == tokenType {
			s, ok := raw.(string)
			if !ok {
				return fmt.Errorf("expected a token string, got %T", raw)
			}
			tok, known := tokenByName[s]
			if !known {
				return fmt.Errorf("unknown token %q", s)
			}
			field.SetInt(int64(tok))
			return nil
		}
		n, err := asInt(raw)
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asInt(raw)
		if err != nil {
			return err
		}
		field.SetUint(uint64(n))
	default:
		return fmt.Errorf("unsupported field kind %s", field.Kind())
	}
	return nil
}

// asInt accepts the numeric flavors a JSON decoder may hand us.
func asInt(raw interface{}) (int64, error) {
	switch x := raw.(type) {
	case float64:
		return int64(x), nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	}
	return 0, fmt.Errorf("expected a number, got %T", raw)
}
