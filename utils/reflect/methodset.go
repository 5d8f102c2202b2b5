/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reflect

import (
	"errors"
	"reflect"

	"dirpx.dev/apx/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrNotInterface is returned when an interface type was expected.
	ErrNotInterface = errors.New("reflect: type is not an interface")
	// ErrMethodConflict indicates two interfaces declaring the same
	// method name with different signatures.
	ErrMethodConflict = errors.New("reflect: conflicting method signatures")
)

// errType is the reflect.Type of the builtin error interface.
var errType = reflect.TypeOf((*error)(nil)).Elem()

// MethodsOf returns the exported method set of t as apis.Method values,
// in reflect's method order (sorted by name). For a pointer type this
// is the full concrete method set, value and pointer receivers alike.
// Method signatures are receiver-stripped.
func MethodsOf(t reflect.Type) ([]apis.Method, error) {
	if t == nil {
		return nil, ErrNilType
	}
	out := make([]apis.Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		out = append(out, apis.Method{
			Name:  m.Name,
			Type:  stripReceiver(t, m),
			Owner: t,
		})
	}
	return out, nil
}

// InterfaceMethods returns the union of the method sets of the given
// interface types, each method attributed to the interface that
// declared it. The union preserves interface registration order and,
// within one interface, reflect's method order. A name declared by two
// interfaces is allowed only with an identical signature; the first
// declaration wins attribution.
func InterfaceMethods(ifaces []reflect.Type) ([]apis.Method, error) {
	seen := make(map[string]apis.Method, 8)
	out := make([]apis.Method, 0, 8)
	for _, it := range ifaces {
		if it == nil {
			return nil, ErrNilType
		}
		if it.Kind() != reflect.Interface {
			return nil, ErrNotInterface
		}
		for i := 0; i < it.NumMethod(); i++ {
			m := it.Method(i)
			if prev, ok := seen[m.Name]; ok {
				if prev.Type != m.Type {
					return nil, ErrMethodConflict
				}
				continue
			}
			am := apis.Method{Name: m.Name, Type: m.Type, Owner: it}
			seen[m.Name] = am
			out = append(out, am)
		}
	}
	return out, nil
}

// HasTrailingError reports whether the (receiver-stripped) method
// signature t declares error as its final result.
func HasTrailingError(t reflect.Type) bool {
	if t == nil || t.NumOut() == 0 {
		return false
	}
	return t.Out(t.NumOut() - 1) == errType
}

// ErrorType returns the reflect.Type of the builtin error interface.
func ErrorType() reflect.Type { return errType }

// stripReceiver converts a concrete-type method signature (receiver as
// first argument) into the receiver-free form interface methods use.
func stripReceiver(t reflect.Type, m reflect.Method) reflect.Type {
	if t.Kind() == reflect.Interface {
		return m.Type
	}
	in := make([]reflect.Type, 0, m.Type.NumIn()-1)
	for i := 1; i < m.Type.NumIn(); i++ {
		in = append(in, m.Type.In(i))
	}
	out := make([]reflect.Type, 0, m.Type.NumOut())
	for i := 0; i < m.Type.NumOut(); i++ {
		out = append(out, m.Type.Out(i))
	}
	return reflect.FuncOf(in, out, m.Type.IsVariadic())
}
