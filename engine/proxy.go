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

package engine

import (
	"fmt"
	"reflect"
	"slices"

	"dirpx.dev/apx/apis"
	uref "dirpx.dev/apx/utils/reflect"
)

// proxy is the generated stand-in both strategies materialize. It
// holds the advised configuration by reference: advisor changes made
// after creation are visible to later calls. The method table decides
// what is reachable; the configuration decides what runs around it.
type proxy struct {
	cfg   apis.Advised
	table methodTable
}

// Ensure proxy implements apis.Proxy.
var _ apis.Proxy = (*proxy)(nil)

func newProxy(cfg apis.Advised, table methodTable) *proxy {
	return &proxy{cfg: cfg, table: table}
}

// Call dispatches one invocation of the named method: resolve the
// interceptor chain from the configuration's cache, then run it as a
// nested continuation down to the target.
func (p *proxy) Call(method string, args ...any) ([]any, error) {
	m, ok := p.table.byName[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchMethod, method)
	}
	if err := checkArity(m.Type, len(args)); err != nil {
		return nil, err
	}

	var px any
	if p.cfg.ExposeProxy() {
		px = p
	}
	inv := &invocation{
		method: m,
		target: p.cfg.Target(),
		proxy:  px,
		chain:  p.cfg.ChainFor(m),
		args:   args,
	}
	return inv.Proceed()
}

// Methods returns the proxy's method table, sorted by name.
func (p *proxy) Methods() []apis.Method {
	return slices.Clone(p.table.ordered)
}

// Target returns the configuration's current target.
func (p *proxy) Target() any {
	return p.cfg.Target()
}

// Fill binds the exported func-typed fields of *struct facade to the
// proxy. Each such field must name a proxied method and repeat its
// exact receiver-stripped signature; non-func and unexported fields
// are ignored. A facade with no bindable fields is rejected.
//
// The bound funcs route through Call. If an interceptor substitutes a
// result whose type no longer fits the method signature, the bound
// func panics at the call site; dispatch errors of methods without a
// trailing error result also surface as panics, since the signature
// leaves no error channel.
func (p *proxy) Fill(facade any) error {
	if facade == nil {
		return fmt.Errorf("%w: nil facade", ErrFacade)
	}
	rv := reflect.ValueOf(facade)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: facade must be a non-nil pointer to a struct, got %T", ErrFacade, facade)
	}
	sv := rv.Elem()
	st := sv.Type()

	bound := 0
	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Func {
			continue
		}
		m, ok := p.table.byName[f.Name]
		if !ok {
			return fmt.Errorf("%w: field %s names no proxied method", ErrFacade, f.Name)
		}
		if f.Type != m.Type {
			return fmt.Errorf("%w: field %s has signature %s, method has %s", ErrFacade, f.Name, f.Type, m.Type)
		}
		sv.Field(i).Set(p.makeBinding(m))
		bound++
	}
	if bound == 0 {
		return fmt.Errorf("%w: facade %s has no exported func fields", ErrFacade, st)
	}
	return nil
}

// makeBinding builds the reflect.MakeFunc trampoline for one method.
func (p *proxy) makeBinding(m apis.Method) reflect.Value {
	ft := m.Type
	hasErr := uref.HasTrailingError(ft)
	return reflect.MakeFunc(ft, func(in []reflect.Value) []reflect.Value {
		args := flattenArgs(ft, in)
		results, err := p.Call(m.Name, args...)

		nOut := ft.NumOut()
		out := make([]reflect.Value, nOut)
		last := nOut
		if hasErr {
			last = nOut - 1
			if err != nil {
				out[last] = reflect.ValueOf(&err).Elem()
			} else {
				out[last] = reflect.Zero(uref.ErrorType())
			}
		} else if err != nil {
			panic(fmt.Sprintf("apx(engine): %s: %v", m.Name, err))
		}
		for i := 0; i < last; i++ {
			if i < len(results) && results[i] != nil {
				v := reflect.ValueOf(results[i])
				if !v.Type().AssignableTo(ft.Out(i)) {
					panic(fmt.Sprintf("apx(engine): %s: result %d has type %s, want %s", m.Name, i, v.Type(), ft.Out(i)))
				}
				out[i] = v
			} else {
				out[i] = reflect.Zero(ft.Out(i))
			}
		}
		return out
	})
}

// flattenArgs converts MakeFunc's argument form into the flat []any
// Call expects, expanding the trailing slice of a variadic signature.
func flattenArgs(ft reflect.Type, in []reflect.Value) []any {
	if !ft.IsVariadic() {
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v.Interface()
		}
		return args
	}
	n := len(in) - 1
	variadic := in[n]
	args := make([]any, 0, n+variadic.Len())
	for i := 0; i < n; i++ {
		args = append(args, in[i].Interface())
	}
	for i := 0; i < variadic.Len(); i++ {
		args = append(args, variadic.Index(i).Interface())
	}
	return args
}

// checkArity validates an argument count against a receiver-stripped
// method signature.
func checkArity(ft reflect.Type, n int) error {
	if ft.IsVariadic() {
		if n < ft.NumIn()-1 {
			return fmt.Errorf("%w: got %d, want at least %d", ErrArity, n, ft.NumIn()-1)
		}
		return nil
	}
	if n != ft.NumIn() {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, n, ft.NumIn())
	}
	return nil
}
