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

	"dirpx.dev/apx/apis"
	uref "dirpx.dev/apx/utils/reflect"
)

// invocation carries one call down the chain. One instance exists per
// call; Proceed advances an index, so each interceptor's continuation
// resumes exactly where the chain left off, and the innermost step
// reflects the call onto the target. Invocations are confined to the
// calling goroutine.
type invocation struct {
	method apis.Method
	target any
	proxy  any
	chain  []apis.Interceptor
	args   []any
	idx    int
}

// Ensure invocation implements apis.Invocation.
var _ apis.Invocation = (*invocation)(nil)

// Method returns the invoked method.
func (inv *invocation) Method() apis.Method { return inv.method }

// Target returns the real object.
func (inv *invocation) Target() any { return inv.target }

// Proxy returns the proxy when the configuration exposes it, else nil.
func (inv *invocation) Proxy() any { return inv.proxy }

// Args returns the live argument slice.
func (inv *invocation) Args() []any { return inv.args }

// SetArgs replaces the argument slice for the rest of the chain.
func (inv *invocation) SetArgs(args []any) error {
	if err := checkArity(inv.method.Type, len(args)); err != nil {
		return err
	}
	inv.args = args
	return nil
}

// Proceed runs the next interceptor, or the target once the chain is
// exhausted. Failures propagate unchanged: the engine never retries,
// translates, or suppresses.
func (inv *invocation) Proceed() ([]any, error) {
	if inv.idx < len(inv.chain) {
		ic := inv.chain[inv.idx]
		inv.idx++
		return ic.Invoke(inv)
	}
	return inv.invokeTarget()
}

// invokeTarget reflects the call onto the current target and splits a
// trailing error result off per the dispatch convention.
func (inv *invocation) invokeTarget() ([]any, error) {
	mv := reflect.ValueOf(inv.target).MethodByName(inv.method.Name)
	if !mv.IsValid() {
		return nil, fmt.Errorf("%w: %q on target %T", ErrNoSuchMethod, inv.method.Name, inv.target)
	}
	mt := mv.Type()
	if err := checkArity(mt, len(inv.args)); err != nil {
		return nil, err
	}

	in := make([]reflect.Value, len(inv.args))
	for i, a := range inv.args {
		pt := paramType(mt, i)
		if a == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(a)
		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("%w: argument %d has type %s, want %s", ErrArgType, i, av.Type(), pt)
		}
	}

	out := mv.Call(in)

	n := len(out)
	hasErr := uref.HasTrailingError(mt)
	last := n
	if hasErr {
		last = n - 1
	}
	results := make([]any, last)
	for i := 0; i < last; i++ {
		results[i] = out[i].Interface()
	}
	var err error
	if hasErr {
		if e := out[n-1].Interface(); e != nil {
			err = e.(error)
		}
	}
	return results, err
}

// paramType returns the declared type of argument i, unrolling the
// variadic tail.
func paramType(mt reflect.Type, i int) reflect.Type {
	if mt.IsVariadic() && i >= mt.NumIn()-1 {
		return mt.In(mt.NumIn() - 1).Elem()
	}
	return mt.In(i)
}
