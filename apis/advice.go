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

package apis

import "reflect"

// Method identifies one proxied method: its name, its receiver-stripped
// signature, and the type that declared it (an interface type for the
// interface strategy, the target's concrete type otherwise).
//
// Method is a value type and safe to copy. Two Methods are the same
// interception point iff their Keys are equal.
type Method struct {
	// Name is the exported method name.
	Name string
	// Type is the method's func signature without the receiver.
	Type reflect.Type
	// Owner is the declaring type.
	Owner reflect.Type
}

// Key returns the identity used for chain caching: declaring type plus
// method name. Signatures cannot collide under one owner, so the pair
// is unique.
func (m Method) Key() string {
	if m.Owner == nil {
		return m.Name
	}
	return m.Owner.String() + "." + m.Name
}

// NumIn reports the number of declared arguments (receiver excluded).
func (m Method) NumIn() int {
	if m.Type == nil {
		return 0
	}
	return m.Type.NumIn()
}

// Invocation is one in-flight call travelling down an interceptor
// chain toward the target. An Invocation is created per call and must
// not be retained or Proceed-ed after the call returns.
type Invocation interface {
	// Method returns the invoked method.
	Method() Method

	// Target returns the real object behind the proxy.
	Target() any

	// Proxy returns the proxy the call arrived through when the
	// configuration's expose-proxy flag is set, nil otherwise.
	Proxy() any

	// Args returns the live argument slice. Mutating its elements
	// before Proceed alters what downstream interceptors and the
	// target observe.
	Args() []any

	// SetArgs replaces the argument slice wholesale. The length must
	// match the method's declared arity.
	SetArgs(args []any) error

	// Proceed advances to the next interceptor in the chain, or to the
	// target itself once the chain is exhausted. It returns the
	// method's results with a trailing error result, if the method
	// declares one, split off into err.
	Proceed() (results []any, err error)
}

// Interceptor is the cross-cutting behavior run around a matched
// method call. An interceptor may inspect or replace arguments before
// proceeding, inspect or replace results after proceeding, decline to
// proceed at all (short-circuit), or translate a failure. Failures it
// does not translate propagate to the caller unchanged.
//
// Implementations must be safe for concurrent Invoke calls: one
// interceptor instance serves every matched method of every proxy
// built from the configuration.
type Interceptor interface {
	Invoke(inv Invocation) ([]any, error)
}

// InterceptorFunc adapts a plain function to Interceptor.
type InterceptorFunc func(inv Invocation) ([]any, error)

// Invoke calls f.
func (f InterceptorFunc) Invoke(inv Invocation) ([]any, error) {
	return f(inv)
}
