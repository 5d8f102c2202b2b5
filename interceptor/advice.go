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

// Package interceptor provides ready-made cross-cutting interceptors
// (structured logging, Prometheus metrics) and adapters that lift
// before/after functions into full around-interceptors.
package interceptor

import "dirpx.dev/apx/apis"

// Before lifts fn into an interceptor that runs before the call
// proceeds. A non-nil error from fn short-circuits the chain: the
// target is never reached and the error propagates to the caller.
func Before(fn func(m apis.Method, args []any) error) apis.Interceptor {
	return apis.InterceptorFunc(func(inv apis.Invocation) ([]any, error) {
		if err := fn(inv.Method(), inv.Args()); err != nil {
			return nil, err
		}
		return inv.Proceed()
	})
}

// AfterReturning lifts fn into an interceptor that runs after a
// successful call. fn sees the results but cannot replace them; it is
// skipped when the call failed.
func AfterReturning(fn func(m apis.Method, results []any)) apis.Interceptor {
	return apis.InterceptorFunc(func(inv apis.Invocation) ([]any, error) {
		results, err := inv.Proceed()
		if err == nil {
			fn(inv.Method(), results)
		}
		return results, err
	})
}

// AfterFailure lifts fn into an interceptor that runs when the call
// failed. fn may translate the failure by returning a different
// non-nil error, or rethrow by returning its argument; returning nil
// suppresses the failure and yields the (typically empty) results.
func AfterFailure(fn func(m apis.Method, err error) error) apis.Interceptor {
	return apis.InterceptorFunc(func(inv apis.Invocation) ([]any, error) {
		results, err := inv.Proceed()
		if err != nil {
			err = fn(inv.Method(), err)
		}
		return results, err
	})
}
