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

// Pointcut decides whether an advisor applies to a given method on a
// given target type. Matches must be pure and safe for concurrent use:
// it is evaluated during chain construction, possibly by several
// goroutines for different methods at once.
type Pointcut interface {
	Matches(m Method, target reflect.Type) bool
}

// PointcutFunc adapts a plain predicate to Pointcut.
type PointcutFunc func(m Method, target reflect.Type) bool

// Matches calls f.
func (f PointcutFunc) Matches(m Method, target reflect.Type) bool {
	return f(m, target)
}

// Advisor pairs an applicability test with an interceptor. The advised
// configuration owns advisors; cached chains reference only the
// interceptors of those that matched.
type Advisor interface {
	// Pointcut returns the applicability test. A nil Pointcut is
	// treated as match-all.
	Pointcut() Pointcut
	// Advice returns the interceptor to run when the pointcut matches.
	Advice() Interceptor
}
