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

// Package pointcut provides the basic applicability predicates used to
// scope advisors: match-all, method-name matching (exact and regexp),
// target-type matching, and boolean combinators. Anything richer is a
// caller-supplied apis.Pointcut.
package pointcut

import (
	"reflect"
	"regexp"
	"slices"

	"dirpx.dev/apx/apis"
)

// All matches every method on every target.
func All() apis.Pointcut {
	return apis.PointcutFunc(func(apis.Method, reflect.Type) bool {
		return true
	})
}

// Names matches methods by exact name.
func Names(names ...string) apis.Pointcut {
	set := slices.Clone(names)
	return apis.PointcutFunc(func(m apis.Method, _ reflect.Type) bool {
		return slices.Contains(set, m.Name)
	})
}

// Match matches method names against a regular expression. The pattern
// is compiled eagerly so a bad expression fails at configuration time,
// not at dispatch time.
func Match(pattern string) (apis.Pointcut, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return apis.PointcutFunc(func(m apis.Method, _ reflect.Type) bool {
		return re.MatchString(m.Name)
	}), nil
}

// OfType matches every method whose target type is t (or whose target
// pointer type has element t).
func OfType(t reflect.Type) apis.Pointcut {
	return apis.PointcutFunc(func(_ apis.Method, target reflect.Type) bool {
		if target == t {
			return true
		}
		return target != nil && target.Kind() == reflect.Pointer && target.Elem() == t
	})
}

// And matches when every given pointcut matches.
func And(pcs ...apis.Pointcut) apis.Pointcut {
	return apis.PointcutFunc(func(m apis.Method, target reflect.Type) bool {
		for _, pc := range pcs {
			if !pc.Matches(m, target) {
				return false
			}
		}
		return true
	})
}

// Or matches when at least one given pointcut matches.
func Or(pcs ...apis.Pointcut) apis.Pointcut {
	return apis.PointcutFunc(func(m apis.Method, target reflect.Type) bool {
		for _, pc := range pcs {
			if pc.Matches(m, target) {
				return true
			}
		}
		return false
	})
}

// Not inverts a pointcut.
func Not(pc apis.Pointcut) apis.Pointcut {
	return apis.PointcutFunc(func(m apis.Method, target reflect.Type) bool {
		return !pc.Matches(m, target)
	})
}
