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

// Package apx provides aspect-oriented proxies: substitute objects
// that stand in for a real target and intercept every call, so
// cross-cutting behavior (logging, transaction demarcation, security
// checks, metrics) runs before/after/around the target's own logic
// without modifying the target's code.
//
// # Design
//
// apx is built from four layers, each its own package:
//
//   - advised.Config: the mutable configuration: target, exposed
//     interface set, ordered advisor list (pointcut + interceptor
//     pairs), and shaping flags. Every mutation atomically invalidates
//     the derived per-method chain cache. A frozen configuration
//     rejects all further mutation.
//
//   - creator.Creator: owns one configuration, one engine factory,
//     a listener list, and the one-way active flag. The first
//     CreateProxy call, ever, across all goroutines, flips the flag
//     and fires Activated on every listener before the proxy is
//     built. Later configuration mutations fan AdviceChanged out to
//     listeners, but only once active.
//
//   - engine: the strategy layer. The interface strategy exposes
//     exactly the configured interfaces; the concrete strategy
//     exposes the target's full concrete method set and is selected
//     when forced or when no interfaces are configured. When neither
//     strategy fits, creation fails with an error wrapping
//     engine.ErrCreation and the configuration stays reusable.
//
//   - the generated proxy: resolves each method's interceptor chain
//     from the cache (computing it lazily in advisor order) and runs
//     it as a nested continuation, first advisor outermost, target
//     innermost. Interceptors may rewrite arguments, replace results,
//     short-circuit, or translate failures; the engine itself never
//     retries, logs, or swallows anything.
//
// # Concurrency model
//
// Chain lookups on an unchanged configuration are lock-free: the cache
// is an atomically published generation, and invalidation swaps in a
// fresh one. Concurrent misses for the same method collapse into one
// computation. The creator's active flag, listener list, and both
// notification fan-outs are serialized through one lock per creator,
// so activation is observed exactly once no matter how many goroutines
// race CreateProxy, and no AdviceChanged can be observed before its
// Activated.
//
// # Usage pattern
//
// A typical caller does:
//
//	f, err := apx.New(&CalcImpl{},
//	    apx.WithInterfaces(apx.InterfaceOf[Calc]()),
//	    apx.WithInterceptors(interceptor.NewLogging(nil)),
//	)
//	if err != nil { ... }
//
//	p, err := f.Proxy()
//	results, err := p.Call("Add", 1, 1)
//
// or, for a statically typed surface:
//
//	type CalcFacade struct {
//	    Add func(a, b int) int
//	    Sub func(a, b int) int
//	}
//	calc, err := apx.Build[CalcFacade](f)
//	sum := calc.Add(1, 1)
//
// Advisors added after the proxy exists take effect on the next call:
// proxies hold the configuration by reference and chains are
// re-derived after every mutation.
//
// # Scope
//
// apx is intentionally small. It does not try to be a dependency
// injection container, a configuration-file format, or a pointcut
// expression language. It solves one job:
//
//	"Turn a configuration of interceptors into an active, cacheable,
//	 thread-safe proxy, and dispatch every call through the ordered
//	 chain down to the target."
//
// Wiring targets to interceptor configurations, deciding which methods
// are advised beyond the basic pointcut predicates, and parsing any
// external configuration belong to higher layers.
package apx
