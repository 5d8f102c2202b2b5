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

// Proxy is the runtime stand-in handed back to callers. Every call
// through it resolves the method's interceptor chain from the advised
// configuration and executes it down to the target.
//
// A Proxy is safe for concurrent use. Its lifetime is independent of
// the creator that built it.
type Proxy interface {
	// Call invokes the named method with the given arguments, routing
	// through the interceptor chain. Results follow the trailing-error
	// convention: a final error result of the method, when declared,
	// is returned as err rather than in results.
	Call(method string, args ...any) ([]any, error)

	// Fill populates facade, a non-nil pointer to a struct whose
	// exported func-typed fields name proxied methods and repeat their
	// exact signatures. Each field is bound to a func that routes
	// through Call, giving the caller a statically typed surface.
	Fill(facade any) error

	// Methods returns the proxy's intercepted method set, sorted by
	// name.
	Methods() []Method

	// Target returns the current target of the underlying
	// configuration.
	Target() any
}

// Engine is one proxy-generation strategy bound to one configuration:
// the product of strategy selection, able to materialize proxies.
type Engine interface {
	// Proxy materializes a new proxy over the engine's configuration.
	Proxy() Proxy
}

// EngineFactory selects and instantiates a proxy-generation strategy
// for a configuration. Selection is a pure function of the target
// type, the interface set, and the shaping flags; it fails when no
// strategy can satisfy the configuration.
type EngineFactory interface {
	New(cfg Advised) (Engine, error)
}
