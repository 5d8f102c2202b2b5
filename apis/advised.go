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

// Advised is the read side of a proxy configuration, the view engines
// and generated proxies work against. A proxy holds its Advised by
// reference, not by copy: configuration changes made after the proxy
// was created are visible to subsequent calls through it.
//
// All methods are safe for concurrent use with each other and with
// configuration mutation.
type Advised interface {
	// Target returns the real object calls are ultimately routed to,
	// or nil if none has been set.
	Target() any

	// TargetType returns the concrete type of the target, or nil.
	TargetType() reflect.Type

	// Interfaces returns a copy of the configured interface set, in
	// registration order.
	Interfaces() []reflect.Type

	// Advisors returns a copy of the ordered advisor list. Order is
	// interception order: the first advisor runs outermost.
	Advisors() []Advisor

	// ChainFor resolves the ordered interceptor chain applicable to m,
	// computing and caching it on first use. The returned slice must
	// not be mutated.
	ChainFor(m Method) []Interceptor

	// ForceConcrete reports whether proxying must expose the target's
	// full concrete method set rather than the configured interfaces.
	ForceConcrete() bool

	// ExposeProxy reports whether invocations should carry the proxy
	// they arrived through.
	ExposeProxy() bool

	// Frozen reports whether the configuration has been frozen.
	Frozen() bool
}

// Listener observes the lifecycle of an advised configuration that is
// producing proxies. Callbacks are delivered synchronously, in
// registration order, while the owning creator's lock is held: they
// must return promptly and must not call back into the creator.
type Listener interface {
	// Activated fires exactly once, when the first proxy is created
	// from the configuration.
	Activated(cfg Advised)

	// AdviceChanged fires on every configuration mutation that happens
	// after activation. It never fires before Activated.
	AdviceChanged(cfg Advised)
}
