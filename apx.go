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

package apx

import (
	"reflect"

	"dirpx.dev/apx/apis"
	"dirpx.dev/apx/creator"
)

// Factory is the convenience front door: a creator over a fresh
// configuration, assembled from a target and options in one call.
// The embedded Creator (and through it, the advised configuration)
// remains fully accessible for later reconfiguration.
type Factory struct {
	*creator.Creator
}

// Option configures a Factory during New.
type Option func(*Factory) error

// New builds a Factory proxying target. Options apply in order; the
// first failing option aborts construction.
func New(target any, opts ...Option) (*Factory, error) {
	f := &Factory{Creator: creator.New()}
	if err := f.SetTarget(target); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WithInterfaces adds interface types to the exposed set.
func WithInterfaces(ts ...reflect.Type) Option {
	return func(f *Factory) error {
		for _, t := range ts {
			if err := f.AddInterface(t); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithInterceptors adds match-all interceptors, in order.
func WithInterceptors(ics ...apis.Interceptor) Option {
	return func(f *Factory) error {
		for _, ic := range ics {
			if err := f.AddInterceptor(ic); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithAdvisors adds advisors, in order.
func WithAdvisors(as ...apis.Advisor) Option {
	return func(f *Factory) error {
		for _, a := range as {
			if err := f.AddAdvisor(a); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithForceConcrete forces the concrete-type proxy strategy.
func WithForceConcrete() Option {
	return func(f *Factory) error {
		return f.SetForceConcrete(true)
	}
}

// WithExposeProxy makes invocations carry the proxy they arrived
// through.
func WithExposeProxy() Option {
	return func(f *Factory) error {
		return f.SetExposeProxy(true)
	}
}

// WithListeners registers lifecycle listeners, in order.
func WithListeners(ls ...apis.Listener) Option {
	return func(f *Factory) error {
		for _, l := range ls {
			if err := f.AddListener(l); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithEngineFactory replaces the strategy selector before first use.
func WithEngineFactory(ef apis.EngineFactory) Option {
	return func(f *Factory) error {
		return f.SetEngineFactory(ef)
	}
}

// Proxy materializes a proxy over the current configuration. It is
// CreateProxy under the name callers of a factory expect.
func (f *Factory) Proxy() (apis.Proxy, error) {
	return f.CreateProxy()
}

// InterfaceOf returns the reflect.Type of the interface type T, the
// form AddInterface and WithInterfaces expect.
func InterfaceOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Build materializes a proxy from f and fills a facade of type T: a
// struct whose exported func fields name proxied methods and repeat
// their signatures. It is the typed shortcut over Factory.Proxy plus
// apis.Proxy.Fill.
func Build[T any](f *Factory) (T, error) {
	var facade T
	p, err := f.CreateProxy()
	if err != nil {
		return facade, err
	}
	if err := p.Fill(&facade); err != nil {
		return facade, err
	}
	return facade, nil
}
