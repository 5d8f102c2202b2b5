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

// Package creator turns an advised configuration into proxies and fans
// lifecycle events out to registered listeners.
//
// A Creator is the synchronization boundary between configuration
// mutation and proxy materialization: the one-way active flag, the
// listener list, and both notification fan-outs are serialized through
// a single lock per Creator instance. Activation fires exactly once in
// a Creator's lifetime, before the first proxy is materialized;
// advice-changed notifications fire only after activation.
package creator

import (
	"errors"
	"sync"

	"dirpx.dev/apx/advised"
	"dirpx.dev/apx/apis"
	"dirpx.dev/apx/engine"
)

var (
	// ErrNilFactory is returned when a nil engine factory is provided.
	ErrNilFactory = errors.New("apx(creator): nil engine factory provided")
	// ErrNilListener is returned when a nil listener is provided.
	ErrNilListener = errors.New("apx(creator): nil listener provided")
	// ErrActive is returned when the engine factory is replaced after
	// the first proxy has been created. The factory is fixed at first
	// use.
	ErrActive = errors.New("apx(creator): already active")
)

// Creator owns one advised configuration, one engine factory, and the
// activation lifecycle. The configuration is embedded: mutators and
// read accessors of *advised.Config are part of the Creator surface,
// and every mutation is relayed to listeners once active.
type Creator struct {
	*advised.Config

	// mu serializes the active flag, the listener list, both
	// notification fan-outs, and proxy materialization.
	mu        sync.Mutex
	factory   apis.EngineFactory
	listeners []apis.Listener
	// active flips to true when the first proxy is created and never
	// reverts.
	active bool
}

// New returns a Creator over a fresh configuration, using the default
// engine factory.
func New() *Creator {
	c := &Creator{
		Config:  advised.NewConfig(),
		factory: engine.New(),
	}
	c.Config.OnChange(c.adviceChanged)
	return c
}

// SetEngineFactory replaces the proxy-generation strategy selector.
// The factory is fixed at first use: once a proxy has been created,
// replacement fails with ErrActive and existing proxies are never
// retrofitted.
func (c *Creator) SetEngineFactory(f apis.EngineFactory) error {
	if f == nil {
		return ErrNilFactory
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return ErrActive
	}
	c.factory = f
	return nil
}

// EngineFactory returns the current strategy selector.
func (c *Creator) EngineFactory() apis.EngineFactory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.factory
}

// AddListener registers a lifecycle listener. Listeners are notified
// synchronously, in registration order, under the Creator's lock: they
// must return promptly and must not call back into the Creator.
func (c *Creator) AddListener(l apis.Listener) error {
	if l == nil {
		return ErrNilListener
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
	return nil
}

// RemoveListener deregisters a listener by identity. Removing a
// listener that was never registered is a no-op.
func (c *Creator) RemoveListener(l apis.Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, reg := range c.listeners {
		if reg == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// CreateProxy materializes a proxy over the current configuration.
// On the first call (ever, across all goroutines) the Creator flips to
// active and fires Activated on every listener, in registration order,
// before the proxy is constructed. Strategy selection failures are
// returned as errors wrapping engine.ErrCreation and leave the
// configuration usable; the Creator stays active regardless, matching
// the one-way state transition.
func (c *Creator) CreateProxy() (apis.Proxy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.active {
		c.active = true
		for _, l := range c.listeners {
			l.Activated(c.Config)
		}
	}

	eng, err := c.factory.New(c.Config)
	if err != nil {
		return nil, err
	}
	return eng.Proxy(), nil
}

// IsActive reports whether any proxy has been created yet.
func (c *Creator) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// adviceChanged is the configuration's change hook. The cache is
// already cleared by the time it runs; all that is left is the
// fan-out, which happens only once active.
func (c *Creator) adviceChanged() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	for _, l := range c.listeners {
		l.AdviceChanged(c.Config)
	}
}
