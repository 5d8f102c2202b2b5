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

// Package advised holds the mutable proxy configuration: the target,
// the exposed interface set, the ordered advisor list, the shaping
// flags, and the per-method interceptor chain cache derived from them.
//
// Every mutator follows the same discipline: validate, mutate under
// the write lock, swap in a fresh cache generation, then fire the
// change hook outside the lock. Reads never invalidate anything.
package advised

import (
	"errors"
	"reflect"
	"slices"
	"sync"

	"dirpx.dev/apx/apis"
)

var (
	// ErrFrozen is returned by every mutator once Freeze has been called.
	ErrFrozen = errors.New("apx(advised): configuration is frozen")
	// ErrNilTarget is returned when a nil target is provided.
	ErrNilTarget = errors.New("apx(advised): nil target provided")
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("apx(advised): nil reflect.Type provided")
	// ErrNilAdvisor is returned when a nil advisor is provided.
	ErrNilAdvisor = errors.New("apx(advised): nil advisor provided")
	// ErrNilInterceptor is returned when a nil interceptor is provided.
	ErrNilInterceptor = errors.New("apx(advised): nil interceptor provided")
	// ErrNotInterface is returned when a non-interface type is added
	// to the interface set.
	ErrNotInterface = errors.New("apx(advised): type is not an interface")
	// ErrAdvisorIndex is returned for an out-of-range advisor index.
	ErrAdvisorIndex = errors.New("apx(advised): advisor index out of range")
)

// Config is the advised configuration. The zero value is not usable;
// construct with NewConfig.
type Config struct {
	// mu guards all mutable fields below.
	mu sync.RWMutex
	// target is the real object, ttype its concrete type.
	target any
	ttype  reflect.Type
	// ifaces is the exposed interface set, in registration order.
	ifaces []reflect.Type
	// advisors is the ordered advisor list. Index 0 runs outermost.
	advisors []apis.Advisor
	// Shaping flags.
	forceConcrete bool
	exposeProxy   bool
	frozen        bool
	// cache holds the derived per-method chains.
	cache *chainCache
	// onChange is fired after every successful mutation, outside mu.
	onChange func()
}

// Ensure Config implements the read-side contract.
var _ apis.Advised = (*Config)(nil)

// NewConfig returns an empty, mutable configuration.
func NewConfig() *Config {
	return &Config{cache: newChainCache()}
}

// OnChange installs the change hook fired after every successful
// mutation, once the cache has been invalidated. At most one hook is
// supported; installing it is not itself a mutation. The hook must be
// installed before the configuration is shared across goroutines.
func (c *Config) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// SetTarget sets the real object proxied calls are routed to.
func (c *Config) SetTarget(target any) error {
	if target == nil {
		return ErrNilTarget
	}
	return c.mutate(func() error {
		c.target = target
		c.ttype = reflect.TypeOf(target)
		return nil
	})
}

// AddInterface adds an interface type to the exposed set. Adding a
// type already present is a no-op (but still counts as a mutation).
// Whether the target implements the interface is checked at proxy
// creation time, so interfaces may be added before the target is set.
func (c *Config) AddInterface(t reflect.Type) error {
	if t == nil {
		return ErrNilType
	}
	if t.Kind() != reflect.Interface {
		return ErrNotInterface
	}
	return c.mutate(func() error {
		if !slices.Contains(c.ifaces, t) {
			c.ifaces = append(c.ifaces, t)
		}
		return nil
	})
}

// AddAdvisor appends an advisor to the end of the list (innermost
// position among those registered so far).
func (c *Config) AddAdvisor(a apis.Advisor) error {
	if a == nil {
		return ErrNilAdvisor
	}
	return c.mutate(func() error {
		c.advisors = append(c.advisors, a)
		return nil
	})
}

// AddAdvisorAt inserts an advisor at position i, shifting later
// advisors inward. i may equal the current length (append).
func (c *Config) AddAdvisorAt(i int, a apis.Advisor) error {
	if a == nil {
		return ErrNilAdvisor
	}
	return c.mutate(func() error {
		if i < 0 || i > len(c.advisors) {
			return ErrAdvisorIndex
		}
		c.advisors = slices.Insert(c.advisors, i, a)
		return nil
	})
}

// RemoveAdvisorAt removes the advisor at position i.
func (c *Config) RemoveAdvisorAt(i int) error {
	return c.mutate(func() error {
		if i < 0 || i >= len(c.advisors) {
			return ErrAdvisorIndex
		}
		c.advisors = slices.Delete(c.advisors, i, i+1)
		return nil
	})
}

// ReplaceAdvisor replaces the advisor at position i.
func (c *Config) ReplaceAdvisor(i int, a apis.Advisor) error {
	if a == nil {
		return ErrNilAdvisor
	}
	return c.mutate(func() error {
		if i < 0 || i >= len(c.advisors) {
			return ErrAdvisorIndex
		}
		c.advisors[i] = a
		return nil
	})
}

// AddInterceptor appends an interceptor that applies to every method,
// wrapped in a match-all advisor.
func (c *Config) AddInterceptor(ic apis.Interceptor) error {
	if ic == nil {
		return ErrNilInterceptor
	}
	return c.AddAdvisor(NewAdvisor(nil, ic))
}

// SetForceConcrete sets the flag forcing the concrete-type strategy.
func (c *Config) SetForceConcrete(v bool) error {
	return c.mutate(func() error {
		c.forceConcrete = v
		return nil
	})
}

// SetExposeProxy sets the flag that makes invocations carry the proxy
// they arrived through.
func (c *Config) SetExposeProxy(v bool) error {
	return c.mutate(func() error {
		c.exposeProxy = v
		return nil
	})
}

// Freeze marks the configuration immutable. Every later mutator fails
// with ErrFrozen. Freezing is one-way.
func (c *Config) Freeze() error {
	return c.mutate(func() error {
		c.frozen = true
		return nil
	})
}

// Target returns the current target, or nil.
func (c *Config) Target() any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.target
}

// TargetType returns the concrete type of the current target, or nil.
func (c *Config) TargetType() reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ttype
}

// Interfaces returns a copy of the exposed interface set.
func (c *Config) Interfaces() []reflect.Type {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.ifaces)
}

// Advisors returns a copy of the ordered advisor list.
func (c *Config) Advisors() []apis.Advisor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.advisors)
}

// ForceConcrete reports the force-concrete flag.
func (c *Config) ForceConcrete() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.forceConcrete
}

// ExposeProxy reports the expose-proxy flag.
func (c *Config) ExposeProxy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.exposeProxy
}

// Frozen reports whether Freeze has been called.
func (c *Config) Frozen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frozen
}

// ChainFor resolves the interceptor chain for m: cache hit if the
// advisor list has not changed since the chain was computed, otherwise
// a filtered walk of the advisor list in order. Lookups on an
// unchanged cache take no lock; concurrent misses for the same method
// are collapsed to one computation.
func (c *Config) ChainFor(m apis.Method) []apis.Interceptor {
	return c.cache.chainFor(m, func() []apis.Interceptor {
		c.mu.RLock()
		advisors := slices.Clone(c.advisors)
		tt := c.ttype
		c.mu.RUnlock()

		chain := make([]apis.Interceptor, 0, len(advisors))
		for _, a := range advisors {
			pc := a.Pointcut()
			if pc != nil && !pc.Matches(m, tt) {
				continue
			}
			if ic := a.Advice(); ic != nil {
				chain = append(chain, ic)
			}
		}
		return chain
	})
}

// mutate runs fn under the write lock after the frozen check, then,
// if fn succeeded, invalidates the cache and fires the change hook.
// The hook runs outside the lock so it may take the creator's lock
// without ordering hazards.
func (c *Config) mutate(fn func() error) error {
	c.mu.Lock()
	if c.frozen {
		c.mu.Unlock()
		return ErrFrozen
	}
	if err := fn(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.cache.invalidate()
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}
