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

package creator_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"dirpx.dev/apx/apis"
	"dirpx.dev/apx/creator"
	"dirpx.dev/apx/engine"
)

type calc struct{}

func (calc) Add(a, b int) int { return a + b }
func (calc) Sub(a, b int) int { return a - b }

// recListener records lifecycle events. Counters are atomic so the
// same listener can serve the concurrency tests.
type recListener struct {
	activated atomic.Int64
	changed   atomic.Int64
	// order records event names for ordering assertions; only used by
	// single-goroutine tests.
	order []string
}

func (l *recListener) Activated(apis.Advised)     { l.activated.Add(1); l.order = append(l.order, "activated") }
func (l *recListener) AdviceChanged(apis.Advised) { l.changed.Add(1); l.order = append(l.order, "changed") }

func newCalcCreator(t *testing.T) *creator.Creator {
	t.Helper()
	c := creator.New()
	if err := c.SetTarget(calc{}); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestActivationFiresOnce(t *testing.T) {
	c := newCalcCreator(t)
	l := &recListener{}
	if err := c.AddListener(l); err != nil {
		t.Fatal(err)
	}

	if c.IsActive() {
		t.Fatal("creator active before any proxy was created")
	}
	for i := 0; i < 5; i++ {
		if _, err := c.CreateProxy(); err != nil {
			t.Fatalf("CreateProxy %d: %v", i, err)
		}
	}
	if !c.IsActive() {
		t.Fatal("creator not active after CreateProxy")
	}
	if got := l.activated.Load(); got != 1 {
		t.Fatalf("activated fired %d times, want exactly 1", got)
	}
}

func TestAdviceChangedOnlyAfterActivation(t *testing.T) {
	c := newCalcCreator(t)
	l := &recListener{}
	if err := c.AddListener(l); err != nil {
		t.Fatal(err)
	}

	// Mutations before activation: cache cleared, no notification.
	if err := c.AddInterceptor(apis.InterceptorFunc(func(inv apis.Invocation) ([]any, error) {
		return inv.Proceed()
	})); err != nil {
		t.Fatal(err)
	}
	if got := l.changed.Load(); got != 0 {
		t.Fatalf("adviceChanged fired %d times before activation, want 0", got)
	}

	if _, err := c.CreateProxy(); err != nil {
		t.Fatal(err)
	}
	if err := c.SetExposeProxy(true); err != nil {
		t.Fatal(err)
	}
	if got := l.changed.Load(); got != 1 {
		t.Fatalf("adviceChanged fired %d times after activation, want 1", got)
	}

	// Activation strictly precedes any change notification.
	if len(l.order) < 2 || l.order[0] != "activated" {
		t.Fatalf("event order = %v, want activated first", l.order)
	}
}

func TestListenersNotifiedInRegistrationOrder(t *testing.T) {
	c := newCalcCreator(t)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		if err := c.AddListener(listenerFunc{onActivated: func() { order = append(order, i) }}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := c.CreateProxy(); err != nil {
		t.Fatal(err)
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("activation order = %v, want [0 1 2]", order)
	}
}

// listenerFunc adapts closures to apis.Listener for ordering tests.
type listenerFunc struct {
	onActivated func()
	onChanged   func()
}

func (l listenerFunc) Activated(apis.Advised) {
	if l.onActivated != nil {
		l.onActivated()
	}
}

func (l listenerFunc) AdviceChanged(apis.Advised) {
	if l.onChanged != nil {
		l.onChanged()
	}
}

func TestRemoveListener(t *testing.T) {
	c := newCalcCreator(t)
	kept := &recListener{}
	dropped := &recListener{}
	if err := c.AddListener(kept); err != nil {
		t.Fatal(err)
	}
	if err := c.AddListener(dropped); err != nil {
		t.Fatal(err)
	}

	c.RemoveListener(dropped)
	// Removing an absent listener is a no-op, not an error.
	c.RemoveListener(&recListener{})

	if _, err := c.CreateProxy(); err != nil {
		t.Fatal(err)
	}
	if kept.activated.Load() != 1 {
		t.Fatal("kept listener missed activation")
	}
	if dropped.activated.Load() != 0 {
		t.Fatal("removed listener still notified")
	}
}

func TestListenerValidation(t *testing.T) {
	c := newCalcCreator(t)
	if err := c.AddListener(nil); !errors.Is(err, creator.ErrNilListener) {
		t.Fatalf("err = %v, want ErrNilListener", err)
	}
}

func TestEngineFactoryFixedAtFirstUse(t *testing.T) {
	c := newCalcCreator(t)

	if err := c.SetEngineFactory(nil); !errors.Is(err, creator.ErrNilFactory) {
		t.Fatalf("err = %v, want ErrNilFactory", err)
	}
	if err := c.SetEngineFactory(engine.New()); err != nil {
		t.Fatalf("replace before activation: %v", err)
	}

	if _, err := c.CreateProxy(); err != nil {
		t.Fatal(err)
	}
	if err := c.SetEngineFactory(engine.New()); !errors.Is(err, creator.ErrActive) {
		t.Fatalf("err = %v, want ErrActive after activation", err)
	}
}

func TestCreationFailureLeavesConfigUsable(t *testing.T) {
	c := creator.New()
	// No exported methods and no interfaces: no strategy fits.
	if err := c.SetTarget(&struct{ X int }{}); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CreateProxy(); !errors.Is(err, engine.ErrCreation) {
		t.Fatalf("err = %v, want ErrCreation", err)
	}
	// Activation is one-way even when creation failed.
	if !c.IsActive() {
		t.Fatal("creator must be active after a failed CreateProxy")
	}

	// The configuration remains mutable and a later attempt succeeds.
	if err := c.SetTarget(calc{}); err != nil {
		t.Fatalf("config not mutable after failure: %v", err)
	}
	p, err := c.CreateProxy()
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	got, err := p.Call("Add", 2, 3)
	if err != nil || len(got) != 1 || got[0] != 5 {
		t.Fatalf("Add(2,3) = %v, %v; want [5], nil", got, err)
	}
}
