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

// Package engine selects a proxy-generation strategy for an advised
// configuration and runs the interception chain on every call through
// a materialized proxy.
//
// Two strategies exist. The interface strategy exposes exactly the
// configured interface set and nothing else. The concrete strategy
// exposes the target's full concrete method set, including methods
// declared by no interface; it is chosen when the configuration forces
// it or exposes no interfaces. Both route every call through the same
// dispatch contract.
package engine

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"dirpx.dev/apx/apis"
)

var (
	// ErrCreation classifies every strategy-selection failure. All
	// errors returned by EngineFactory.New wrap it; the configuration
	// is left untouched and reusable.
	ErrCreation = errors.New("apx(engine): no viable proxy strategy")
	// ErrNoSuchMethod is returned when a call names a method outside
	// the proxy's method table, or the current target lacks it.
	ErrNoSuchMethod = errors.New("apx(engine): no such method")
	// ErrArity is returned when a call supplies the wrong number of
	// arguments for the invoked method.
	ErrArity = errors.New("apx(engine): argument count mismatch")
	// ErrArgType is returned when an argument cannot be assigned or
	// converted to the method's parameter type.
	ErrArgType = errors.New("apx(engine): argument type mismatch")
	// ErrFacade is returned by Proxy.Fill for an unusable facade value.
	ErrFacade = errors.New("apx(engine): invalid facade")
)

// New returns the default strategy selector.
func New() apis.EngineFactory {
	return defaultFactory{}
}

// defaultFactory picks the concrete strategy when forced or when no
// interfaces are configured, the interface strategy otherwise.
type defaultFactory struct{}

// Ensure defaultFactory implements apis.EngineFactory.
var _ apis.EngineFactory = defaultFactory{}

// New selects a strategy for cfg.
func (defaultFactory) New(cfg apis.Advised) (apis.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil configuration", ErrCreation)
	}
	if cfg.Target() == nil || cfg.TargetType() == nil {
		return nil, fmt.Errorf("%w: no target set", ErrCreation)
	}
	if cfg.ForceConcrete() || len(cfg.Interfaces()) == 0 {
		return newConcreteEngine(cfg)
	}
	return newIfaceEngine(cfg)
}

// methodTable indexes a method set by name, keeping the ordered slice
// for Proxy.Methods.
type methodTable struct {
	byName  map[string]apis.Method
	ordered []apis.Method
}

func newMethodTable(ms []apis.Method) methodTable {
	ordered := slices.Clone(ms)
	slices.SortFunc(ordered, func(a, b apis.Method) int {
		return strings.Compare(a.Name, b.Name)
	})
	t := methodTable{byName: make(map[string]apis.Method, len(ms)), ordered: ordered}
	for _, m := range ordered {
		t.byName[m.Name] = m
	}
	return t
}
