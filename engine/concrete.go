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

package engine

import (
	"fmt"

	"dirpx.dev/apx/apis"
	uref "dirpx.dev/apx/utils/reflect"
)

// concreteEngine is the strategy standing in for subclass-based
// proxying: its method table is the target's full concrete method set,
// so callers reach methods no configured interface declares. The table
// is fixed at selection time from the target type then in effect.
type concreteEngine struct {
	cfg   apis.Advised
	table methodTable
}

// Ensure concreteEngine implements apis.Engine.
var _ apis.Engine = (*concreteEngine)(nil)

func newConcreteEngine(cfg apis.Advised) (apis.Engine, error) {
	ms, err := uref.MethodsOf(cfg.TargetType())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreation, err)
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: target type %s exports no methods", ErrCreation, cfg.TargetType())
	}
	return &concreteEngine{cfg: cfg, table: newMethodTable(ms)}, nil
}

// Proxy materializes a proxy sharing the engine's configuration.
func (e *concreteEngine) Proxy() apis.Proxy {
	return newProxy(e.cfg, e.table)
}
