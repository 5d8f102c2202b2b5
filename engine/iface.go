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

// ifaceEngine is the lightweight strategy: its method table is exactly
// the union of the configured interfaces' method sets, so nothing
// outside the declared interfaces is reachable through the proxy.
type ifaceEngine struct {
	cfg   apis.Advised
	table methodTable
}

// Ensure ifaceEngine implements apis.Engine.
var _ apis.Engine = (*ifaceEngine)(nil)

func newIfaceEngine(cfg apis.Advised) (apis.Engine, error) {
	ifaces := cfg.Interfaces()
	ms, err := uref.InterfaceMethods(ifaces)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCreation, err)
	}
	if len(ms) == 0 {
		return nil, fmt.Errorf("%w: configured interfaces declare no methods", ErrCreation)
	}
	tt := cfg.TargetType()
	for _, it := range ifaces {
		if !tt.Implements(it) {
			return nil, fmt.Errorf("%w: target type %s does not implement %s", ErrCreation, tt, it)
		}
	}
	return &ifaceEngine{cfg: cfg, table: newMethodTable(ms)}, nil
}

// Proxy materializes a proxy sharing the engine's configuration.
func (e *ifaceEngine) Proxy() apis.Proxy {
	return newProxy(e.cfg, e.table)
}
