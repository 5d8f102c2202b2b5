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

package advised

import "dirpx.dev/apx/apis"

// NewAdvisor pairs a pointcut with an interceptor. A nil pointcut
// matches every method.
func NewAdvisor(pc apis.Pointcut, ic apis.Interceptor) apis.Advisor {
	return advisor{pc: pc, ic: ic}
}

// advisor is the plain pointcut/interceptor pairing.
type advisor struct {
	pc apis.Pointcut
	ic apis.Interceptor
}

// Ensure advisor implements apis.Advisor.
var _ apis.Advisor = advisor{}

// Pointcut returns the applicability test (nil means match-all).
func (a advisor) Pointcut() apis.Pointcut { return a.pc }

// Advice returns the paired interceptor.
func (a advisor) Advice() apis.Interceptor { return a.ic }
