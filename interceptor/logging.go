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

package interceptor

import (
	"log/slog"
	"time"

	"dirpx.dev/apx/apis"
)

// NewLogging returns an interceptor that logs one record per call:
// method, owner type, duration, and outcome. Successful calls log at
// Debug, failures at Error. A nil logger uses slog.Default().
//
// The dispatch engine itself never logs; callers opt into this by
// adding the interceptor to the configuration.
func NewLogging(logger *slog.Logger) apis.Interceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return apis.InterceptorFunc(func(inv apis.Invocation) ([]any, error) {
		m := inv.Method()
		start := time.Now()
		results, err := inv.Proceed()
		elapsed := time.Since(start)

		if err != nil {
			logger.Error("proxied call failed",
				"method", m.Name,
				"owner", m.Owner.String(),
				"duration", elapsed,
				"error", err,
			)
		} else {
			logger.Debug("proxied call",
				"method", m.Name,
				"owner", m.Owner.String(),
				"duration", elapsed,
			)
		}
		return results, err
	})
}
