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

package interceptor_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"dirpx.dev/apx/apis"
	"dirpx.dev/apx/interceptor"
)

type ledger struct{}

func (ledger) Post(int) error { return nil }

// fakeInv is a minimal apis.Invocation feeding interceptors a canned
// continuation.
type fakeInv struct {
	m         apis.Method
	args      []any
	proceed   func() ([]any, error)
	proceeded bool
}

func (f *fakeInv) Method() apis.Method { return f.m }
func (f *fakeInv) Target() any         { return nil }
func (f *fakeInv) Proxy() any          { return nil }
func (f *fakeInv) Args() []any         { return f.args }

func (f *fakeInv) SetArgs(args []any) error {
	f.args = args
	return nil
}

func (f *fakeInv) Proceed() ([]any, error) {
	f.proceeded = true
	return f.proceed()
}

func postMethod() apis.Method {
	return apis.Method{
		Name:  "Post",
		Type:  reflect.TypeOf(func(int) error { return nil }),
		Owner: reflect.TypeOf(ledger{}),
	}
}

func okInv(results ...any) *fakeInv {
	return &fakeInv{
		m:       postMethod(),
		args:    []any{7},
		proceed: func() ([]any, error) { return results, nil },
	}
}

func failingInv(err error) *fakeInv {
	return &fakeInv{
		m:       postMethod(),
		args:    []any{7},
		proceed: func() ([]any, error) { return nil, err },
	}
}

func TestBefore(t *testing.T) {
	t.Run("runs then proceeds", func(t *testing.T) {
		var sawArgs []any
		ic := interceptor.Before(func(m apis.Method, args []any) error {
			sawArgs = args
			return nil
		})
		inv := okInv("done")
		results, err := ic.Invoke(inv)
		if err != nil || len(results) != 1 {
			t.Fatalf("results = %v, %v", results, err)
		}
		if !inv.proceeded {
			t.Fatal("chain did not proceed")
		}
		if len(sawArgs) != 1 || sawArgs[0] != 7 {
			t.Fatalf("before saw args %v, want [7]", sawArgs)
		}
	})

	t.Run("error short-circuits", func(t *testing.T) {
		deny := errors.New("denied")
		ic := interceptor.Before(func(apis.Method, []any) error { return deny })
		inv := okInv("done")
		if _, err := ic.Invoke(inv); !errors.Is(err, deny) {
			t.Fatalf("err = %v, want denial", err)
		}
		if inv.proceeded {
			t.Fatal("target reached despite short-circuit")
		}
	})
}

func TestAfterReturning(t *testing.T) {
	t.Run("sees results on success", func(t *testing.T) {
		var saw []any
		ic := interceptor.AfterReturning(func(m apis.Method, results []any) { saw = results })
		if _, err := ic.Invoke(okInv("v")); err != nil {
			t.Fatal(err)
		}
		if len(saw) != 1 || saw[0] != "v" {
			t.Fatalf("after-returning saw %v, want [v]", saw)
		}
	})

	t.Run("skipped on failure", func(t *testing.T) {
		ran := false
		ic := interceptor.AfterReturning(func(apis.Method, []any) { ran = true })
		boom := errors.New("boom")
		if _, err := ic.Invoke(failingInv(boom)); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		if ran {
			t.Fatal("after-returning ran on a failed call")
		}
	})
}

func TestAfterFailure(t *testing.T) {
	t.Run("translates", func(t *testing.T) {
		boom := errors.New("boom")
		wrapped := errors.New("wrapped")
		ic := interceptor.AfterFailure(func(m apis.Method, err error) error { return wrapped })
		if _, err := ic.Invoke(failingInv(boom)); !errors.Is(err, wrapped) {
			t.Fatalf("err = %v, want wrapped", err)
		}
	})

	t.Run("suppresses when nil returned", func(t *testing.T) {
		ic := interceptor.AfterFailure(func(apis.Method, error) error { return nil })
		if _, err := ic.Invoke(failingInv(errors.New("boom"))); err != nil {
			t.Fatalf("err = %v, want suppressed", err)
		}
	})

	t.Run("skipped on success", func(t *testing.T) {
		ran := false
		ic := interceptor.AfterFailure(func(apis.Method, error) error { ran = true; return nil })
		if _, err := ic.Invoke(okInv()); err != nil {
			t.Fatal(err)
		}
		if ran {
			t.Fatal("after-failure ran on a successful call")
		}
	})
}

func TestLogging(t *testing.T) {
	t.Run("success logs at debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		ic := interceptor.NewLogging(logger)

		if _, err := ic.Invoke(okInv("v")); err != nil {
			t.Fatal(err)
		}
		out := buf.String()
		if !strings.Contains(out, "proxied call") || !strings.Contains(out, "method=Post") {
			t.Fatalf("log output missing fields: %q", out)
		}
		if strings.Contains(out, "level=ERROR") {
			t.Fatalf("success logged at error: %q", out)
		}
	})

	t.Run("failure logs at error and propagates", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ic := interceptor.NewLogging(logger)

		boom := errors.New("boom")
		if _, err := ic.Invoke(failingInv(boom)); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want boom", err)
		}
		out := buf.String()
		if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "boom") {
			t.Fatalf("failure not logged at error: %q", out)
		}
	})
}
