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

package pointcut_test

import (
	"reflect"
	"testing"

	"dirpx.dev/apx/apis"
	"dirpx.dev/apx/pointcut"
)

type account struct{}

func (account) Deposit(int)  {}
func (account) Withdraw(int) {}

func method(name string) apis.Method {
	return apis.Method{
		Name:  name,
		Type:  reflect.TypeOf(func(int) {}),
		Owner: reflect.TypeOf(account{}),
	}
}

var accountType = reflect.TypeOf(account{})

func TestPredicates(t *testing.T) {
	getSet, err := pointcut.Match(`^(Deposit|Withdraw)$`)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		pc     apis.Pointcut
		m      apis.Method
		target reflect.Type
		want   bool
	}{
		{"all matches anything", pointcut.All(), method("Deposit"), accountType, true},
		{"names hit", pointcut.Names("Deposit", "Close"), method("Deposit"), accountType, true},
		{"names miss", pointcut.Names("Close"), method("Deposit"), accountType, false},
		{"regexp hit", getSet, method("Withdraw"), accountType, true},
		{"regexp miss", getSet, method("Audit"), accountType, false},
		{"type hit", pointcut.OfType(accountType), method("Deposit"), accountType, true},
		{"type hit through pointer", pointcut.OfType(accountType), method("Deposit"), reflect.TypeOf(&account{}), true},
		{"type miss", pointcut.OfType(reflect.TypeOf(0)), method("Deposit"), accountType, false},
		{"and", pointcut.And(pointcut.All(), pointcut.Names("Deposit")), method("Deposit"), accountType, true},
		{"and short-circuits false", pointcut.And(pointcut.Names("Close"), pointcut.All()), method("Deposit"), accountType, false},
		{"or", pointcut.Or(pointcut.Names("Close"), pointcut.Names("Deposit")), method("Deposit"), accountType, true},
		{"or all miss", pointcut.Or(pointcut.Names("Close"), pointcut.Names("Audit")), method("Deposit"), accountType, false},
		{"not", pointcut.Not(pointcut.Names("Deposit")), method("Deposit"), accountType, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pc.Matches(tc.m, tc.target); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchRejectsBadPattern(t *testing.T) {
	if _, err := pointcut.Match(`(`); err == nil {
		t.Fatal("expected compile error at configuration time")
	}
}
