/*
 * SPDX-FileCopyrightText: Copyright (c) 2026 NVIDIA CORPORATION & AFFILIATES. All rights reserved.
 * SPDX-License-Identifier: Apache-2.0
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package credential

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialPatch(t *testing.T) {
	testCases := map[string]struct {
		base        *Credential
		patch       *Credential
		wantPatched bool
		wantUser    string
		wantPass    string
	}{
		"nil patch is a no-op": {
			base:        New("admin", "password"),
			patch:       nil,
			wantPatched: false,
			wantUser:    "admin",
			wantPass:    "password",
		},
		"empty fields are ignored": {
			base:        New("admin", "password"),
			patch:       New(" ", ""),
			wantPatched: false,
			wantUser:    "admin",
			wantPass:    "password",
		},
		"user and password are replaced": {
			base:        New("admin", "password"),
			patch:       New("root", "0penBmc"),
			wantPatched: true,
			wantUser:    "root",
			wantPass:    "0penBmc",
		},
		"identical values are not a patch": {
			base:        New("admin", "password"),
			patch:       New("admin", "password"),
			wantPatched: false,
			wantUser:    "admin",
			wantPass:    "password",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.wantPatched, tc.base.Patch(tc.patch))
			assert.Equal(t, tc.wantUser, tc.base.User)
			assert.Equal(t, tc.wantPass, tc.base.Password.Value)
		})
	}
}

func TestCredentialIsValid(t *testing.T) {
	var nilCred *Credential
	assert.False(t, nilCred.IsValid())
	assert.False(t, New("", "x").IsValid())
	assert.False(t, New("   ", "x").IsValid())
	assert.True(t, New("admin", "").IsValid())
}

func TestCredentialMapRoundTrip(t *testing.T) {
	cred := New("admin", "password")

	got, err := FromMap(cred.ToMap())
	require.NoError(t, err)
	assert.Equal(t, cred.User, got.User)
	assert.Equal(t, cred.Password.Value, got.Password.Value)

	_, err = FromMap(map[string]interface{}{"password": "x"})
	assert.Error(t, err)

	_, err = FromMap(map[string]interface{}{"username": "admin", "password": []string{"x"}})
	assert.Error(t, err)
}

func TestCredentialFromMapScalars(t *testing.T) {
	testCases := map[string]struct {
		data     map[string]interface{}
		wantUser string
		wantPass string
	}{
		"strings":        {data: map[string]interface{}{"username": "admin", "password": "pw"}, wantUser: "admin", wantPass: "pw"},
		"integer":        {data: map[string]interface{}{"username": "admin", "password": 1234}, wantUser: "admin", wantPass: "1234"},
		"json number":    {data: map[string]interface{}{"username": "admin", "password": json.Number("0042")}, wantUser: "admin", wantPass: "0042"},
		"empty password": {data: map[string]interface{}{"username": "admin", "password": ""}, wantUser: "admin"},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := FromMap(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.wantUser, got.User)
			assert.Equal(t, tc.wantPass, got.Password.Value)
		})
	}
}
