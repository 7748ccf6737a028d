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
	"errors"
	"strings"

	"github.com/spf13/cast"

	"github.com/nvidia/imcquery/pkg/common/secretstring"
)

// Credential holds a management controller login.
type Credential struct {
	User     string                    `json:"user"`     // User name
	Password secretstring.SecretString `json:"password"` // Password (masked in JSON/logs)
}

// New creates a Credential with the given user and password.
func New(user string, password string) *Credential {
	return &Credential{
		User:     user,
		Password: secretstring.New(password),
	}
}

// Patch updates the credential with non-empty values from the given
// credential. It returns true if any field was updated.
func (cred *Credential) Patch(nc *Credential) bool {
	if cred == nil || nc == nil {
		return false
	}

	patched := false

	if strings.TrimSpace(nc.User) != "" && cred.User != nc.User {
		cred.User = nc.User
		patched = true
	}

	if !nc.Password.IsEmpty() && !cred.Password.IsEqual(nc.Password) {
		cred.Password = nc.Password
		patched = true
	}

	return patched
}

// IsValid returns true if the credential has a non-empty username.
func (cred *Credential) IsValid() bool {
	return cred != nil && strings.TrimSpace(cred.User) != ""
}

// ToMap converts a Credential to a map suitable for Vault storage.
func (cred Credential) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"username": cred.User,
		"password": cred.Password.Value,
	}
}

// FromMap converts a map read from Vault storage to a Credential. Scalar
// values are converted to text, so a numeric password written through the
// Vault API is accepted.
func FromMap(data map[string]interface{}) (*Credential, error) {
	user, err := stringValue(data, "username")
	if err != nil {
		return nil, errors.New("invalid username value")
	}

	password, err := stringValue(data, "password")
	if err != nil {
		return nil, errors.New("invalid password value")
	}

	return New(user, password), nil
}

func stringValue(data map[string]interface{}, key string) (string, error) {
	v, ok := data[key]
	if !ok || v == nil {
		return "", errors.New("missing value")
	}
	return cast.ToStringE(v)
}
