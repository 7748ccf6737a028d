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

// Package secretstring provides a string wrapper that keeps its value out of
// logs and serialized output.
package secretstring

import (
	"encoding/json"
)

const mask = "********"

// SecretString holds a sensitive value. The value is only reachable through
// the Value field; String and JSON marshalling return a mask.
type SecretString struct {
	Value string
}

// New wraps s in a SecretString.
func New(s string) SecretString {
	return SecretString{Value: s}
}

// IsEmpty reports whether no value is held.
func (s SecretString) IsEmpty() bool {
	return s.Value == ""
}

// IsEqual reports whether both secrets hold the same value.
func (s SecretString) IsEqual(o SecretString) bool {
	return s.Value == o.Value
}

// String returns a mask, or an empty string when no value is held.
func (s SecretString) String() string {
	if s.IsEmpty() {
		return ""
	}
	return mask
}

// MarshalJSON always emits the mask.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a plain JSON string as the secret value.
func (s *SecretString) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &s.Value)
}
