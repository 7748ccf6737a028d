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
package imc

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

// ErrorCodeAuthenticationFailed is the XML API error code returned by
// aaaLogin when the username or password is rejected.
const ErrorCodeAuthenticationFailed = 551

// ErrSessionClosed is returned when a session is used after Logout.
var ErrSessionClosed = errors.New("imc session is closed")

// Error is an error response from the XML API. Code carries the numeric
// errorCode attribute of the response element.
type Error struct {
	Method           string
	Code             int
	Description      string
	InvocationResult string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failed: [ErrorCode]: %d [ErrorDescription]: %s", e.Method, e.Code, e.Description)
}

// IsAuthenticationFailure reports whether err carries the invalid
// credentials error code.
func IsAuthenticationFailure(err error) bool {
	var imcErr *Error
	if errors.As(err, &imcErr) {
		return imcErr.Code == ErrorCodeAuthenticationFailed
	}
	return false
}

func newError(method string, code string, descr string, result string) *Error {
	c, err := strconv.Atoi(code)
	if err != nil {
		c = -1
	}
	return &Error{
		Method:           method,
		Code:             c,
		Description:      descr,
		InvocationResult: result,
	}
}
