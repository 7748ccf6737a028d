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
package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteExitsOnError(t *testing.T) {
	origExit, origArgs := exitFunc, os.Args
	t.Cleanup(func() { exitFunc, os.Args = origExit, origArgs })

	code := -1
	exitFunc = func(c int) { code = c }
	os.Args = []string{"imcquery", "-c", "10.0.0.1"}

	Execute()
	assert.Equal(t, 1, code)
}

func TestExecuteHelp(t *testing.T) {
	origExit, origArgs := exitFunc, os.Args
	t.Cleanup(func() { exitFunc, os.Args = origExit, origArgs })

	code := -1
	exitFunc = func(c int) { code = c }
	os.Args = []string{"imcquery", "--help"}

	Execute()
	assert.Equal(t, -1, code)
}
