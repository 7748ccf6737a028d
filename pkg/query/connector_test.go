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
package query

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvidia/imcquery/pkg/common/credential"
	"github.com/nvidia/imcquery/pkg/common/secretstring"
	"github.com/nvidia/imcquery/pkg/imc"
	"github.com/nvidia/imcquery/pkg/imc/mock_imc"
)

var errRejected = &imc.Error{Method: "aaaLogin", Code: imc.ErrorCodeAuthenticationFailed, Description: "Authentication failed"}

func newTarget(host string, user string, pws ...string) Target {
	t := Target{Host: host, Username: user}
	for _, p := range pws {
		t.Passwords = append(t.Passwords, secretstring.New(p))
	}
	return t
}

func TestConnectTriesPasswordsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_imc.NewMockClient(ctrl)
	sess := mock_imc.NewMockSession(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		client.EXPECT().Login(ctx, "10.0.0.1", credential.New("admin", "row")).Return(nil, errRejected),
		client.EXPECT().Login(ctx, "10.0.0.1", credential.New("admin", "cli1")).Return(sess, nil),
	)

	logger, hook := testLogger()
	got, err := NewConnector(client, logger).Connect(ctx, newTarget("10.0.0.1", "admin", "row", "cli1", "cli2"))
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Len(t, warnings(hook), 1)
}

func TestConnectExhausted(t *testing.T) {
	testCases := map[string]struct {
		passwords    []string
		loginErr     error
		wantWarnings int
		wantMessage  string
	}{
		"every password rejected": {
			passwords:    []string{"a", "b", "c"},
			loginErr:     errRejected,
			wantWarnings: 3,
			wantMessage:  "rejected",
		},
		"transport failures": {
			passwords:    []string{"a", "b"},
			loginErr:     errors.New("connection refused"),
			wantWarnings: 2,
			wantMessage:  "IMC login failed",
		},
		"no candidates": {},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mock_imc.NewMockClient(ctrl)
			client.EXPECT().Login(gomock.Any(), "10.0.0.1", gomock.Any()).Return(nil, tc.loginErr).Times(len(tc.passwords))

			logger, hook := testLogger()
			sess, err := NewConnector(client, logger).Connect(context.Background(), newTarget("10.0.0.1", "admin", tc.passwords...))
			assert.ErrorIs(t, err, ErrNoSession)
			assert.Nil(t, sess)

			warns := warnings(hook)
			require.Len(t, warns, tc.wantWarnings)
			for _, w := range warns {
				assert.Contains(t, w.Message, tc.wantMessage)
			}
		})
	}
}

func TestConnectRejectedPasswordIsMasked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_imc.NewMockClient(ctrl)
	client.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errRejected)

	logger, hook := testLogger()
	_, err := NewConnector(client, logger).Connect(context.Background(), newTarget("10.0.0.1", "admin", "hunter2"))
	assert.ErrorIs(t, err, ErrNoSession)

	warns := warnings(hook)
	require.Len(t, warns, 1)
	assert.Equal(t, "********", warns[0].Data["password"].(secretstring.SecretString).String())
}

func TestConnectCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mock_imc.NewMockClient(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	logger, _ := testLogger()
	_, err := NewConnector(client, logger).Connect(ctx, newTarget("10.0.0.1", "admin", "pw"))
	assert.ErrorIs(t, err, context.Canceled)
}
