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
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvidia/imcquery/pkg/common/credential"
	"github.com/nvidia/imcquery/pkg/common/secretstring"
	"github.com/nvidia/imcquery/pkg/credentials"
)

func writeInfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hosts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func passwords(t Target) []string {
	return lo.Map(t.Passwords, func(p secretstring.SecretString, _ int) string {
		return p.Value
	})
}

func TestResolveCommandLine(t *testing.T) {
	logger, _ := testLogger()
	conf := &Config{ClassID: "computeRackUnit", Host: "10.0.0.1", Username: "ops", Passwords: []string{"first", "second"}}

	targets, err := NewResolver(conf, nil, logger).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, "10.0.0.1", targets[0].Host)
	assert.Equal(t, "ops", targets[0].Username)
	assert.Equal(t, []string{"first", "second"}, passwords(targets[0]))
}

func TestResolveCommandLineIncomplete(t *testing.T) {
	logger, _ := testLogger()
	conf := &Config{ClassID: "computeRackUnit", Host: "10.0.0.1", Passwords: []string{"pw"}}

	_, err := NewResolver(conf, nil, logger).Resolve(context.Background())
	assert.ErrorIs(t, err, ErrMissingConnection)
}

func TestResolveInfile(t *testing.T) {
	path := writeInfile(t, "10.0.0.1,ops,rowpw\n\n 10.0.0.2 , svc \n10.0.0.3\n,nobody,x\n")

	testCases := map[string]struct {
		conf         Config
		wantUsers    []string
		wantPassword [][]string
		wantWarnings int
	}{
		"row values first": {
			conf:         Config{Username: "cli", Passwords: []string{"clipw"}},
			wantUsers:    []string{"ops", "svc", "cli"},
			wantPassword: [][]string{{"rowpw", "clipw"}, {"clipw"}, {"clipw"}},
		},
		"default username": {
			conf:         Config{Passwords: []string{"a", "b"}},
			wantUsers:    []string{"ops", "svc", DefaultUsername},
			wantPassword: [][]string{{"rowpw", "a", "b"}, {"a", "b"}, {"a", "b"}},
			wantWarnings: 1,
		},
		"no command line passwords": {
			conf:         Config{},
			wantUsers:    []string{"ops", "svc", DefaultUsername},
			wantPassword: [][]string{{"rowpw"}, {}, {}},
			wantWarnings: 1,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			logger, hook := testLogger()
			conf := tc.conf
			conf.ClassID = "computeRackUnit"
			conf.Infiles = []string{path}

			targets, err := NewResolver(&conf, nil, logger).Resolve(context.Background())
			require.NoError(t, err)

			require.Len(t, targets, 3)
			assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, lo.Map(targets, func(t Target, _ int) string { return t.Host }))
			assert.Equal(t, tc.wantUsers, lo.Map(targets, func(t Target, _ int) string { return t.Username }))
			for i, target := range targets {
				assert.Equal(t, tc.wantPassword[i], passwords(target), target.Host)
			}
			assert.Len(t, warnings(hook), tc.wantWarnings)
		})
	}
}

func TestResolveInfileBareQuotes(t *testing.T) {
	path := writeInfile(t, "10.0.0.1,admin,pa\"ss\n10.0.0.2,admin,ok\n10.0.0.3,ops,end\"\n")
	logger, _ := testLogger()
	conf := &Config{ClassID: "computeRackUnit", Infiles: []string{path}}

	targets, err := NewResolver(conf, nil, logger).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 3)

	assert.Equal(t, "10.0.0.1", targets[0].Host)
	assert.Equal(t, []string{"pa\"ss"}, passwords(targets[0]))
	assert.Equal(t, "10.0.0.2", targets[1].Host)
	assert.Equal(t, []string{"ok"}, passwords(targets[1]))
	assert.Equal(t, "ops", targets[2].Username)
	assert.Equal(t, []string{"end\""}, passwords(targets[2]))
}

func TestResolveMultipleInfiles(t *testing.T) {
	logger, _ := testLogger()
	conf := &Config{
		ClassID:   "computeRackUnit",
		Infiles:   []string{writeInfile(t, "10.0.0.1\n"), writeInfile(t, "10.0.0.2\n10.0.0.3\n")},
		Username:  "admin",
		Passwords: []string{"pw"},
	}

	targets, err := NewResolver(conf, nil, logger).Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}, lo.Map(targets, func(t Target, _ int) string { return t.Host }))
}

func TestResolveMissingInfile(t *testing.T) {
	logger, _ := testLogger()
	conf := &Config{ClassID: "computeRackUnit", Infiles: []string{filepath.Join(t.TempDir(), "missing.csv")}}

	_, err := NewResolver(conf, nil, logger).Resolve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestResolveCredentialStore(t *testing.T) {
	ctx := context.Background()
	store := credentials.NewInMemoryCredentialManager()
	require.NoError(t, store.Put(ctx, "10.0.0.1", credential.New("vaultuser", "vaultpw")))

	path := writeInfile(t, "10.0.0.1\n10.0.0.2,ops,rowpw\n")
	logger, hook := testLogger()
	conf := &Config{ClassID: "computeRackUnit", Infiles: []string{path}, Passwords: []string{"clipw"}}

	targets, err := NewResolver(conf, store, logger).Resolve(ctx)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	assert.Equal(t, "vaultuser", targets[0].Username)
	assert.Equal(t, []string{"clipw", "vaultpw"}, passwords(targets[0]))

	assert.Equal(t, "ops", targets[1].Username)
	assert.Equal(t, []string{"rowpw", "clipw"}, passwords(targets[1]))

	assert.Empty(t, warnings(hook))
}
