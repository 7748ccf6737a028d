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
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() (*log.Entry, *logtest.Hook) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	return log.NewEntry(logger), hook
}

func warnings(hook *logtest.Hook) []*log.Entry {
	var entries []*log.Entry
	for _, e := range hook.AllEntries() {
		if e.Level == log.WarnLevel {
			entries = append(entries, e)
		}
	}
	return entries
}

func TestConfigValidate(t *testing.T) {
	testCases := map[string]struct {
		conf    Config
		wantErr error
		errMsg  string
	}{
		"command line target": {
			conf: Config{ClassID: "computeRackUnit", Host: "10.0.0.1", Username: "admin", Passwords: []string{"pw"}},
		},
		"infile without connection flags": {
			conf: Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}},
		},
		"missing class id": {
			conf:    Config{Host: "10.0.0.1", Username: "admin", Passwords: []string{"pw"}},
			wantErr: ErrMissingClassID,
		},
		"missing password": {
			conf:    Config{ClassID: "computeRackUnit", Host: "10.0.0.1", Username: "admin"},
			wantErr: ErrMissingConnection,
		},
		"missing host": {
			conf:    Config{ClassID: "computeRackUnit", Username: "admin", Passwords: []string{"pw"}},
			wantErr: ErrMissingConnection,
		},
		"unknown output format": {
			conf:   Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}, Output: "xml"},
			errMsg: "must be one of text, json, yaml",
		},
		"workbook without fields": {
			conf:   Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}, XLSXPath: "out.xlsx"},
			errMsg: "a workbook is only written when fields are selected",
		},
		"workbook with fields": {
			conf: Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}, XLSXPath: "out.xlsx", Fields: []string{"serial"}},
		},
		"empty field name": {
			conf:   Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}, Fields: []string{"dn", ""}},
			errMsg: "field names cannot be empty",
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			err := tc.conf.Validate()
			switch {
			case tc.wantErr != nil:
				assert.ErrorIs(t, err, tc.wantErr)
			case tc.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigValidateDefaultsOutput(t *testing.T) {
	conf := Config{ClassID: "computeRackUnit", Infiles: []string{"hosts.csv"}}
	require.NoError(t, conf.Validate())
	assert.Equal(t, OutputText, conf.Output)
	assert.False(t, conf.CSVMode())

	conf.Fields = []string{"dn"}
	assert.True(t, conf.CSVMode())
}
