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
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/common/credential"
	"github.com/nvidia/imcquery/pkg/common/secretstring"
)

// CredentialSource looks up a stored credential for a host.
type CredentialSource interface {
	Get(ctx context.Context, host string) (*credential.Credential, error)
}

// Target is one controller to query together with its candidate credentials.
type Target struct {
	Host      string
	Username  string
	Passwords []secretstring.SecretString
}

// Resolver turns the command line and any input files into targets.
type Resolver struct {
	conf  *Config
	store CredentialSource
	log   *log.Entry
}

// NewResolver creates a Resolver. store may be nil.
func NewResolver(conf *Config, store CredentialSource, logger *log.Entry) *Resolver {
	return &Resolver{
		conf:  conf,
		store: store,
		log:   logger.WithField("component", "resolver"),
	}
}

// Resolve returns the targets in the order they should be queried. Without
// input files the single target comes from the command line.
func (r *Resolver) Resolve(ctx context.Context) ([]Target, error) {
	if len(r.conf.Infiles) == 0 {
		if r.conf.Host == "" || r.conf.Username == "" || len(r.conf.Passwords) == 0 {
			return nil, ErrMissingConnection
		}
		return []Target{r.target(ctx, r.conf.Host, "", "")}, nil
	}

	var targets []Target
	for _, path := range r.conf.Infiles {
		rows, err := readInfile(path)
		if err != nil {
			return nil, err
		}

		for n, row := range rows {
			row = lo.Map(row, func(cell string, _ int) string {
				return strings.TrimSpace(cell)
			})
			if len(row) == 0 || row[0] == "" {
				r.log.Debugf("%s:%d: no host, row skipped", path, n+1)
				continue
			}

			var user, password string
			if len(row) > 1 {
				user = row[1]
			}
			if len(row) > 2 {
				password = row[2]
			}
			targets = append(targets, r.target(ctx, row[0], user, password))
		}
	}

	return targets, nil
}

// target assembles the candidate passwords for host: the row password, the
// command line passwords in order, then the stored password.
func (r *Resolver) target(ctx context.Context, host string, user string, password string) Target {
	logger := r.log.WithField("host", host)
	t := Target{Host: host, Username: user}

	if password != "" {
		t.Passwords = append(t.Passwords, secretstring.New(password))
	} else {
		logger.Debug("No row password, using command line passwords")
	}
	for _, p := range r.conf.Passwords {
		t.Passwords = append(t.Passwords, secretstring.New(p))
	}

	if t.Username == "" {
		t.Username = r.conf.Username
	}

	if r.store != nil {
		stored, err := r.store.Get(ctx, host)
		switch {
		case err != nil:
			logger.WithError(err).Debug("No stored credential")
		case stored != nil:
			if t.Username == "" {
				t.Username = stored.User
			}
			if !stored.Password.IsEmpty() {
				t.Passwords = append(t.Passwords, stored.Password)
			}
		}
	}

	if t.Username == "" {
		logger.Warnf("No username was supplied. Trying default of '%s'", DefaultUsername)
		t.Username = DefaultUsername
	}

	return t
}

func readInfile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input file %s", path)
	}
	defer f.Close()

	rows, err := parseRows(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input file %s", path)
	}
	return rows, nil
}

func parseRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	return reader.ReadAll()
}
