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

// Package credentials stores management controller credentials keyed by host.
package credentials

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/common/credential"
)

// CredentialManager defines a key-value store for IMC credentials keyed by host.
type CredentialManager interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Get(ctx context.Context, host string) (*credential.Credential, error)
	Put(ctx context.Context, host string, cred *credential.Credential) error
	Delete(ctx context.Context, host string) error
	Keys(ctx context.Context) ([]string, error)
}

// New creates a new Credential Manager based on the given configuration.
func New(ctx context.Context, config *Config, logger *log.Entry) (CredentialManager, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger = logger.WithField("component", "credentials")

	if config.DataStoreType == DatastoreTypeVault {
		logger.Debugf("Initializing CredentialManager with vault datastore (config: %s)", config.VaultConfig)
		return config.VaultConfig.NewManager(logger)
	}

	logger.Debug("Initializing CredentialManager with in-memory datastore")
	return NewInMemoryCredentialManager(), nil
}
