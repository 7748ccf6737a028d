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
package credentials

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/nvidia/imcquery/pkg/common/credential"
)

// InMemoryCredentialManager implements the CredentialManager interface with an in-memory store.
type InMemoryCredentialManager struct {
	store map[string]*credential.Credential
	mu    sync.RWMutex
}

func NewInMemoryCredentialManager() *InMemoryCredentialManager {
	return &InMemoryCredentialManager{
		store: make(map[string]*credential.Credential),
	}
}

// Start is a no-op.
func (m *InMemoryCredentialManager) Start(ctx context.Context) error {
	return nil
}

// Stop is a no-op.
func (m *InMemoryCredentialManager) Stop(ctx context.Context) error {
	return nil
}

// Get returns the credential for host or an error if missing/invalid.
func (m *InMemoryCredentialManager) Get(ctx context.Context, host string) (*credential.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, exists := m.store[host]
	if !exists || !cred.IsValid() {
		return nil, errors.New("credential not found")
	}

	return cred, nil
}

// Put stores or replaces the credential for host.
func (m *InMemoryCredentialManager) Put(ctx context.Context, host string, cred *credential.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store[host] = cred
	return nil
}

// Delete removes the credential for host (no error if absent).
func (m *InMemoryCredentialManager) Delete(ctx context.Context, host string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.store, host)
	return nil
}

// Keys returns all hosts with stored credentials, sorted.
func (m *InMemoryCredentialManager) Keys(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	hosts := make([]string, 0, len(m.store))
	for host := range m.store {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	return hosts, nil
}
