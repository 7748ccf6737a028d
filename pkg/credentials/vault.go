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
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	vault "github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/common/credential"
)

// The mount path for the secrets engine
const mountPath = "secrets"

// The path for storing IMC credentials
const credentialPath = mountPath + "/data/imc"

// VaultConfig configures access to Vault (address and token).
type VaultConfig struct {
	Address string
	Token   string
}

func (c VaultConfig) String() string {
	return fmt.Sprintf("Vault Address: %s", c.Address)
}

// Validate ensures required Vault fields are provided.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Address, validation.Required.Error("invalid vault address specified"), is.URL),
		validation.Field(&c.Token, validation.Required.Error("invalid vault token specified")),
	)
}

// VaultCredentialManager implements the CredentialManager interface with a Vault KV v2 store.
type VaultCredentialManager struct {
	client *vault.Client
	log    *log.Entry
}

// NewManager initializes a Vault client with the configured address and token.
func (c *VaultConfig) NewManager(logger *log.Entry) (*VaultCredentialManager, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	config := &vault.Config{
		Address: c.Address,
		HttpClient: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // Vault runs with a self-signed certificate in lab setups
				},
			},
		},
	}
	client, err := vault.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(c.Token)

	return &VaultCredentialManager{
		client: client,
		log:    logger,
	}, nil
}

func (m *VaultCredentialManager) pathExists(path string) (bool, error) {
	mounts, err := m.client.Sys().ListMounts()
	if err != nil {
		return false, err
	}

	for mountPath := range mounts {
		if mountPath == path || mountPath == path+"/" {
			return true, nil
		}
	}
	return false, nil
}

// Start ensures the KV v2 engine is mounted at the configured path.
func (m *VaultCredentialManager) Start(ctx context.Context) error {
	m.log.Debug("Starting Vault credential manager")

	exists, err := m.pathExists(mountPath)
	if err != nil {
		return errors.Wrap(err, "failed to list vault mounts")
	}

	if exists {
		return nil
	}

	data := map[string]any{
		"type": "kv-v2",
	}
	_, err = m.client.Logical().WriteWithContext(ctx, fmt.Sprintf("/sys/mounts/%s", mountPath), data)
	return errors.Wrap(err, "failed to mount vault secrets engine")
}

// Stop performs no cleanup.
func (m *VaultCredentialManager) Stop(ctx context.Context) error {
	m.log.Debug("Stopping Vault credential manager")
	return nil
}

func (m *VaultCredentialManager) getCredentialKey(host string) string {
	return fmt.Sprintf("%s/%s", credentialPath, url.PathEscape(host))
}

// Get retrieves and validates credentials for the given host from Vault.
func (m *VaultCredentialManager) Get(ctx context.Context, host string) (*credential.Credential, error) {
	secret, err := m.client.Logical().ReadWithContext(ctx, m.getCredentialKey(host))
	if err != nil {
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return nil, errors.New("credential not found")
	}

	credData, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected secret data format")
	}

	cred, err := credential.FromMap(credData)
	if err != nil {
		return nil, err
	}

	if !cred.IsValid() {
		return nil, errors.New("retrieved invalid credential from vault")
	}

	return cred, nil
}

// Put writes the credentials of a given host to Vault.
func (m *VaultCredentialManager) Put(ctx context.Context, host string, cred *credential.Credential) error {
	if !cred.IsValid() {
		return errors.New("valid credential not specified to Vault Manager")
	}

	payload := map[string]any{
		"data": cred.ToMap(),
	}

	_, err := m.client.Logical().WriteWithContext(ctx, m.getCredentialKey(host), payload)
	return err
}

// Delete removes the credential for host (if it exists) from Vault.
func (m *VaultCredentialManager) Delete(ctx context.Context, host string) error {
	_, err := m.client.Logical().DeleteWithContext(ctx, m.getCredentialKey(host))
	return err
}

// Keys returns the hosts the store holds secrets for, sorted.
func (m *VaultCredentialManager) Keys(ctx context.Context) ([]string, error) {
	secret, err := m.client.Logical().ListWithContext(ctx, credentialPath)
	if err != nil {
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return []string{}, nil
	}

	keys, ok := secret.Data["keys"].([]interface{})
	if !ok {
		return nil, errors.New("unexpected data format")
	}

	hosts := make([]string, 0, len(keys))
	for _, key := range keys {
		keyStr, ok := key.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key format: %v", key)
		}

		host, err := url.PathUnescape(keyStr)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)

	return hosts, nil
}
