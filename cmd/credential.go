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
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nvidia/imcquery/pkg/common/credential"
	"github.com/nvidia/imcquery/pkg/credentials"
)

// ErrNoCredentialStore is returned by the credential commands when no Vault
// address is configured.
var ErrNoCredentialStore = errors.New("no credential store configured, set --vault-addr")

func newCredentialCommand(v *viper.Viper) *cobra.Command {
	credentialCmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage IMC credentials held in Vault",
	}

	credentialCmd.AddCommand(&cobra.Command{
		Use:   "set HOST",
		Short: "Store the --username and first --password for HOST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, v, func(ctx context.Context, store credentials.CredentialManager) error {
				passwords := stringSlice(cmd, v, flagPassword)
				if len(passwords) == 0 {
					return errors.New("a password is required")
				}

				cred := credential.New(v.GetString(flagUsername), passwords[0])
				if !cred.IsValid() {
					return errors.New("a username is required")
				}
				return store.Put(ctx, args[0], cred)
			})
		},
	})

	credentialCmd.AddCommand(&cobra.Command{
		Use:   "delete HOST",
		Short: "Remove the stored credential of HOST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, v, func(ctx context.Context, store credentials.CredentialManager) error {
				return store.Delete(ctx, args[0])
			})
		},
	})

	credentialCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the hosts that have a stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd, v, func(ctx context.Context, store credentials.CredentialManager) error {
				hosts, err := store.Keys(ctx)
				if err != nil {
					return err
				}
				for _, host := range hosts {
					fmt.Fprintln(cmd.OutOrStdout(), host)
				}
				return nil
			})
		},
	})

	return credentialCmd
}

func withStore(cmd *cobra.Command, v *viper.Viper, fn func(ctx context.Context, store credentials.CredentialManager) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := credentialStore(ctx, v, newLogger(cmd, v))
	if err != nil {
		return err
	}
	if store == nil {
		return ErrNoCredentialStore
	}
	defer store.Stop(ctx)

	return fn(ctx, store)
}
