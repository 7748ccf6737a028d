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
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nvidia/imcquery/pkg/credentials"
	"github.com/nvidia/imcquery/pkg/imc"
	"github.com/nvidia/imcquery/pkg/query"
)

const envPrefix = "IMCQUERY"

// Flag names. Each one can also be set through IMCQUERY_<NAME>.
const (
	flagVerbose    = "verbose"
	flagDebug      = "debug"
	flagConnect    = "connect"
	flagUsername   = "username"
	flagPassword   = "password"
	flagInfile     = "infile"
	flagFilter     = "filter"
	flagXLSX       = "xlsx"
	flagPort       = "port"
	flagSecure     = "secure"
	flagInsecure   = "insecure"
	flagTimeout    = "timeout"
	flagVaultAddr  = "vault-addr"
	flagVaultToken = "vault-token"
	flagEnvFile    = "env-file"
	flagClassID    = "class_id"
	flagFields     = "fields"
	flagOutput     = "output"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func addConnectionFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.BoolP(flagVerbose, "v", false, "Verbose (INFO) logging")
	flags.BoolP(flagDebug, "d", false, "Debug logging")
	flags.StringP(flagConnect, "c", "", "IMC IP address or hostname")
	flags.StringP(flagUsername, "u", "", "IMC username")
	flags.StringArrayP(flagPassword, "p", nil, "IMC password, repeat to try several in order")
	flags.StringArrayP(flagInfile, "i", nil, "CSV file of host,username,password rows, repeatable")
	flags.StringArrayP(flagFilter, "F", nil, "field=value filter, repeatable; objects matching any filter are printed")
	flags.String(flagXLSX, "", "Also write CSV rows into this Excel workbook")
	flags.Int(flagPort, imc.DefaultPort, "IMC port used when the host carries none")
	flags.Bool(flagSecure, true, "Use HTTPS")
	flags.Bool(flagInsecure, true, "Skip TLS certificate verification")
	flags.Duration(flagTimeout, imc.DefaultTimeout, "Per request timeout")
	flags.String(flagVaultAddr, "", "Vault address of the credential store")
	flags.String(flagVaultToken, "", "Vault token of the credential store")
	flags.String(flagEnvFile, "", "dotenv file loaded before reading IMCQUERY_* variables")
}

// bindFlags binds every flag of cmd, local and inherited, to v.
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	return v.BindPFlags(cmd.InheritedFlags())
}

// loadEnvFile loads the dotenv file named on the command line or in the
// environment. Variables already set are kept.
func loadEnvFile(v *viper.Viper) error {
	path := v.GetString(flagEnvFile)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load env file %s", path)
	}
	return nil
}

func imcConfig(v *viper.Viper) imc.Config {
	return imc.Config{
		Port:     v.GetInt(flagPort),
		Secure:   v.GetBool(flagSecure),
		Insecure: v.GetBool(flagInsecure),
		Timeout:  v.GetDuration(flagTimeout),
	}
}

// stringSlice reads a repeatable flag. Values given on the command line are
// taken as is so that commas inside a password survive; otherwise the
// whitespace separated environment value is used.
func stringSlice(cmd *cobra.Command, v *viper.Viper, name string) []string {
	if f := cmd.Flag(name); f != nil && f.Changed {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			return sv.GetSlice()
		}
	}
	return v.GetStringSlice(name)
}

func queryConfig(cmd *cobra.Command, v *viper.Viper) *query.Config {
	return &query.Config{
		ClassID:   v.GetString(flagClassID),
		Host:      v.GetString(flagConnect),
		Username:  v.GetString(flagUsername),
		Passwords: stringSlice(cmd, v, flagPassword),
		Infiles:   stringSlice(cmd, v, flagInfile),
		Fields:    stringSlice(cmd, v, flagFields),
		Filters:   stringSlice(cmd, v, flagFilter),
		Output:    query.OutputFormat(v.GetString(flagOutput)),
		XLSXPath:  v.GetString(flagXLSX),
	}
}

// credentialStore returns the Vault store when an address is configured, or
// nil.
func credentialStore(ctx context.Context, v *viper.Viper, logger *log.Entry) (credentials.CredentialManager, error) {
	addr := v.GetString(flagVaultAddr)
	if addr == "" {
		return nil, nil
	}

	store, err := credentials.New(ctx, &credentials.Config{
		DataStoreType: credentials.DatastoreTypeVault,
		VaultConfig: &credentials.VaultConfig{
			Address: addr,
			Token:   v.GetString(flagVaultToken),
		},
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create credential store")
	}
	if err := store.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start credential store")
	}
	return store, nil
}
