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

// Package cmd implements the imcquery command line.
package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	imclog "github.com/nvidia/imcquery/pkg/common/log"
	"github.com/nvidia/imcquery/pkg/imc"
	"github.com/nvidia/imcquery/pkg/query"
)

// newClient creates the XML API client. Tests replace it with a mock.
var newClient = func(conf imc.Config, logger *log.Entry) imc.Client {
	return imc.NewClient(conf, logger)
}

// NewRootCommand builds the imcquery command tree.
func NewRootCommand() *cobra.Command {
	v := newViper()

	rootCmd := &cobra.Command{
		Use:   "imcquery",
		Short: "Dump the objects of a class ID from Cisco IMCs",
		Long: `Log in to one or more Cisco Integrated Management Controllers, resolve a
class ID and print the returned managed objects, either in full or as CSV
rows of selected fields.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd, v); err != nil {
				return err
			}
			return loadEnvFile(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, v, queryConfig(cmd, v))
		},
	}

	addConnectionFlags(rootCmd)
	rootCmd.Flags().StringP(flagClassID, "C", "", "Class ID to dump")
	rootCmd.Flags().StringArrayP(flagFields, "f", nil, "Only print this field, as CSV; repeat for several fields")
	rootCmd.Flags().StringP(flagOutput, "o", string(query.OutputText), "Format of full objects: text, json or yaml")

	rootCmd.AddCommand(newSerialCommand(v))
	rootCmd.AddCommand(newCredentialCommand(v))

	return rootCmd
}

// newLogger builds the logger writing to the command's error stream.
func newLogger(cmd *cobra.Command, v *viper.Viper) *log.Entry {
	logger := imclog.New(cmd.ErrOrStderr(), v.GetBool(flagVerbose), v.GetBool(flagDebug))
	return log.NewEntry(logger)
}

func runQuery(cmd *cobra.Command, v *viper.Viper, conf *query.Config) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(cmd, v)

	if err := conf.Validate(); err != nil {
		return err
	}

	store, err := credentialStore(ctx, v, logger)
	if err != nil {
		return err
	}

	var source query.CredentialSource
	if store != nil {
		defer store.Stop(ctx)
		source = store
	}

	runner, err := query.NewRunner(conf, newClient(imcConfig(v), logger), source, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	return runner.Run(ctx)
}
