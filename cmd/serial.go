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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const rackUnitClassID = "computeRackUnit"

var serialFields = []string{"dn", "serial"}

func newSerialCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "serial",
		Short: "Print the serial number of every rack unit",
		Long: `Query the computeRackUnit class and print connect,dn,serial CSV rows,
one per rack unit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf := queryConfig(cmd, v)
			conf.ClassID = rackUnitClassID
			conf.Fields = serialFields
			return runQuery(cmd, v, conf)
		},
	}
}
