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

	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/common/credential"
	"github.com/nvidia/imcquery/pkg/imc"
)

// Connector establishes a session by trying a target's passwords in order.
type Connector struct {
	client imc.Client
	log    *log.Entry
}

// NewConnector creates a Connector logging in through client.
func NewConnector(client imc.Client, logger *log.Entry) *Connector {
	return &Connector{
		client: client,
		log:    logger.WithField("component", "connector"),
	}
}

// Connect returns the session of the first password the controller accepts,
// or ErrNoSession once every candidate was refused.
func (c *Connector) Connect(ctx context.Context, target Target) (imc.Session, error) {
	logger := c.log.WithFields(log.Fields{"host": target.Host, "user": target.Username})

	for i, password := range target.Passwords {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logger.Debugf("Trying password %d of %d", i+1, len(target.Passwords))
		sess, err := c.client.Login(ctx, target.Host, credential.New(target.Username, password.Value))
		if err == nil {
			logger.Infof("Connected to %s", target.Host)
			return sess, nil
		}

		if imc.IsAuthenticationFailure(err) {
			logger.WithField("password", password).Warnf("Password %d rejected", i+1)
		} else {
			logger.WithError(err).Warn("IMC login failed")
		}
	}

	return nil, ErrNoSession
}
