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
	"io"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/imc"
)

// Runner queries every resolved target in turn.
type Runner struct {
	conf      *Config
	resolver  *Resolver
	connector *Connector
	printer   *Printer
	filters   Filters
	log       *log.Entry

	headerPending bool
}

// NewRunner validates conf and wires the run pipeline. store may be nil.
func NewRunner(conf *Config, client imc.Client, store CredentialSource, out io.Writer, logger *log.Entry) (*Runner, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &Runner{
		conf:          conf,
		resolver:      NewResolver(conf, store, logger),
		connector:     NewConnector(client, logger),
		printer:       NewPrinter(out, conf.Fields, conf.Output, logger),
		filters:       ParseFilters(conf.Filters, logger.WithField("component", "filter")),
		log:           logger.WithField("component", "runner"),
		headerPending: true,
	}, nil
}

// Run resolves the targets and queries each of them. Targets that cannot be
// reached are logged and skipped. Errors resolving targets or writing output
// abort the run.
func (r *Runner) Run(ctx context.Context) (err error) {
	targets, err := r.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	if r.conf.XLSXPath != "" && r.conf.CSVMode() {
		wb := NewWorkbookWriter(r.conf.XLSXPath)
		r.printer.AddSink(wb)
		defer func() {
			if cerr := wb.Close(); err == nil {
				err = cerr
			}
		}()
	}

	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.runTarget(ctx, target); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) runTarget(ctx context.Context, target Target) error {
	logger := r.log.WithField("host", target.Host)

	sess, err := r.connector.Connect(ctx, target)
	if err != nil {
		logger.WithError(err).Error("Target skipped")
		return nil
	}
	defer r.disconnect(context.WithoutCancel(ctx), sess)

	objects, err := r.Query(ctx, sess)
	if err != nil {
		return nil
	}

	return r.report(sess.Host(), objects)
}

// Query resolves the configured class on sess. Failures are logged at INFO
// and returned; the caller ends the session.
func (r *Runner) Query(ctx context.Context, sess imc.Session) ([]*imc.ManagedObject, error) {
	logger := r.log.WithField("host", sess.Host())
	logger.Infof("Dumping class ID %s", r.conf.ClassID)

	objects, err := sess.QueryClassID(ctx, r.conf.ClassID)
	if err != nil {
		logger.WithError(err).Info("Class query failed")
		return nil, err
	}

	logger.Debugf("%d objects returned", len(objects))
	return objects, nil
}

func (r *Runner) report(host string, objects []*imc.ManagedObject) error {
	for i, mo := range objects {
		if i == 0 && r.headerPending {
			if err := r.printer.PrintHeader(); err != nil {
				return err
			}
			r.headerPending = false
		}

		if !r.filters.Passes(mo) {
			continue
		}
		if err := r.printer.PrintObject(host, mo); err != nil {
			return errors.Wrapf(err, "failed to print %s object", mo.ClassID)
		}
	}
	return nil
}

func (r *Runner) disconnect(ctx context.Context, sess imc.Session) {
	logger := r.log.WithField("host", sess.Host())
	logger.Info("Disconnecting")

	if err := sess.Logout(ctx); err != nil {
		logger.WithError(err).Warn("Logout failed")
	}
}
