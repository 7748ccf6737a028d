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
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/nvidia/imcquery/pkg/imc"
)

// ConnectColumn heads the host column in field projection mode.
const ConnectColumn = "connect"

// RowWriter receives every row printed in field projection mode.
type RowWriter interface {
	WriteRow(cells []string) error
}

// Printer renders managed objects to an output stream.
type Printer struct {
	out    io.Writer
	csv    *csv.Writer
	fields []string
	format OutputFormat
	sinks  []RowWriter
	log    *log.Entry
}

// NewPrinter creates a Printer. With fields set it prints one CSV row per
// object, otherwise each object in full using format.
func NewPrinter(out io.Writer, fields []string, format OutputFormat, logger *log.Entry) *Printer {
	return &Printer{
		out:    out,
		csv:    csv.NewWriter(out),
		fields: fields,
		format: format,
		log:    logger.WithField("component", "printer"),
	}
}

// AddSink copies every CSV row to w.
func (p *Printer) AddSink(w RowWriter) {
	p.sinks = append(p.sinks, w)
}

// PrintHeader writes the CSV header. It does nothing when no fields are set.
func (p *Printer) PrintHeader() error {
	if len(p.fields) == 0 {
		return nil
	}
	return p.writeRow(append([]string{ConnectColumn}, p.fields...))
}

// PrintObject writes mo as queried from host.
func (p *Printer) PrintObject(host string, mo *imc.ManagedObject) error {
	if len(p.fields) > 0 {
		return p.writeRow(p.project(host, mo))
	}

	switch p.format {
	case OutputJSON:
		b, err := json.MarshalIndent(document(host, mo), "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to encode object")
		}
		_, err = fmt.Fprintln(p.out, string(b))
		return err
	case OutputYAML:
		b, err := yaml.Marshal(document(host, mo))
		if err != nil {
			return errors.Wrap(err, "failed to encode object")
		}
		_, err = fmt.Fprintf(p.out, "---\n%s", b)
		return err
	default:
		_, err := fmt.Fprintln(p.out, mo.String())
		return err
	}
}

func (p *Printer) project(host string, mo *imc.ManagedObject) []string {
	return append([]string{host}, lo.Map(p.fields, func(field string, _ int) string {
		v, ok := mo.Get(field)
		if !ok {
			p.log.WithField("host", host).Debugf("%s has no field %s", mo.ClassID, field)
			return ""
		}
		return v
	})...)
}

func (p *Printer) writeRow(cells []string) error {
	if err := p.csv.Write(cells); err != nil {
		return errors.Wrap(err, "failed to write row")
	}
	p.csv.Flush()
	if err := p.csv.Error(); err != nil {
		return errors.Wrap(err, "failed to write row")
	}

	for _, sink := range p.sinks {
		if err := sink.WriteRow(cells); err != nil {
			return err
		}
	}
	return nil
}

func document(host string, mo *imc.ManagedObject) map[string]string {
	doc := make(map[string]string, len(mo.Attributes)+2)
	for k, v := range mo.Attributes {
		doc[k] = v
	}
	doc["classId"] = mo.ClassID
	doc[ConnectColumn] = host
	return doc
}
