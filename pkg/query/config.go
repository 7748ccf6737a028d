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

// Package query runs a class ID query against one or more management
// controllers: it resolves candidate credentials, logs in, resolves the class,
// filters the returned objects and prints them.
package query

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pkg/errors"
)

var (
	// ErrMissingConnection is returned when no input file is given and the
	// host, username or password is missing from the command line.
	ErrMissingConnection = errors.New("connect, username and password arguments are all required when infile is not given")
	// ErrNoSession is returned when every candidate password was tried and
	// none produced a session.
	ErrNoSession = errors.New("no session established")
	// ErrMissingClassID is returned when no class ID was given.
	ErrMissingClassID = errors.New("class ID is required")
)

// OutputFormat selects how objects are rendered when no fields are configured.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// DefaultUsername is tried when neither the input file, the command line nor
// the credential store names a user.
const DefaultUsername = "admin"

// Config is the assembled run configuration.
type Config struct {
	ClassID   string
	Host      string
	Username  string
	Passwords []string
	Infiles   []string
	Fields    []string
	Filters   []string
	Output    OutputFormat
	XLSXPath  string
}

// Validate checks the configuration before any network activity.
func (c *Config) Validate() error {
	if c.Output == "" {
		c.Output = OutputText
	}

	if c.ClassID == "" {
		return ErrMissingClassID
	}

	err := validation.ValidateStruct(c,
		validation.Field(&c.Output, validation.In(OutputText, OutputJSON, OutputYAML).Error("must be one of text, json, yaml")),
		validation.Field(&c.Fields, validation.Each(validation.Required.Error("field names cannot be empty"))),
		validation.Field(&c.XLSXPath, validation.When(len(c.Fields) == 0, validation.Empty.Error("a workbook is only written when fields are selected"))),
	)
	if err != nil {
		return err
	}

	if len(c.Infiles) == 0 && (c.Host == "" || c.Username == "" || len(c.Passwords) == 0) {
		return ErrMissingConnection
	}

	return nil
}

// CSVMode reports whether objects are projected onto the configured fields.
func (c *Config) CSVMode() bool {
	return len(c.Fields) > 0
}
