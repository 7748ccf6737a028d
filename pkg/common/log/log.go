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

// Package log builds the logrus loggers used by imcquery.
package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

// Formatter renders entries as "<time> [LEVEL] file:line message {fields}".
type Formatter struct {
	WithCallDepth int // if > 0 it will be used to find in the call stack the caller to the logging function
}

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	// This is "yyyy-mm-dd HH:MM:SS.000000" TZ format
	const layout = "2006-01-02 15:04:05.000000 MST"

	b := bytes.Buffer{}

	b.WriteString(entry.Time.Format(layout))

	b.WriteString(" [")
	b.WriteString(strings.ToUpper(entry.Level.String()))
	b.WriteString("] ")

	if entry.HasCaller() {
		var filename string
		var line int
		if f.WithCallDepth == 0 {
			filename = filepath.Base(entry.Caller.File)
			line = entry.Caller.Line
		} else {
			var ok bool
			var file string
			_, file, line, ok = runtime.Caller(f.WithCallDepth)
			if !ok {
				file = "???"
				line = 0
			}
			filename = filepath.Base(file)
		}
		b.WriteString(fmt.Sprintf("%s:%d ", filename, line))
	}

	b.WriteString(entry.Message)

	if len(entry.Data) != 0 {
		fields := make(logrus.Fields, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			fields[k] = v
		}

		data, err := json.Marshal(fields)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fields to JSON, %w", err)
		}

		b.WriteString(" ")
		b.Write(data)
	}

	b.WriteByte('\n')

	return b.Bytes(), nil
}

// Level maps the -v/-d flags to a logrus level. Debug wins over verbose;
// without either only warnings and errors are shown.
func Level(verbose bool, debug bool) logrus.Level {
	switch {
	case debug:
		return logrus.DebugLevel
	case verbose:
		return logrus.InfoLevel
	default:
		return logrus.WarnLevel
	}
}

// New returns a logger writing to out at the level selected by verbose/debug.
// Caller reporting is enabled in debug mode only.
func New(out io.Writer, verbose bool, debug bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&Formatter{})
	logger.SetLevel(Level(verbose, debug))
	logger.SetReportCaller(debug)
	return logger
}
