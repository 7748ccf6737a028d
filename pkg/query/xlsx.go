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
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

const workbookSheet = "Sheet1"

// WorkbookWriter collects rows into an Excel workbook saved on Close.
type WorkbookWriter struct {
	file *excelize.File
	path string
	row  int
}

// NewWorkbookWriter creates an empty workbook that will be saved to path.
func NewWorkbookWriter(path string) *WorkbookWriter {
	return &WorkbookWriter{
		file: excelize.NewFile(),
		path: path,
	}
}

// WriteRow appends cells as the next row of the sheet.
func (w *WorkbookWriter) WriteRow(cells []string) error {
	w.row++
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return errors.Wrapf(err, "invalid workbook row %d", w.row)
	}

	values := lo.Map(cells, func(c string, _ int) interface{} {
		return c
	})
	if err := w.file.SetSheetRow(workbookSheet, cell, &values); err != nil {
		return errors.Wrapf(err, "failed to write workbook row %d", w.row)
	}
	return nil
}

// Close saves the workbook and releases it.
func (w *WorkbookWriter) Close() error {
	defer w.file.Close()

	if err := w.file.SaveAs(w.path); err != nil {
		return errors.Wrapf(err, "failed to save workbook %s", w.path)
	}
	return nil
}
