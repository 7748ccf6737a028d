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
	"strings"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/imc"
)

// Filter selects objects whose Field equals Value.
type Filter struct {
	Field string
	Value string
}

// Filters combine with OR semantics: an object passes when it matches any
// one of them.
type Filters []Filter

// ParseFilters parses "field=value" expressions. Malformed expressions are
// logged and dropped. A repeated field keeps its first position and its last
// value.
func ParseFilters(exprs []string, logger *log.Entry) Filters {
	filters := Filters{}
	index := make(map[string]int)

	for _, expr := range exprs {
		field, value, ok := strings.Cut(expr, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			logger.Warnf("Invalid filter ignored: %s", expr)
			continue
		}

		value = strings.TrimSpace(value)
		if i, seen := index[field]; seen {
			filters[i].Value = value
		} else {
			index[field] = len(filters)
			filters = append(filters, Filter{Field: field, Value: value})
		}
		logger.Debugf("filter[%s]=%s", field, value)
	}

	return filters
}

// Matches reports whether mo carries Field with exactly Value. An object
// without the field does not match.
func (f Filter) Matches(mo *imc.ManagedObject) bool {
	v, ok := mo.Get(f.Field)
	return ok && v == f.Value
}

// Passes reports whether mo matches any filter. Every object passes an empty
// filter set.
func (f Filters) Passes(mo *imc.ManagedObject) bool {
	if len(f) == 0 {
		return true
	}
	return lo.ContainsBy(f, func(flt Filter) bool {
		return flt.Matches(mo)
	})
}
