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
package imc

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ManagedObject is a management object as returned by configResolveClass.
// Its fields are the attributes of the XML element and vary by class ID.
type ManagedObject struct {
	ClassID    string
	Attributes map[string]string
}

// Get returns the value of the named field. The name may be given as the
// wire attribute name ("adminPower") or in snake_case ("admin_power").
// "class_id" and "classId" resolve to the object's class ID unless the
// object carries an attribute of that name.
func (mo *ManagedObject) Get(field string) (string, bool) {
	if mo == nil {
		return "", false
	}
	if v, ok := mo.Attributes[field]; ok {
		return v, true
	}
	camel := snakeToCamel(field)
	if v, ok := mo.Attributes[camel]; ok {
		return v, true
	}
	if camel == "classId" {
		return mo.ClassID, true
	}
	return "", false
}

// Fields returns the attribute names sorted alphabetically.
func (mo *ManagedObject) Fields() []string {
	names := make([]string, 0, len(mo.Attributes))
	for name := range mo.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the object in the layout used by the vendor SDK: a
// heading with the class ID followed by one "name : value" line per field.
func (mo *ManagedObject) String() string {
	const heading = "Managed Object"

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\t\t\t:\t%s\n", heading, mo.ClassID)
	b.WriteString(strings.Repeat("-", len(heading)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-32s:%s\n", "class_id", mo.ClassID)
	for _, name := range mo.Fields() {
		fmt.Fprintf(&b, "%-32s:%s\n", name, mo.Attributes[name])
	}
	return b.String()
}

// snakeToCamel converts "admin_power" to "adminPower". Names without an
// underscore are returned unchanged.
func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		if p == "" {
			continue
		}
		r := []rune(p)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
