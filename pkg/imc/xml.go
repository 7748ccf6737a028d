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

import "encoding/xml"

type loginRequest struct {
	XMLName    xml.Name `xml:"aaaLogin"`
	InName     string   `xml:"inName,attr"`
	InPassword string   `xml:"inPassword,attr"`
}

type logoutRequest struct {
	XMLName  xml.Name `xml:"aaaLogout"`
	Cookie   string   `xml:"cookie,attr"`
	InCookie string   `xml:"inCookie,attr"`
}

type resolveClassRequest struct {
	XMLName        xml.Name `xml:"configResolveClass"`
	Cookie         string   `xml:"cookie,attr"`
	InHierarchical string   `xml:"inHierarchical,attr"`
	ClassID        string   `xml:"classId,attr"`
}

// response covers every method used here; the root element name is the
// method name.
type response struct {
	XMLName          xml.Name
	Cookie           string     `xml:"cookie,attr"`
	OutCookie        string     `xml:"outCookie,attr"`
	ErrorCode        string     `xml:"errorCode,attr"`
	ErrorDescr       string     `xml:"errorDescr,attr"`
	InvocationResult string     `xml:"invocationResult,attr"`
	OutConfigs       outConfigs `xml:"outConfigs"`
}

type outConfigs struct {
	Objects []rawObject `xml:",any"`
}

type rawObject struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

func (r rawObject) toManagedObject() *ManagedObject {
	mo := &ManagedObject{
		ClassID:    r.XMLName.Local,
		Attributes: make(map[string]string, len(r.Attrs)),
	}
	for _, attr := range r.Attrs {
		mo.Attributes[attr.Name.Local] = attr.Value
	}
	return mo
}
