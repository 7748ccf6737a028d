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

// Package imc is a minimal client for the Cisco IMC XML API. It covers the
// calls needed to log in, resolve all management objects of a class and log
// out; everything else the controller offers is out of its scope.
package imc

//go:generate mockgen -destination=mock_imc/mock_imc.go -package=mock_imc github.com/nvidia/imcquery/pkg/imc Client,Session

import (
	"context"
	"crypto/tls"
	"encoding/xml"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/nvidia/imcquery/pkg/common/credential"
)

const (
	// DefaultPort is the HTTPS port the XML API listens on.
	DefaultPort = 443
	// DefaultTimeout bounds a single XML API request.
	DefaultTimeout = 60 * time.Second

	apiPath = "/nuova"
)

// Client logs into management controllers.
type Client interface {
	Login(ctx context.Context, host string, cred *credential.Credential) (Session, error)
}

// Session is an authenticated XML API session. It must not be used after
// Logout.
type Session interface {
	Host() string
	User() string
	QueryClassID(ctx context.Context, classID string) ([]*ManagedObject, error)
	Logout(ctx context.Context) error
}

// Config configures how the XML API is reached.
type Config struct {
	Port     int           // used when the host carries no port
	Secure   bool          // https when true, http otherwise
	Insecure bool          // skip TLS certificate verification
	Timeout  time.Duration // per request
}

// DefaultConfig returns the settings used by the vendor SDK: HTTPS on 443
// without certificate verification.
func DefaultConfig() Config {
	return Config{
		Port:     DefaultPort,
		Secure:   true,
		Insecure: true,
		Timeout:  DefaultTimeout,
	}
}

// XMLClient implements Client over HTTP(S) with resty.
type XMLClient struct {
	conf Config
	http *resty.Client
	log  *log.Entry
}

// NewClient creates an XMLClient.
func NewClient(conf Config, logger *log.Entry) *XMLClient {
	if conf.Port == 0 {
		conf.Port = DefaultPort
	}
	if conf.Timeout == 0 {
		conf.Timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetTimeout(conf.Timeout).
		SetHeader("Content-Type", "text/xml").
		SetTLSClientConfig(&tls.Config{
			InsecureSkipVerify: conf.Insecure, //nolint:gosec // IMCs ship self-signed certificates
		})

	return &XMLClient{
		conf: conf,
		http: httpClient,
		log:  logger.WithField("component", "imc"),
	}
}

func (c *XMLClient) endpoint(host string) string {
	scheme := "http"
	if c.conf.Secure {
		scheme = "https"
	}

	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, strconv.Itoa(c.conf.Port))
	}

	return fmt.Sprintf("%s://%s%s", scheme, host, apiPath)
}

// Login runs aaaLogin against host and returns the resulting session.
func (c *XMLClient) Login(ctx context.Context, host string, cred *credential.Credential) (Session, error) {
	if cred == nil {
		return nil, errors.New("no credential given")
	}

	c.log.WithFields(log.Fields{"host": host, "user": cred.User}).Debug("aaaLogin")

	req := loginRequest{InName: cred.User, InPassword: cred.Password.Value}
	resp, err := c.do(ctx, host, &req)
	if err != nil {
		return nil, err
	}

	if resp.OutCookie == "" {
		return nil, errors.Errorf("aaaLogin to %s returned no session cookie", host)
	}

	return &session{
		client: c,
		host:   host,
		user:   cred.User,
		cookie: resp.OutCookie,
	}, nil
}

// do posts an XML API method to host and decodes the response, turning an
// errorCode attribute into an *Error.
func (c *XMLClient) do(ctx context.Context, host string, method interface{}) (*response, error) {
	body, err := xml.Marshal(method)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode request")
	}

	url := c.endpoint(host)
	httpResp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(url)
	if err != nil {
		return nil, errors.Wrapf(err, "request to %s failed", url)
	}

	if httpResp.IsError() {
		return nil, errors.Errorf("request to %s failed with HTTP status %s", url, httpResp.Status())
	}

	var resp response
	if err := xml.Unmarshal(httpResp.Body(), &resp); err != nil {
		return nil, errors.Wrapf(err, "failed to decode response from %s", url)
	}

	if resp.ErrorCode != "" {
		return nil, newError(resp.XMLName.Local, resp.ErrorCode, resp.ErrorDescr, resp.InvocationResult)
	}

	return &resp, nil
}

type session struct {
	client *XMLClient
	host   string
	user   string
	cookie string
}

func (s *session) Host() string {
	return s.host
}

func (s *session) User() string {
	return s.user
}

// QueryClassID runs configResolveClass (non hierarchical) for classID.
func (s *session) QueryClassID(ctx context.Context, classID string) ([]*ManagedObject, error) {
	if s.cookie == "" {
		return nil, ErrSessionClosed
	}

	s.client.log.WithFields(log.Fields{"host": s.host, "classId": classID}).Debug("configResolveClass")

	req := resolveClassRequest{
		Cookie:         s.cookie,
		InHierarchical: "false",
		ClassID:        classID,
	}
	resp, err := s.client.do(ctx, s.host, &req)
	if err != nil {
		return nil, err
	}

	objects := make([]*ManagedObject, 0, len(resp.OutConfigs.Objects))
	for _, raw := range resp.OutConfigs.Objects {
		objects = append(objects, raw.toManagedObject())
	}

	return objects, nil
}

// Logout runs aaaLogout. The session is closed even if the call fails.
func (s *session) Logout(ctx context.Context) error {
	if s.cookie == "" {
		return ErrSessionClosed
	}

	cookie := s.cookie
	s.cookie = ""

	s.client.log.WithField("host", s.host).Debug("aaaLogout")

	_, err := s.client.do(ctx, s.host, &logoutRequest{Cookie: cookie, InCookie: cookie})
	return err
}
