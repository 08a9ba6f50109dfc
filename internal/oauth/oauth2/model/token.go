/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package model defines the data structures used in the OAuth2 module.
package model

import (
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
)

// Token is an issued access token together with its paired refresh value.
type Token struct {
	Value        string
	Type         string
	GrantType    constants.GrantType
	RefreshToken string
	IdentityID   string
	ClientID     string
	Scopes       []string
	TTLSeconds   int64
	IssuedAt     time.Time
}

// ExpiresAt returns the instant the token stops being available.
func (t *Token) ExpiresAt() time.Time {
	return t.IssuedAt.Add(time.Duration(t.TTLSeconds) * time.Second)
}

// IsExpiredAt reports whether the token is expired at the given instant.
func (t *Token) IsExpiredAt(instant time.Time) bool {
	return !instant.Before(t.ExpiresAt())
}

// TTLSecondsAt returns the whole seconds left before expiration, never negative.
func (t *Token) TTLSecondsAt(instant time.Time) int64 {
	remaining := int64(t.ExpiresAt().Sub(instant) / time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Copy returns a copy of the token that shares no mutable state with the original.
func (t *Token) Copy() *Token {
	token := *t
	token.Scopes = append([]string(nil), t.Scopes...)
	return &token
}

// TokenRequest carries everything a grant decided before tokens are issued.
type TokenRequest struct {
	GrantType constants.GrantType
	Client    *Client
	Identity  *Identity
	Scopes    []string
	Instant   time.Time
	Params    map[string]string
}

// TokenResponse is the outcome of a token issuance.
type TokenResponse struct {
	Successful   bool
	AccessToken  *Token
	RefreshToken string
}

// GrantRequest is a parsed token endpoint request.
type GrantRequest struct {
	GrantType    constants.GrantType
	Client       *Client
	Code         string
	RedirectURI  string
	RefreshToken string
	Assertion    string
	Scope        string
	CodeVerifier string
	Host         string
	Instant      time.Time
	Params       map[string]string
}

// BearerTokenResponse is the successful token endpoint body.
type BearerTokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
}

// IntrospectionResponse is the token introspection body.
type IntrospectionResponse struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Sub       string `json:"sub,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Iat       int64  `json:"iat,omitempty"`
}
