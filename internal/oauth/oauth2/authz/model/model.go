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

// Package model defines the data structures for OAuth2 authorization.
package model

import "time"

// Authorization represents one issued authorization code.
type Authorization struct {
	ResponseType        string
	ClientID            string
	IdentityID          string
	Code                string
	Scopes              []string
	RedirectURIs        []string
	CodeChallenge       string
	CodeChallengeMethod string
	Params              map[string]string
	CreatedAt           time.Time
	UsedAt              *time.Time
}

// WasUsed reports whether the code has already been redeemed.
func (a *Authorization) WasUsed() bool {
	return a.UsedAt != nil
}

// Copy returns a copy of the authorization that shares no mutable state with the original.
func (a *Authorization) Copy() *Authorization {
	authz := *a
	authz.Scopes = append([]string(nil), a.Scopes...)
	authz.RedirectURIs = append([]string(nil), a.RedirectURIs...)
	if a.Params != nil {
		authz.Params = make(map[string]string, len(a.Params))
		for k, v := range a.Params {
			authz.Params[k] = v
		}
	}
	if a.UsedAt != nil {
		usedAt := *a.UsedAt
		authz.UsedAt = &usedAt
	}
	return &authz
}

// AuthorizationOptions holds the optional request data bound to a new code.
type AuthorizationOptions struct {
	CodeChallenge       string
	CodeChallengeMethod string
	Params              map[string]string
}
