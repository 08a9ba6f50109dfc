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

// Package constants defines constants used across the OAuth2 module.
package constants

import "errors"

// OAuth2 request parameters.
const (
	GrantTypeParam      = "grant_type"
	ClientID            = "client_id"
	ClientSecret        = "client_secret"
	RedirectURI         = "redirect_uri"
	Scope               = "scope"
	Code                = "code"
	CodeVerifier        = "code_verifier"
	CodeChallenge       = "code_challenge"
	CodeChallengeMethod = "code_challenge_method"
	RefreshToken        = "refresh_token"
	ResponseType        = "response_type"
	State               = "state"
	Assertion           = "assertion"
	Token               = "token"
	TokenTypeHint       = "token_type_hint"
	Error               = "error"
	ErrorDescription    = "error_description"
)

// OAuth2 endpoints.
const (
	OAuth2TokenEndpoint         = "/oauth2/token" // #nosec G101
	OAuth2AuthorizationEndpoint = "/oauth2/authorize"
	OAuth2IntrospectionEndpoint = "/oauth2/introspect"
	OAuth2RevokeEndpoint        = "/oauth2/revoke"
	OAuth2JWKSEndpoint          = "/oauth2/jwks"
)

// GrantType identifies one of the supported OAuth2 grants.
type GrantType string

// OAuth2 grant types.
const (
	GrantTypeAuthorizationCode GrantType = "authorization_code"
	GrantTypeRefreshToken      GrantType = "refresh_token"
	GrantTypeJWTBearer         GrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
)

// IsValid reports whether the grant type is one the server handles.
func (g GrantType) IsValid() bool {
	switch g {
	case GrantTypeAuthorizationCode, GrantTypeRefreshToken, GrantTypeJWTBearer:
		return true
	default:
		return false
	}
}

// UnSupportedGrantTypeError is returned when no handler serves the requested grant type.
var UnSupportedGrantTypeError = errors.New("unsupported_grant_type")

// OAuth2 response types.
const (
	ResponseTypeCode = "code"
)

// OAuth2 token types.
const (
	TokenTypeBearer = "bearer"
)

// Token type hints accepted by the revocation endpoint.
const (
	TokenTypeHintAccessToken  = "access_token"
	TokenTypeHintRefreshToken = "refresh_token"
)

// OAuth2 error codes.
const (
	ErrorInvalidRequest          = "invalid_request"
	ErrorInvalidClient           = "invalid_client"
	ErrorInvalidGrant            = "invalid_grant"
	ErrorUnauthorizedClient      = "unauthorized_client"
	ErrorUnsupportedGrantType    = "unsupported_grant_type"
	ErrorInvalidScope            = "invalid_scope"
	ErrorServerError             = "server_error"
	ErrorUnsupportedResponseType = "unsupported_response_type"
	ErrorAccessDenied            = "access_denied"
)
