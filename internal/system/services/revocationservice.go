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

package services

import (
	"net/http"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/revoke"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/middleware"
)

// TokenRevocationAPIService defines the API service for handling OAuth 2.0 token revocation requests.
type TokenRevocationAPIService struct {
	revokeHandler *revoke.TokenRevocationHandler
	cors          middleware.CORSOptions
}

// NewRevocationAPIService creates a new instance of TokenRevocationAPIService.
func NewRevocationAPIService(mux *http.ServeMux, clientAuthenticator client.ClientAuthenticatorInterface,
	tokenStore tokenstore.TokenStoreInterface, m *metrics.Metrics, allowedOrigins []string) ServiceInterface {
	instance := &TokenRevocationAPIService{
		revokeHandler: revoke.NewTokenRevocationHandler(clientAuthenticator,
			revoke.NewTokenRevocationService(tokenStore), m),
		cors: middleware.CORSOptions{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   "POST, OPTIONS",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the TokenRevocationAPIService.
func (s *TokenRevocationAPIService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(middleware.WithCORS("POST "+constants.OAuth2RevokeEndpoint, s.revokeHandler.HandleRevoke, s.cors))
	mux.HandleFunc(middleware.WithCORS("OPTIONS "+constants.OAuth2RevokeEndpoint, middleware.NoContent, s.cors))
}
