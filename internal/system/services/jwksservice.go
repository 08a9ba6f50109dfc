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

	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks"
	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks/handler"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/middleware"
)

// JWKSAPIService defines the API service for handling JWKS requests.
type JWKSAPIService struct {
	jwksHandler *handler.JWKSHandler
	cors        middleware.CORSOptions
}

// NewJWKSAPIService creates a new instance of JWKSAPIService.
func NewJWKSAPIService(mux *http.ServeMux, jwksService jwks.JWKSServiceInterface,
	allowedOrigins []string) ServiceInterface {
	instance := &JWKSAPIService{
		jwksHandler: handler.NewJWKSHandler(jwksService),
		cors: middleware.CORSOptions{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   "GET, OPTIONS",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the JWKSAPIService.
func (s *JWKSAPIService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(middleware.WithCORS("GET "+constants.OAuth2JWKSEndpoint, s.jwksHandler.HandleJWKSRequest, s.cors))
	mux.HandleFunc(middleware.WithCORS("OPTIONS "+constants.OAuth2JWKSEndpoint, middleware.NoContent, s.cors))
}
