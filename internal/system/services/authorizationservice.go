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

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/middleware"
)

// AuthorizationService defines the service for handling OAuth2 authorization requests.
type AuthorizationService struct {
	authHandler authz.AuthorizeHandlerInterface
	cors        middleware.CORSOptions
}

// NewAuthorizationService creates a new instance of AuthorizationService.
func NewAuthorizationService(mux *http.ServeMux, authHandler authz.AuthorizeHandlerInterface,
	allowedOrigins []string) ServiceInterface {
	instance := &AuthorizationService{
		authHandler: authHandler,
		cors: middleware.CORSOptions{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   "GET, POST",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the AuthorizationService.
// GET and POST are served alike since the handler reads the form of either.
func (s *AuthorizationService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(middleware.WithCORS("GET "+constants.OAuth2AuthorizationEndpoint,
		s.authHandler.HandleAuthorizeRequest, s.cors))
	mux.HandleFunc(middleware.WithCORS("POST "+constants.OAuth2AuthorizationEndpoint,
		s.authHandler.HandleAuthorizeRequest, s.cors))
	mux.HandleFunc(middleware.WithCORS("OPTIONS "+constants.OAuth2AuthorizationEndpoint,
		middleware.NoContent, s.cors))
}
