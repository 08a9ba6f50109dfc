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

// Package managers provides functionality for managing and registering system services.
package managers

import (
	"errors"
	"net/http"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/idtoken"
	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz"
	authzstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	healthcheck "github.com/asgardeo/thunder-oauth/internal/system/healthcheck/service"
	"github.com/asgardeo/thunder-oauth/internal/system/jwt"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/services"
)

// ServiceManagerInterface defines the interface for managing services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// Dependencies are the collaborators shared by the registered services.
type Dependencies struct {
	Config             *config.Config
	AuthzStore         authzstore.AuthorizationStoreInterface
	TokenStore         tokenstore.TokenStoreInterface
	Clients            client.ClientRepositoryInterface
	ServiceAccounts    *identity.ServiceAccountRegistry
	JWTService         jwt.JWTServiceInterface
	HealthCheckService healthcheck.HealthCheckServiceInterface
	Metrics            *metrics.Metrics
}

// ServiceManager implements the ServiceManagerInterface and is responsible for registering services.
type ServiceManager struct {
	mux  *http.ServeMux
	deps Dependencies
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, deps Dependencies) ServiceManagerInterface {
	return &ServiceManager{
		mux:  mux,
		deps: deps,
	}
}

// RegisterServices registers all the services with the provided HTTP multiplexer.
func (sm *ServiceManager) RegisterServices() error {
	deps := sm.deps
	if deps.Config == nil || deps.AuthzStore == nil || deps.TokenStore == nil || deps.Clients == nil ||
		deps.ServiceAccounts == nil || deps.JWTService == nil || deps.HealthCheckService == nil ||
		deps.Metrics == nil {
		return errors.New("service manager dependencies are incomplete")
	}
	origins := deps.Config.CORS.AllowedOrigins
	oauthConfig := deps.Config.OAuth

	// Register the health service.
	services.NewHealthCheckService(sm.mux, deps.HealthCheckService, origins)

	// Register the token service.
	grantHandlerProvider := granthandlers.NewGrantHandlerProvider(granthandlers.Dependencies{
		AuthzStore:       deps.AuthzStore,
		TokenStore:       deps.TokenStore,
		IdentityFinder:   deps.ServiceAccounts,
		KeyStore:         deps.ServiceAccounts,
		SignatureFactory: assertion.NewSignatureFactory(),
		IdTokenFactory:   idtoken.NewIdTokenFactory(deps.JWTService, oauthConfig.JWT.Issuer),
		EnforcePKCE:      oauthConfig.PKCE.Enforce,
	})
	services.NewTokenService(sm.mux, token.NewTokenHandler(deps.Clients, grantHandlerProvider, deps.Metrics),
		origins)

	// Register the authorization service.
	authorizeHandler := authz.NewAuthorizeHandler(authz.NewAuthorizationValidator(deps.Clients), deps.AuthzStore,
		authz.NewHeaderResourceOwnerFinder(oauthConfig.Authorize.IdentityHeader), deps.Metrics,
		oauthConfig.PKCE.Enforce)
	services.NewAuthorizationService(sm.mux, authorizeHandler, origins)

	// Register the introspection and revocation services.
	services.NewIntrospectionAPIService(sm.mux, deps.TokenStore, origins)
	services.NewRevocationAPIService(sm.mux, deps.Clients, deps.TokenStore, deps.Metrics, origins)

	// Register the JWKS service.
	services.NewJWKSAPIService(sm.mux, jwks.NewJWKSService(deps.JWTService), origins)

	// Register the metrics service.
	services.NewMetricsService(sm.mux, deps.Metrics)

	return nil
}
