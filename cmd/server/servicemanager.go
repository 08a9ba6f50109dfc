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

package main

import (
	"sync"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	authzstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	healthcheck "github.com/asgardeo/thunder-oauth/internal/system/healthcheck/service"
	"github.com/asgardeo/thunder-oauth/internal/system/jwt"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/managers"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/internal/system/redis"
)

// buildDependencies creates the stores and collaborators of the configured backends. The returned function
// closes the database and Redis connections and may be called more than once.
func buildDependencies(logger *log.Logger, serverHome string, cfg *config.Config) (managers.Dependencies, func()) {
	dbProvider := provider.GetDBProvider()
	redisProvider := redis.GetRedisProvider()

	var closeOnce sync.Once
	closeBackends := func() {
		closeOnce.Do(func() {
			if err := dbProvider.Close(); err != nil {
				logger.Error("Failed to close database connections", log.Error(err))
			}
			if err := redisProvider.Close(); err != nil {
				logger.Error("Failed to close redis connection", log.Error(err))
			}
		})
	}

	storeType := cfg.OAuth.Store.Type
	authzStore, err := authzstore.NewAuthorizationStore(storeType)
	if err != nil {
		logger.Fatal("Failed to create authorization store", log.Error(err))
	}
	tokenStore, err := tokenstore.NewTokenStore(storeType, cfg.OAuth.Token.ValidityPeriod)
	if err != nil {
		logger.Fatal("Failed to create token store", log.Error(err))
	}
	logger.Info("Using store backend", log.String("type", storeType))

	clients, err := client.NewClientRepositoryFromConfig(cfg.OAuth.Clients)
	if err != nil {
		logger.Fatal("Failed to load clients", log.Error(err))
	}

	accounts, err := identity.LoadServiceAccounts(serverHome, cfg.OAuth.ServiceAccounts)
	if err != nil {
		logger.Fatal("Failed to load service accounts", log.Error(err))
	}

	// The JWT service stays without a key when none is configured, which disables id_tokens.
	jwtService := jwt.GetJWTService()
	if cfg.Security.KeyFile != "" {
		if err := jwtService.Init(); err != nil {
			logger.Fatal("Failed to load private key", log.Error(err))
		}
	} else {
		logger.Warn("security.key_file is not configured, id_tokens will not be issued")
	}

	return managers.Dependencies{
		Config:             cfg,
		AuthzStore:         authzStore,
		TokenStore:         tokenStore,
		Clients:            clients,
		ServiceAccounts:    identity.NewServiceAccountRegistry(accounts...),
		JWTService:         jwtService,
		HealthCheckService: healthcheck.NewHealthCheckService(storeType, dbProvider, redisProvider),
		Metrics:            metrics.GetMetrics(),
	}, closeBackends
}
