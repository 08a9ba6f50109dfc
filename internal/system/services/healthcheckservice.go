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

	"github.com/asgardeo/thunder-oauth/internal/system/healthcheck/handler"
	"github.com/asgardeo/thunder-oauth/internal/system/healthcheck/service"
	"github.com/asgardeo/thunder-oauth/internal/system/middleware"
)

// HealthCheckService defines the service for handling readiness and liveness checks.
type HealthCheckService struct {
	healthCheckHandler *handler.HealthCheckHandler
	cors               middleware.CORSOptions
}

// NewHealthCheckService creates a new instance of HealthCheckService.
func NewHealthCheckService(mux *http.ServeMux, healthCheckService service.HealthCheckServiceInterface,
	allowedOrigins []string) ServiceInterface {
	instance := &HealthCheckService{
		healthCheckHandler: handler.NewHealthCheckHandler(healthCheckService),
		cors: middleware.CORSOptions{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   "GET",
			AllowedHeaders:   "Content-Type, Authorization",
			AllowCredentials: true,
		},
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the routes for the HealthCheckService.
func (h *HealthCheckService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(middleware.WithCORS("OPTIONS /health/liveness", middleware.NoContent, h.cors))
	mux.HandleFunc(middleware.WithCORS("GET /health/liveness",
		h.healthCheckHandler.HandleLivenessRequest, h.cors))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /health/readiness", middleware.NoContent, h.cors))
	mux.HandleFunc(middleware.WithCORS("GET /health/readiness",
		h.healthCheckHandler.HandleReadinessRequest, h.cors))
}
