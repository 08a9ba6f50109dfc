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

// Package service provides health check-related business logic and operations.
package service

import (
	"context"

	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	"github.com/asgardeo/thunder-oauth/internal/system/healthcheck/model"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/redis"
)

const (
	runtimeDBServiceName = "RuntimeDB"
	redisServiceName     = "Redis"
)

// HealthCheckServiceInterface defines the interface for the health check service.
type HealthCheckServiceInterface interface {
	CheckReadiness(ctx context.Context) model.ServerStatus
}

// HealthCheckService is the default implementation of the HealthCheckServiceInterface.
// Only the backend of the configured store type is checked.
type HealthCheckService struct {
	storeType     string
	dbProvider    provider.DBProviderInterface
	redisProvider redis.RedisProviderInterface
}

// NewHealthCheckService creates a health check service for the given store type.
func NewHealthCheckService(storeType string, dbProvider provider.DBProviderInterface,
	redisProvider redis.RedisProviderInterface) HealthCheckServiceInterface {
	return &HealthCheckService{
		storeType:     storeType,
		dbProvider:    dbProvider,
		redisProvider: redisProvider,
	}
}

// CheckReadiness checks the readiness of the server and its dependencies.
func (hcs *HealthCheckService) CheckReadiness(ctx context.Context) model.ServerStatus {
	statuses := []model.ServiceStatus{}
	switch hcs.storeType {
	case config.StoreTypeDatabase:
		statuses = append(statuses, model.ServiceStatus{
			ServiceName: runtimeDBServiceName,
			Status:      hcs.checkDatabaseStatus(ctx),
		})
	case config.StoreTypeRedis:
		statuses = append(statuses, model.ServiceStatus{
			ServiceName: redisServiceName,
			Status:      hcs.checkRedisStatus(ctx),
		})
	}

	status := model.StatusUp
	for _, serviceStatus := range statuses {
		if serviceStatus.Status == model.StatusDown {
			status = model.StatusDown
		}
	}
	return model.ServerStatus{
		Status:        status,
		ServiceStatus: statuses,
	}
}

// checkDatabaseStatus pings the runtime database.
func (hcs *HealthCheckService) checkDatabaseStatus(ctx context.Context) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	dbClient, err := hcs.dbProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return model.StatusDown
	}
	if err := dbClient.Ping(ctx); err != nil {
		logger.Error("Failed to ping database", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}

// checkRedisStatus sends a PING to the Redis server.
func (hcs *HealthCheckService) checkRedisStatus(ctx context.Context) model.Status {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HealthCheckService"))

	client, err := hcs.redisProvider.GetClient()
	if err != nil {
		logger.Error("Failed to get redis client", log.Error(err))
		return model.StatusDown
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to ping redis", log.Error(err))
		return model.StatusDown
	}
	return model.StatusUp
}
