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

// Package redis provides the shared Redis client used by the Redis backed stores.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// RedisProviderInterface defines the interface for getting the Redis client.
type RedisProviderInterface interface {
	GetClient() (goredis.UniversalClient, error)
	KeyPrefix() string
	Close() error
}

// RedisProvider is the implementation of RedisProviderInterface.
type RedisProvider struct {
	client goredis.UniversalClient
	mutex  sync.Mutex
}

var (
	instance *RedisProvider
	once     sync.Once
)

// GetRedisProvider returns the instance of RedisProvider.
func GetRedisProvider() RedisProviderInterface {
	once.Do(func() {
		instance = &RedisProvider{}
	})
	return instance
}

// GetClient returns the Redis client, connecting on first use.
func (p *RedisProvider) GetClient() (goredis.UniversalClient, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	redisURL := config.GetServerRuntime().Config.Redis.URL
	if redisURL == "" {
		return nil, errors.New("redis url is not configured")
	}

	client, err := NewClient(context.Background(), redisURL)
	if err != nil {
		return nil, err
	}
	p.client = client
	return client, nil
}

// KeyPrefix returns the prefix applied to every key written by the stores.
func (p *RedisProvider) KeyPrefix() string {
	return config.GetServerRuntime().Config.Redis.KeyPrefix
}

// Close closes the Redis client if it was opened.
func (p *RedisProvider) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	if err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}
	log.GetLogger().Debug("Redis connection closed successfully")
	return nil
}

// NewClient creates a Redis client from the URL and verifies the connection.
func NewClient(ctx context.Context, redisURL string) (goredis.UniversalClient, error) {
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
