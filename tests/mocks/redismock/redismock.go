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

// Package redismock provides a testify mock of the Redis provider.
package redismock

import (
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// RedisProviderInterfaceMock is a mock implementation of redis.RedisProviderInterface.
type RedisProviderInterfaceMock struct {
	mock.Mock
}

// GetClient mocks the GetClient method.
func (m *RedisProviderInterfaceMock) GetClient() (goredis.UniversalClient, error) {
	args := m.Called()
	if client, ok := args.Get(0).(goredis.UniversalClient); ok {
		return client, args.Error(1)
	}
	return nil, args.Error(1)
}

// KeyPrefix mocks the KeyPrefix method.
func (m *RedisProviderInterfaceMock) KeyPrefix() string {
	args := m.Called()
	return args.String(0)
}

// Close mocks the Close method.
func (m *RedisProviderInterfaceMock) Close() error {
	args := m.Called()
	return args.Error(0)
}
