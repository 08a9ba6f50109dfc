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

// Package idtokenmock provides a testify mock of the id_token factory.
package idtokenmock

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// IdTokenFactoryInterfaceMock is a mock implementation of idtoken.IdTokenFactoryInterface.
type IdTokenFactoryInterfaceMock struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *IdTokenFactoryInterfaceMock) Create(host, clientID string, identity *model.Identity, ttlSeconds int64,
	instant time.Time) (string, bool) {
	args := m.Called(host, clientID, identity, ttlSeconds, instant)
	return args.String(0), args.Bool(1)
}
