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

// Package clientmock provides a testify mock of the client repository.
package clientmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// ClientRepositoryInterfaceMock is a mock implementation of client.ClientRepositoryInterface.
type ClientRepositoryInterfaceMock struct {
	mock.Mock
}

// FindClient mocks the FindClient method.
func (m *ClientRepositoryInterfaceMock) FindClient(ctx context.Context, clientID string) (*model.Client, bool) {
	args := m.Called(ctx, clientID)
	client, _ := args.Get(0).(*model.Client)
	return client, args.Bool(1)
}

// Save mocks the Save method.
func (m *ClientRepositoryInterfaceMock) Save(ctx context.Context, client model.Client) error {
	return m.Called(ctx, client).Error(0)
}

// Authenticate mocks the Authenticate method.
func (m *ClientRepositoryInterfaceMock) Authenticate(ctx context.Context, clientID,
	clientSecret string) (*model.Client, bool) {
	args := m.Called(ctx, clientID, clientSecret)
	client, _ := args.Get(0).(*model.Client)
	return client, args.Bool(1)
}
