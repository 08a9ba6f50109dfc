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

// Package authzstoremock provides a testify mock of the authorization store.
package authzstoremock

import (
	"context"

	"github.com/stretchr/testify/mock"

	authzmodel "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// AuthorizationStoreInterfaceMock is a mock implementation of store.AuthorizationStoreInterface.
type AuthorizationStoreInterfaceMock struct {
	mock.Mock
}

// Authorize mocks the Authorize method.
func (m *AuthorizationStoreInterfaceMock) Authorize(ctx context.Context, client *model.Client, identityID string,
	scopes []string, responseType string, opts authzmodel.AuthorizationOptions) (*authzmodel.Authorization, error) {
	args := m.Called(ctx, client, identityID, scopes, responseType, opts)
	if authorization, ok := args.Get(0).(*authzmodel.Authorization); ok {
		return authorization, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindAuthorization mocks the FindAuthorization method.
func (m *AuthorizationStoreInterfaceMock) FindAuthorization(ctx context.Context, client *model.Client,
	code string) (*authzmodel.Authorization, error) {
	args := m.Called(ctx, client, code)
	if authorization, ok := args.Get(0).(*authzmodel.Authorization); ok {
		return authorization, args.Error(1)
	}
	return nil, args.Error(1)
}
