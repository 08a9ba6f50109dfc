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

// Package tokenstoremock provides a testify mock of the token store.
package tokenstoremock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// TokenStoreInterfaceMock is a mock implementation of store.TokenStoreInterface.
type TokenStoreInterfaceMock struct {
	mock.Mock
}

func (m *TokenStoreInterfaceMock) token(args mock.Arguments) (*model.Token, error) {
	if token, ok := args.Get(0).(*model.Token); ok {
		return token, args.Error(1)
	}
	return nil, args.Error(1)
}

// IssueToken mocks the IssueToken method.
func (m *TokenStoreInterfaceMock) IssueToken(ctx context.Context, grantType constants.GrantType, client *model.Client,
	identityID string, scopes []string, instant time.Time) (*model.Token, error) {
	return m.token(m.Called(ctx, grantType, client, identityID, scopes, instant))
}

// FindTokenAvailableAt mocks the FindTokenAvailableAt method.
func (m *TokenStoreInterfaceMock) FindTokenAvailableAt(ctx context.Context, value string,
	instant time.Time) (*model.Token, error) {
	return m.token(m.Called(ctx, value, instant))
}

// RefreshToken mocks the RefreshToken method.
func (m *TokenStoreInterfaceMock) RefreshToken(ctx context.Context, refreshValue string,
	instant time.Time) (*model.Token, error) {
	return m.token(m.Called(ctx, refreshValue, instant))
}

// FindRefreshToken mocks the FindRefreshToken method.
func (m *TokenStoreInterfaceMock) FindRefreshToken(ctx context.Context, refreshValue string) (*model.Token, error) {
	return m.token(m.Called(ctx, refreshValue))
}

// RevokeToken mocks the RevokeToken method.
func (m *TokenStoreInterfaceMock) RevokeToken(ctx context.Context, value string) error {
	return m.Called(ctx, value).Error(0)
}
