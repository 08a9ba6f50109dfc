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

// Package granthandlersmock provides testify mocks of the grant handlers and their provider.
package granthandlersmock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/granthandlers"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// GrantHandlerProviderInterfaceMock is a mock implementation of granthandlers.GrantHandlerProviderInterface.
type GrantHandlerProviderInterfaceMock struct {
	mock.Mock
}

// GetGrantHandler mocks the GetGrantHandler method.
func (m *GrantHandlerProviderInterfaceMock) GetGrantHandler(
	grantType constants.GrantType) (granthandlers.GrantHandlerInterface, error) {
	args := m.Called(grantType)
	handler, _ := args.Get(0).(granthandlers.GrantHandlerInterface)
	return handler, args.Error(1)
}

// GrantHandlerInterfaceMock is a mock implementation of granthandlers.GrantHandlerInterface.
type GrantHandlerInterfaceMock struct {
	mock.Mock
}

// ValidateGrant mocks the ValidateGrant method.
func (m *GrantHandlerInterfaceMock) ValidateGrant(grantRequest *model.GrantRequest) *model.ErrorResponse {
	errResp, _ := m.Called(grantRequest).Get(0).(*model.ErrorResponse)
	return errResp
}

// HandleGrant mocks the HandleGrant method.
func (m *GrantHandlerInterfaceMock) HandleGrant(ctx context.Context,
	grantRequest *model.GrantRequest) (*model.BearerTokenResponse, *model.ErrorResponse) {
	args := m.Called(ctx, grantRequest)
	response, _ := args.Get(0).(*model.BearerTokenResponse)
	errResp, _ := args.Get(1).(*model.ErrorResponse)
	return response, errResp
}
