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

// Package identitymock provides testify mocks of the identity finder and key store.
package identitymock

import (
	"context"
	"encoding/pem"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// IdentityFinderInterfaceMock is a mock implementation of identity.IdentityFinderInterface.
type IdentityFinderInterfaceMock struct {
	mock.Mock
}

// FindIdentity mocks the FindIdentity method.
func (m *IdentityFinderInterfaceMock) FindIdentity(ctx context.Context,
	request identity.FindIdentityRequest) (*model.Identity, bool) {
	args := m.Called(ctx, request)
	identityValue, _ := args.Get(0).(*model.Identity)
	return identityValue, args.Bool(1)
}

// KeyStoreInterfaceMock is a mock implementation of identity.KeyStoreInterface.
type KeyStoreInterfaceMock struct {
	mock.Mock
}

// FindKey mocks the FindKey method.
func (m *KeyStoreInterfaceMock) FindKey(ctx context.Context, header assertion.Header,
	claims assertion.Claims) (*pem.Block, bool) {
	args := m.Called(ctx, header, claims)
	key, _ := args.Get(0).(*pem.Block)
	return key, args.Bool(1)
}
