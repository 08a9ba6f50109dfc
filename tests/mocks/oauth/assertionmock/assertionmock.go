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

// Package assertionmock provides testify mocks of the assertion signature types.
package assertionmock

import (
	"encoding/pem"

	"github.com/stretchr/testify/mock"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
)

// SignatureFactoryInterfaceMock is a mock implementation of assertion.SignatureFactoryInterface.
type SignatureFactoryInterfaceMock struct {
	mock.Mock
}

// CreateSignature mocks the CreateSignature method.
func (m *SignatureFactoryInterfaceMock) CreateSignature(signature []byte,
	header assertion.Header) (assertion.SignatureInterface, bool) {
	args := m.Called(signature, header)
	sig, _ := args.Get(0).(assertion.SignatureInterface)
	return sig, args.Bool(1)
}

// SignatureInterfaceMock is a mock implementation of assertion.SignatureInterface.
type SignatureInterfaceMock struct {
	mock.Mock
}

// Verify mocks the Verify method.
func (m *SignatureInterfaceMock) Verify(content []byte, key *pem.Block) bool {
	return m.Called(content, key).Bool(0)
}
