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

package granthandlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	tokenconstants "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/tokenstoremock"
)

type RefreshTokenGrantHandlerTestSuite struct {
	suite.Suite
	handler        GrantHandlerInterface
	mockTokenStore *tokenstoremock.TokenStoreInterfaceMock
	grantRequest   *model.GrantRequest
	current        *model.Token
}

func TestRefreshTokenGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(RefreshTokenGrantHandlerTestSuite))
}

func (suite *RefreshTokenGrantHandlerTestSuite) SetupTest() {
	suite.mockTokenStore = &tokenstoremock.TokenStoreInterfaceMock{}
	suite.handler = newRefreshTokenGrantHandler(Dependencies{TokenStore: suite.mockTokenStore})

	suite.grantRequest = &model.GrantRequest{
		GrantType:    constants.GrantTypeRefreshToken,
		Client:       &model.Client{ID: "test-client-id"},
		RefreshToken: "refresh-1",
		Instant:      testInstant,
	}
	suite.current = &model.Token{
		Value:        "access-1",
		RefreshToken: "refresh-1",
		ClientID:     "test-client-id",
		IdentityID:   "user-1",
		Scopes:       []string{"read"},
		TTLSeconds:   60,
		IssuedAt:     testInstant.Add(-90 * time.Second),
	}
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestValidateGrant() {
	testCases := []struct {
		name        string
		modify      func(req *model.GrantRequest)
		expectedErr string
	}{
		{"Valid", func(req *model.GrantRequest) {}, ""},
		{"WrongGrantType", func(req *model.GrantRequest) { req.GrantType = constants.GrantTypeJWTBearer },
			constants.ErrorUnsupportedGrantType},
		{"MissingClient", func(req *model.GrantRequest) { req.Client = nil }, constants.ErrorInvalidClient},
		{"MissingRefreshToken", func(req *model.GrantRequest) { req.RefreshToken = "" },
			constants.ErrorInvalidRequest},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			req := *suite.grantRequest
			tc.modify(&req)

			errResp := suite.handler.ValidateGrant(&req)
			if tc.expectedErr == "" {
				assert.Nil(t, errResp)
			} else {
				require.NotNil(t, errResp)
				assert.Equal(t, tc.expectedErr, errResp.Error)
			}
		})
	}
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrantSuccess() {
	refreshed := &model.Token{
		Value:        "access-2",
		Type:         constants.TokenTypeBearer,
		RefreshToken: "refresh-1",
		ClientID:     "test-client-id",
		Scopes:       []string{"read"},
		TTLSeconds:   60,
		IssuedAt:     testInstant,
	}
	suite.mockTokenStore.On("FindRefreshToken", mock.Anything, "refresh-1").Return(suite.current, nil).Once()
	suite.mockTokenStore.On("RefreshToken", mock.Anything, "refresh-1", testInstant).Return(refreshed, nil).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), errResp)
	assert.Equal(suite.T(), &model.BearerTokenResponse{
		AccessToken:  "access-2",
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    60,
		Scope:        "read",
		RefreshToken: "refresh-1",
	}, response)
	suite.mockTokenStore.AssertExpectations(suite.T())
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrantUnknownRefreshToken() {
	suite.mockTokenStore.On("FindRefreshToken", mock.Anything, "refresh-1").
		Return(nil, tokenconstants.ErrTokenNotFound).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid refresh token"), errResp)
	suite.mockTokenStore.AssertNumberOfCalls(suite.T(), "RefreshToken", 0)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrantForeignClient() {
	suite.current.ClientID = "other-client"
	suite.mockTokenStore.On("FindRefreshToken", mock.Anything, "refresh-1").Return(suite.current, nil).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid refresh token"), errResp)
	suite.mockTokenStore.AssertNumberOfCalls(suite.T(), "RefreshToken", 0)
}

func (suite *RefreshTokenGrantHandlerTestSuite) TestHandleGrantRefreshRace() {
	suite.mockTokenStore.On("FindRefreshToken", mock.Anything, "refresh-1").Return(suite.current, nil).Once()
	suite.mockTokenStore.On("RefreshToken", mock.Anything, "refresh-1", testInstant).
		Return(nil, tokenconstants.ErrTokenNotFound).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid refresh token"), errResp)
}
