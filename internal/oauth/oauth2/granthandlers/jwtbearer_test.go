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
	"encoding/base64"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/assertionmock"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/identitymock"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/idtokenmock"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/tokenstoremock"
)

const testIssuer = "svc@example.com"

type JWTBearerGrantHandlerTestSuite struct {
	suite.Suite
	handler              GrantHandlerInterface
	mockKeyStore         *identitymock.KeyStoreInterfaceMock
	mockSignatureFactory *assertionmock.SignatureFactoryInterfaceMock
	mockSignature        *assertionmock.SignatureInterfaceMock
	mockIdentityFinder   *identitymock.IdentityFinderInterfaceMock
	mockTokenStore       *tokenstoremock.TokenStoreInterfaceMock
	mockIdTokenFactory   *idtokenmock.IdTokenFactoryInterfaceMock
	key                  *pem.Block
	assertionValue       string
	parsed               *assertion.Assertion
	serviceAccount       *model.Identity
	grantRequest         *model.GrantRequest
}

func TestJWTBearerGrantHandlerSuite(t *testing.T) {
	suite.Run(t, new(JWTBearerGrantHandlerTestSuite))
}

func encodeAssertion(header, claims, signature string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(header)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(claims)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(signature))
}

func (suite *JWTBearerGrantHandlerTestSuite) SetupTest() {
	suite.mockKeyStore = &identitymock.KeyStoreInterfaceMock{}
	suite.mockSignatureFactory = &assertionmock.SignatureFactoryInterfaceMock{}
	suite.mockSignature = &assertionmock.SignatureInterfaceMock{}
	suite.mockIdentityFinder = &identitymock.IdentityFinderInterfaceMock{}
	suite.mockTokenStore = &tokenstoremock.TokenStoreInterfaceMock{}
	suite.mockIdTokenFactory = &idtokenmock.IdTokenFactoryInterfaceMock{}

	suite.handler = newJWTBearerGrantHandler(Dependencies{
		KeyStore:         suite.mockKeyStore,
		SignatureFactory: suite.mockSignatureFactory,
		IdentityFinder:   suite.mockIdentityFinder,
		IdTokenFactory:   suite.mockIdTokenFactory,
	}, newTokenIssuer(suite.mockTokenStore))

	suite.key = &pem.Block{Type: "PUBLIC KEY", Bytes: []byte("public-key")}
	suite.assertionValue = encodeAssertion(`{"alg":"RS256","typ":"JWT"}`,
		`{"iss":"svc@example.com","aud":"https://auth.example.com/oauth2/token","exp":1700000600,"iat":1700000000}`,
		"signature-bytes")
	parsed, err := assertion.Parse(suite.assertionValue)
	require.NoError(suite.T(), err)
	suite.parsed = parsed
	suite.serviceAccount = &model.Identity{ID: "svc-1", Name: "Service"}

	suite.grantRequest = &model.GrantRequest{
		GrantType: constants.GrantTypeJWTBearer,
		Assertion: suite.assertionValue,
		Scope:     "CanDoY CanDoX CanDoZ CanDoX",
		Host:      "auth.example.com",
		Instant:   testInstant,
		Params: map[string]string{
			constants.GrantTypeParam: string(constants.GrantTypeJWTBearer),
			constants.Assertion:      suite.assertionValue,
			constants.Scope:          "CanDoY CanDoX CanDoZ CanDoX",
			"device":                 "d-1",
		},
	}
}

func (suite *JWTBearerGrantHandlerTestSuite) expectVerified() {
	suite.mockKeyStore.On("FindKey", mock.Anything, suite.parsed.Header, suite.parsed.Claims).
		Return(suite.key, true).Once()
	suite.mockSignatureFactory.On("CreateSignature", []byte("signature-bytes"), suite.parsed.Header).
		Return(suite.mockSignature, true).Once()
	suite.mockSignature.On("Verify", []byte(suite.parsed.SigningInput), suite.key).Return(true).Once()
}

func (suite *JWTBearerGrantHandlerTestSuite) expectIdentity() {
	suite.mockIdentityFinder.On("FindIdentity", mock.Anything, identity.FindIdentityRequest{
		Issuer:    testIssuer,
		GrantType: constants.GrantTypeJWTBearer,
		Instant:   testInstant,
		Params: map[string]string{
			constants.GrantTypeParam: string(constants.GrantTypeJWTBearer),
			"device":                 "d-1",
		},
	}).Return(suite.serviceAccount, true).Once()
}

func (suite *JWTBearerGrantHandlerTestSuite) TestValidateGrant() {
	assert.Nil(suite.T(), suite.handler.ValidateGrant(suite.grantRequest))

	suite.grantRequest.Assertion = ""
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidRequest, "bad request was provided"),
		suite.handler.ValidateGrant(suite.grantRequest))

	suite.grantRequest.GrantType = constants.GrantTypeAuthorizationCode
	errResp := suite.handler.ValidateGrant(suite.grantRequest)
	require.NotNil(suite.T(), errResp)
	assert.Equal(suite.T(), constants.ErrorUnsupportedGrantType, errResp.Error)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantSuccess() {
	suite.expectVerified()
	suite.expectIdentity()
	token := &model.Token{
		Value:        "access-1",
		RefreshToken: "refresh-1",
		ClientID:     testIssuer,
		IdentityID:   "svc-1",
		Scopes:       []string{"CanDoX", "CanDoY", "CanDoZ"},
		TTLSeconds:   60,
		IssuedAt:     testInstant,
	}
	suite.mockTokenStore.On("IssueToken", mock.Anything, constants.GrantTypeJWTBearer, &model.Client{ID: testIssuer},
		"svc-1", []string{"CanDoX", "CanDoY", "CanDoZ"}, testInstant).Return(token, nil).Once()
	suite.mockIdTokenFactory.On("Create", "auth.example.com", testIssuer, suite.serviceAccount, int64(60),
		testInstant).Return("id-token", true).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), errResp)
	assert.Equal(suite.T(), &model.BearerTokenResponse{
		AccessToken:  "access-1",
		TokenType:    constants.TokenTypeBearer,
		ExpiresIn:    60,
		Scope:        "CanDoX CanDoY CanDoZ",
		RefreshToken: "refresh-1",
		IDToken:      "id-token",
	}, response)
	suite.mockKeyStore.AssertExpectations(suite.T())
	suite.mockSignature.AssertExpectations(suite.T())
	suite.mockIdentityFinder.AssertExpectations(suite.T())
	suite.mockTokenStore.AssertExpectations(suite.T())
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantMalformedAssertion() {
	for _, value := range []string{"a.b", "a.b.c.d", "!!.e30.c2ln", encodeAssertion("{", "{}", "s")} {
		suite.grantRequest.Assertion = value

		response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

		assert.Nil(suite.T(), response, value)
		assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidRequest, "bad request was provided"),
			errResp, value)
	}
	suite.mockKeyStore.AssertNumberOfCalls(suite.T(), "FindKey", 0)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantUnknownKey() {
	suite.mockKeyStore.On("FindKey", mock.Anything, mock.Anything, mock.Anything).Return(nil, false).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "unknown claims"), errResp)
	suite.mockSignatureFactory.AssertNumberOfCalls(suite.T(), "CreateSignature", 0)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantUnknownSignature() {
	suite.mockKeyStore.On("FindKey", mock.Anything, mock.Anything, mock.Anything).Return(suite.key, true).Once()
	suite.mockSignatureFactory.On("CreateSignature", mock.Anything, mock.Anything).Return(nil, false).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidRequest, "Unknown signature was provided."),
		errResp)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantInvalidSignature() {
	suite.mockKeyStore.On("FindKey", mock.Anything, mock.Anything, mock.Anything).Return(suite.key, true).Once()
	suite.mockSignatureFactory.On("CreateSignature", mock.Anything, mock.Anything).
		Return(suite.mockSignature, true).Once()
	suite.mockSignature.On("Verify", mock.Anything, suite.key).Return(false).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid signature was provided."),
		errResp)
	suite.mockIdentityFinder.AssertNumberOfCalls(suite.T(), "FindIdentity", 0)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantUnknownIdentity() {
	suite.expectVerified()
	suite.mockIdentityFinder.On("FindIdentity", mock.Anything, mock.Anything).Return(nil, false).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(), model.NewErrorResponse(constants.ErrorInvalidGrant, "unknown identity"), errResp)
	suite.mockTokenStore.AssertNumberOfCalls(suite.T(), "IssueToken", 0)
}

func (suite *JWTBearerGrantHandlerTestSuite) TestHandleGrantIssuanceFailure() {
	suite.expectVerified()
	suite.expectIdentity()
	suite.mockTokenStore.On("IssueToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything,
		mock.Anything).Return(nil, errors.New("store unavailable")).Once()

	response, errResp := suite.handler.HandleGrant(context.Background(), suite.grantRequest)

	assert.Nil(suite.T(), response)
	assert.Equal(suite.T(),
		model.NewErrorResponse(constants.ErrorInvalidRequest, "tokens issuing is temporary unavailable"), errResp)
}
