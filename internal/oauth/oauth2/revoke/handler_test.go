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

package revoke

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	tokenconstants "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
	"github.com/asgardeo/thunder-oauth/tests/mocks/oauth/tokenstoremock"
)

type TokenRevocationHandlerTestSuite struct {
	suite.Suite
	clients    *client.InMemoryClientRepository
	tokenStore *tokenstore.MemoryTokenStore
	metrics    *metrics.Metrics
	handler    *TokenRevocationHandler
	token      *model.Token
}

func TestTokenRevocationHandlerSuite(t *testing.T) {
	suite.Run(t, new(TokenRevocationHandlerTestSuite))
}

func (suite *TokenRevocationHandlerTestSuite) SetupTest() {
	suite.clients = client.NewInMemoryClientRepository()
	require.NoError(suite.T(), suite.clients.Save(context.Background(),
		model.Client{ID: "web-app", Secret: "web-secret", Confidential: true}))

	suite.tokenStore = tokenstore.NewMemoryTokenStore(60)
	suite.metrics = metrics.NewMetrics()
	suite.handler = NewTokenRevocationHandler(suite.clients, NewTokenRevocationService(suite.tokenStore),
		suite.metrics)
	suite.handler.now = func() time.Time { return testInstant }

	token, err := suite.tokenStore.IssueToken(context.Background(), constants.GrantTypeAuthorizationCode,
		&model.Client{ID: "web-app"}, "user-1", nil, testInstant)
	require.NoError(suite.T(), err)
	suite.token = token
}

func revokeRequest(form url.Values, basicAuth bool) *http.Request {
	req := httptest.NewRequest(http.MethodPost, constants.OAuth2RevokeEndpoint, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if basicAuth {
		req.SetBasicAuth("web-app", "web-secret")
	}
	return req
}

func (suite *TokenRevocationHandlerTestSuite) scrapeMetrics() string {
	rr := httptest.NewRecorder()
	suite.metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	return rr.Body.String()
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeSuccess() {
	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, revokeRequest(url.Values{constants.Token: {suite.token.Value}}, true))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Empty(suite.T(), rr.Body.String())
	_, err := suite.tokenStore.FindTokenAvailableAt(context.Background(), suite.token.Value, testInstant)
	assert.ErrorIs(suite.T(), err, tokenconstants.ErrTokenNotFound)
	assert.Contains(suite.T(), suite.scrapeMetrics(), "oauth2_token_revocations_total 1")
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeWithBodyCredentials() {
	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, revokeRequest(url.Values{
		constants.Token:         {suite.token.RefreshToken},
		constants.TokenTypeHint: {constants.TokenTypeHintRefreshToken},
		constants.ClientID:      {"web-app"},
		constants.ClientSecret:  {"web-secret"},
	}, false))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	_, err := suite.tokenStore.FindRefreshToken(context.Background(), suite.token.RefreshToken)
	assert.ErrorIs(suite.T(), err, tokenconstants.ErrTokenNotFound)
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeUnknownToken() {
	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, revokeRequest(url.Values{constants.Token: {"unknown"}}, true))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeInvalidClient() {
	req := revokeRequest(url.Values{constants.Token: {suite.token.Value}}, false)
	req.SetBasicAuth("web-app", "wrong-secret")

	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, req)

	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	assert.Equal(suite.T(), "Basic", rr.Header().Get("WWW-Authenticate"))
	assert.Contains(suite.T(), rr.Body.String(), constants.ErrorInvalidClient)
	_, err := suite.tokenStore.FindTokenAvailableAt(context.Background(), suite.token.Value, testInstant)
	assert.NoError(suite.T(), err)
	assert.NotContains(suite.T(), suite.scrapeMetrics(), "oauth2_token_revocations_total 1")
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeMissingToken() {
	rr := httptest.NewRecorder()
	suite.handler.HandleRevoke(rr, revokeRequest(url.Values{}, true))

	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), constants.ErrorInvalidRequest)
}

func (suite *TokenRevocationHandlerTestSuite) TestHandleRevokeServerError() {
	mockStore := &tokenstoremock.TokenStoreInterfaceMock{}
	mockStore.On("FindTokenAvailableAt", mock.Anything, "token-1", mock.Anything).
		Return(nil, errors.New("connection refused")).Once()
	handler := NewTokenRevocationHandler(suite.clients, NewTokenRevocationService(mockStore), suite.metrics)
	handler.now = func() time.Time { return testInstant }

	rr := httptest.NewRecorder()
	handler.HandleRevoke(rr, revokeRequest(url.Values{constants.Token: {"token-1"}}, true))

	assert.Equal(suite.T(), http.StatusInternalServerError, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), constants.ErrorServerError)
}
