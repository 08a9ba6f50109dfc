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

package managers

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	authzstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/pkce"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	healthcheck "github.com/asgardeo/thunder-oauth/internal/system/healthcheck/service"
	"github.com/asgardeo/thunder-oauth/internal/system/jwt"
	"github.com/asgardeo/thunder-oauth/internal/system/metrics"
)

const (
	testClientID     = "web-app"
	testClientSecret = "web-secret"
	testRedirectURI  = "https://client.example.com/callback"
	testVerifier     = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
)

type ServiceManagerTestSuite struct {
	suite.Suite
	jwtService *jwt.JWTService
	mux        *http.ServeMux
}

func TestServiceManagerSuite(t *testing.T) {
	suite.Run(t, new(ServiceManagerTestSuite))
}

func (suite *ServiceManagerTestSuite) SetupTest() {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	suite.jwtService, err = jwt.NewJWTService(key)
	require.NoError(suite.T(), err)

	clients := client.NewInMemoryClientRepository()
	require.NoError(suite.T(), clients.Save(suite.T().Context(), model.Client{
		ID:           testClientID,
		Secret:       testClientSecret,
		RedirectURIs: []string{testRedirectURI},
		Confidential: true,
	}))

	suite.mux = http.NewServeMux()
	manager := NewServiceManager(suite.mux, suite.dependencies(clients))
	require.NoError(suite.T(), manager.RegisterServices())
}

func (suite *ServiceManagerTestSuite) dependencies(clients client.ClientRepositoryInterface) Dependencies {
	return Dependencies{
		Config: &config.Config{
			OAuth: config.OAuthConfig{
				JWT:       config.JWTConfig{Issuer: "https://auth.example.com"},
				Token:     config.TokenConfig{ValidityPeriod: 60},
				Store:     config.StoreConfig{Type: config.StoreTypeMemory},
				PKCE:      config.PKCEConfig{Enforce: true},
				Authorize: config.AuthorizeConfig{IdentityHeader: "X-Authenticated-User"},
			},
		},
		AuthzStore:         authzstore.NewMemoryAuthorizationStore(),
		TokenStore:         tokenstore.NewMemoryTokenStore(60),
		Clients:            clients,
		ServiceAccounts:    identity.NewServiceAccountRegistry(),
		JWTService:         suite.jwtService,
		HealthCheckService: healthcheck.NewHealthCheckService(config.StoreTypeMemory, nil, nil),
		Metrics:            metrics.NewMetrics(),
	}
}

func (suite *ServiceManagerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	suite.mux.ServeHTTP(rr, req)
	return rr
}

func (suite *ServiceManagerTestSuite) postForm(path string, form url.Values, basicAuth bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if basicAuth {
		req.Header.Set("Authorization", "Basic "+
			base64.StdEncoding.EncodeToString([]byte(testClientID+":"+testClientSecret)))
	}
	return suite.serve(req)
}

func (suite *ServiceManagerTestSuite) authorize() string {
	challenge, err := pkce.GenerateCodeChallenge(testVerifier, "S256")
	require.NoError(suite.T(), err)

	query := url.Values{
		constants.ResponseType:        {constants.ResponseTypeCode},
		constants.ClientID:            {testClientID},
		constants.RedirectURI:         {testRedirectURI},
		constants.Scope:               {"openid profile"},
		constants.State:               {"xyz state"},
		constants.CodeChallenge:       {challenge},
		constants.CodeChallengeMethod: {"S256"},
	}
	req := httptest.NewRequest(http.MethodGet, constants.OAuth2AuthorizationEndpoint+"?"+query.Encode(), nil)
	req.Header.Set("X-Authenticated-User", "alice")
	rr := suite.serve(req)

	require.Equal(suite.T(), http.StatusFound, rr.Code)
	location, err := url.Parse(rr.Header().Get("Location"))
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "client.example.com", location.Host)
	assert.Equal(suite.T(), "xyz state", location.Query().Get(constants.State))
	code := location.Query().Get(constants.Code)
	require.NotEmpty(suite.T(), code)
	return code
}

func (suite *ServiceManagerTestSuite) decode(rr *httptest.ResponseRecorder, target interface{}) {
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), target), rr.Body.String())
}

func (suite *ServiceManagerTestSuite) introspect(token string) model.IntrospectionResponse {
	rr := suite.postForm(constants.OAuth2IntrospectionEndpoint, url.Values{constants.Token: {token}}, false)
	require.Equal(suite.T(), http.StatusOK, rr.Code)
	var response model.IntrospectionResponse
	suite.decode(rr, &response)
	return response
}

func (suite *ServiceManagerTestSuite) TestAuthorizationCodeFlow() {
	code := suite.authorize()

	rr := suite.postForm(constants.OAuth2TokenEndpoint, url.Values{
		constants.GrantTypeParam: {string(constants.GrantTypeAuthorizationCode)},
		constants.Code:           {code},
		constants.RedirectURI:    {testRedirectURI},
		constants.CodeVerifier:   {testVerifier},
	}, true)
	require.Equal(suite.T(), http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(suite.T(), "no-store", rr.Header().Get("Cache-Control"))

	var issued model.BearerTokenResponse
	suite.decode(rr, &issued)
	assert.NotEmpty(suite.T(), issued.AccessToken)
	assert.NotEmpty(suite.T(), issued.RefreshToken)
	assert.Equal(suite.T(), constants.TokenTypeBearer, issued.TokenType)
	assert.Equal(suite.T(), "openid profile", issued.Scope)
	require.NotEmpty(suite.T(), issued.IDToken)

	claims, err := suite.jwtService.VerifyJWT(issued.IDToken)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "alice", claims["sub"])
	assert.Equal(suite.T(), "https://auth.example.com", claims["iss"])

	active := suite.introspect(issued.AccessToken)
	assert.True(suite.T(), active.Active)
	assert.Equal(suite.T(), "alice", active.Sub)
	assert.Equal(suite.T(), testClientID, active.ClientID)

	// A code is redeemed once.
	rr = suite.postForm(constants.OAuth2TokenEndpoint, url.Values{
		constants.GrantTypeParam: {string(constants.GrantTypeAuthorizationCode)},
		constants.Code:           {code},
		constants.CodeVerifier:   {testVerifier},
	}, true)
	assert.Equal(suite.T(), http.StatusBadRequest, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), constants.ErrorInvalidGrant)

	rr = suite.postForm(constants.OAuth2TokenEndpoint, url.Values{
		constants.GrantTypeParam: {string(constants.GrantTypeRefreshToken)},
		constants.RefreshToken:   {issued.RefreshToken},
	}, true)
	require.Equal(suite.T(), http.StatusOK, rr.Code, rr.Body.String())
	var refreshed model.BearerTokenResponse
	suite.decode(rr, &refreshed)
	assert.NotEqual(suite.T(), issued.AccessToken, refreshed.AccessToken)
	assert.Equal(suite.T(), issued.RefreshToken, refreshed.RefreshToken)
	assert.False(suite.T(), suite.introspect(issued.AccessToken).Active)
	assert.True(suite.T(), suite.introspect(refreshed.AccessToken).Active)

	rr = suite.postForm(constants.OAuth2RevokeEndpoint, url.Values{
		constants.Token:         {refreshed.RefreshToken},
		constants.TokenTypeHint: {constants.TokenTypeHintRefreshToken},
	}, true)
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.False(suite.T(), suite.introspect(refreshed.AccessToken).Active)

	metricsRR := suite.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(suite.T(), http.StatusOK, metricsRR.Code)
	body, err := io.ReadAll(metricsRR.Body)
	require.NoError(suite.T(), err)
	assert.Contains(suite.T(), string(body), "oauth2_token_revocations_total 1")
}

func (suite *ServiceManagerTestSuite) TestAuthorizeWithoutResourceOwner() {
	query := url.Values{
		constants.ResponseType: {constants.ResponseTypeCode},
		constants.ClientID:     {testClientID},
	}
	rr := suite.serve(httptest.NewRequest(http.MethodGet,
		constants.OAuth2AuthorizationEndpoint+"?"+query.Encode(), nil))

	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	assert.Contains(suite.T(), rr.Body.String(), constants.ErrorAccessDenied)
}

func (suite *ServiceManagerTestSuite) TestTokenRequestWithWrongSecret() {
	req := httptest.NewRequest(http.MethodPost, constants.OAuth2TokenEndpoint, strings.NewReader(url.Values{
		constants.GrantTypeParam: {string(constants.GrantTypeRefreshToken)},
		constants.RefreshToken:   {"refresh-1"},
	}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(testClientID, "wrong")
	rr := suite.serve(req)

	assert.Equal(suite.T(), http.StatusUnauthorized, rr.Code)
	assert.Contains(suite.T(), rr.Header().Get("WWW-Authenticate"), "Basic")
}

func (suite *ServiceManagerTestSuite) TestJWKSAndHealth() {
	rr := suite.serve(httptest.NewRequest(http.MethodGet, constants.OAuth2JWKSEndpoint, nil))
	require.Equal(suite.T(), http.StatusOK, rr.Code)
	var set struct {
		Keys []map[string]interface{} `json:"keys"`
	}
	suite.decode(rr, &set)
	require.Len(suite.T(), set.Keys, 1)
	assert.Equal(suite.T(), suite.jwtService.GetKeyID(), set.Keys[0]["kid"])

	rr = suite.serve(httptest.NewRequest(http.MethodGet, "/health/liveness", nil))
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	rr = suite.serve(httptest.NewRequest(http.MethodGet, "/health/readiness", nil))
	assert.Equal(suite.T(), http.StatusOK, rr.Code)
}

func (suite *ServiceManagerTestSuite) TestRegisterServicesIncompleteDependencies() {
	deps := suite.dependencies(client.NewInMemoryClientRepository())
	deps.TokenStore = nil

	err := NewServiceManager(http.NewServeMux(), deps).RegisterServices()
	assert.EqualError(suite.T(), err, "service manager dependencies are incomplete")
}
