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

package handler

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks"
	"github.com/asgardeo/thunder-oauth/internal/system/jwt"
)

type JWKSHandlerTestSuite struct {
	suite.Suite
}

func TestJWKSHandlerSuite(t *testing.T) {
	suite.Run(t, new(JWKSHandlerTestSuite))
}

func (suite *JWKSHandlerTestSuite) TestHandleJWKSRequest() {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	jwtService, err := jwt.NewJWTService(privateKey)
	require.NoError(suite.T(), err)

	rr := httptest.NewRecorder()
	NewJWKSHandler(jwks.NewJWKSService(jwtService)).HandleJWKSRequest(rr,
		httptest.NewRequest(http.MethodGet, "/oauth2/jwks", nil))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.Equal(suite.T(), "application/json", rr.Header().Get("Content-Type"))

	var body struct {
		Keys []map[string]interface{} `json:"keys"`
	}
	require.NoError(suite.T(), json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(suite.T(), body.Keys, 1)
	assert.Equal(suite.T(), "RSA", body.Keys[0]["kty"])
	assert.Equal(suite.T(), "RS256", body.Keys[0]["alg"])
	assert.Equal(suite.T(), "sig", body.Keys[0]["use"])
	assert.Equal(suite.T(), jwtService.GetKeyID(), body.Keys[0]["kid"])
	assert.NotContains(suite.T(), body.Keys[0], "d")
}

func (suite *JWKSHandlerTestSuite) TestHandleJWKSRequestWithoutKey() {
	rr := httptest.NewRecorder()
	NewJWKSHandler(jwks.NewJWKSService(&jwt.JWTService{})).HandleJWKSRequest(rr,
		httptest.NewRequest(http.MethodGet, "/oauth2/jwks", nil))

	assert.Equal(suite.T(), http.StatusOK, rr.Code)
	assert.JSONEq(suite.T(), `{"keys":[]}`, rr.Body.String())
}
