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

package assertion

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AssertionTestSuite struct {
	suite.Suite
	rsaKey   *rsa.PrivateKey
	ecKey    *ecdsa.PrivateKey
	rsaBlock *pem.Block
	ecBlock  *pem.Block
	factory  *SignatureFactory
}

func TestAssertionSuite(t *testing.T) {
	suite.Run(t, new(AssertionTestSuite))
}

func (suite *AssertionTestSuite) SetupSuite() {
	var err error
	suite.rsaKey, err = rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	suite.ecKey, err = ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(suite.T(), err)

	suite.rsaBlock = publicKeyBlock(suite.T(), &suite.rsaKey.PublicKey)
	suite.ecBlock = publicKeyBlock(suite.T(), &suite.ecKey.PublicKey)
	suite.factory = NewSignatureFactory()
}

func publicKeyBlock(t *testing.T, key interface{}) *pem.Block {
	der, err := x509.MarshalPKIXPublicKey(key)
	require.NoError(t, err)
	return &pem.Block{Type: "PUBLIC KEY", Bytes: der}
}

func (suite *AssertionTestSuite) sign(method jwt.SigningMethod, key interface{}) string {
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"iss":   "svc@example.com",
		"scope": "CanDoX CanDoY",
		"aud":   "https://localhost/oauth2/token",
		"exp":   time.Unix(1700003600, 0).Unix(),
		"iat":   time.Unix(1700000000, 0).Unix(),
		"sub":   "svc@example.com",
		"prn":   "user@example.com",
	})
	token.Header["kid"] = "key-1"
	signed, err := token.SignedString(key)
	require.NoError(suite.T(), err)
	return signed
}

func (suite *AssertionTestSuite) TestParse() {
	signed := suite.sign(jwt.SigningMethodRS256, suite.rsaKey)

	parsed, err := Parse(signed)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), Header{Alg: "RS256", Typ: "JWT", Kid: "key-1"}, parsed.Header)
	assert.Equal(suite.T(), "svc@example.com", parsed.Claims.Iss)
	assert.Equal(suite.T(), "CanDoX CanDoY", parsed.Claims.Scope)
	assert.Equal(suite.T(), jwt.ClaimStrings{"https://localhost/oauth2/token"}, parsed.Claims.Aud)
	assert.Equal(suite.T(), int64(1700003600), parsed.Claims.Exp.Unix())
	assert.Equal(suite.T(), int64(1700000000), parsed.Claims.Iat.Unix())
	assert.Equal(suite.T(), "user@example.com", parsed.Claims.Prn)
	assert.Equal(suite.T(), signed[:strings.LastIndex(signed, ".")], parsed.SigningInput)
	assert.NotEmpty(suite.T(), parsed.Signature)
}

func (suite *AssertionTestSuite) TestParseAcceptsPaddedSegments() {
	header := base64.URLEncoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`))
	claims := base64.URLEncoding.EncodeToString([]byte(`{"iss":"a"}`))
	signature := base64.URLEncoding.EncodeToString([]byte("sig"))

	parsed, err := Parse(header + "." + claims + "." + signature)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "a", parsed.Claims.Iss)
	assert.Equal(suite.T(), []byte("sig"), parsed.Signature)
	assert.Equal(suite.T(), header+"."+claims, parsed.SigningInput)
}

func (suite *AssertionTestSuite) TestParseMalformed() {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"RS256"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"a"}`))

	testCases := []struct {
		name      string
		assertion string
	}{
		{"TwoParts", "a.b"},
		{"FourParts", "a.b.c.d"},
		{"Empty", ""},
		{"InvalidBase64Header", "!!." + claims + ".c2ln"},
		{"InvalidBase64Signature", header + "." + claims + ".!!"},
		{"HeaderNotJSON", base64.RawURLEncoding.EncodeToString([]byte("nope")) + "." + claims + ".c2ln"},
		{"ClaimsNotJSON", header + "." + base64.RawURLEncoding.EncodeToString([]byte("[1")) + ".c2ln"},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.assertion)
			assert.ErrorIs(t, err, ErrMalformedAssertion)
			assert.Nil(t, parsed)
		})
	}
}

func (suite *AssertionTestSuite) TestVerifySupportedAlgorithms() {
	testCases := []struct {
		method jwt.SigningMethod
		key    interface{}
		block  *pem.Block
	}{
		{jwt.SigningMethodRS256, suite.rsaKey, suite.rsaBlock},
		{jwt.SigningMethodRS512, suite.rsaKey, suite.rsaBlock},
		{jwt.SigningMethodPS256, suite.rsaKey, suite.rsaBlock},
		{jwt.SigningMethodES256, suite.ecKey, suite.ecBlock},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.method.Alg(), func(t *testing.T) {
			parsed, err := Parse(suite.sign(tc.method, tc.key))
			require.NoError(t, err)

			signature, ok := suite.factory.CreateSignature(parsed.Signature, parsed.Header)
			require.True(t, ok)
			assert.True(t, signature.Verify([]byte(parsed.SigningInput), tc.block))
		})
	}
}

func (suite *AssertionTestSuite) TestVerifyRejectsTamperedContent() {
	parsed, err := Parse(suite.sign(jwt.SigningMethodRS256, suite.rsaKey))
	require.NoError(suite.T(), err)

	signature, ok := suite.factory.CreateSignature(parsed.Signature, parsed.Header)
	require.True(suite.T(), ok)

	assert.False(suite.T(), signature.Verify([]byte(parsed.SigningInput+"x"), suite.rsaBlock))
}

func (suite *AssertionTestSuite) TestVerifyRejectsOtherKey() {
	other, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(suite.T(), err)
	parsed, err := Parse(suite.sign(jwt.SigningMethodRS256, suite.rsaKey))
	require.NoError(suite.T(), err)

	signature, _ := suite.factory.CreateSignature(parsed.Signature, parsed.Header)

	assert.False(suite.T(), signature.Verify([]byte(parsed.SigningInput), publicKeyBlock(suite.T(), &other.PublicKey)))
	assert.False(suite.T(), signature.Verify([]byte(parsed.SigningInput), suite.ecBlock))
}

func (suite *AssertionTestSuite) TestVerifyRejectsUnparsableKey() {
	parsed, err := Parse(suite.sign(jwt.SigningMethodRS256, suite.rsaKey))
	require.NoError(suite.T(), err)
	signature, _ := suite.factory.CreateSignature(parsed.Signature, parsed.Header)

	assert.False(suite.T(), signature.Verify([]byte(parsed.SigningInput), nil))
	assert.False(suite.T(), signature.Verify([]byte(parsed.SigningInput),
		&pem.Block{Type: "PUBLIC KEY", Bytes: []byte("garbage")}))
}

func (suite *AssertionTestSuite) TestCreateSignatureUnknownAlgorithm() {
	for _, alg := range []string{"HS256", "none", "", "RS1"} {
		signature, ok := suite.factory.CreateSignature([]byte("sig"), Header{Alg: alg})
		assert.False(suite.T(), ok, alg)
		assert.Nil(suite.T(), signature, alg)
	}
}
