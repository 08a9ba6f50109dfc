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

package pkce

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"
)

// Verifier and challenge from RFC 7636 appendix B.
const (
	testVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	testChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

type PKCETestSuite struct {
	suite.Suite
}

func TestPKCESuite(t *testing.T) {
	suite.Run(t, new(PKCETestSuite))
}

func (suite *PKCETestSuite) TestValidatePKCE() {
	tests := []struct {
		name                string
		codeChallenge       string
		codeChallengeMethod string
		codeVerifier        string
		expectedError       error
	}{
		{"Valid S256 challenge", testChallenge, CodeChallengeMethodS256, testVerifier, nil},
		{"Valid plain challenge", testVerifier, CodeChallengeMethodPlain, testVerifier, nil},
		{"Default method when empty", testVerifier, "", testVerifier, nil},
		{"Invalid S256 challenge", testVerifier, CodeChallengeMethodS256, testVerifier, ErrPKCEValidationFailed},
		{"Invalid plain challenge", testVerifier, CodeChallengeMethodPlain, testVerifier + "_other",
			ErrPKCEValidationFailed},
		{"Empty code verifier", testChallenge, CodeChallengeMethodS256, "", ErrInvalidCodeVerifier},
		{"Code verifier too short", testChallenge, CodeChallengeMethodS256, "short", ErrInvalidCodeVerifier},
		{"Code verifier too long", testChallenge, CodeChallengeMethodS256, strings.Repeat("a", 129),
			ErrInvalidCodeVerifier},
		{"Unicode characters rejected", testVerifier, CodeChallengeMethodPlain, testVerifier + "中文",
			ErrInvalidCodeVerifier},
		{"Empty code challenge", "", CodeChallengeMethodS256, testVerifier, ErrInvalidCodeChallenge},
		{"Invalid challenge method", testChallenge, "S512", testVerifier, ErrInvalidChallengeMethod},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := ValidatePKCE(tt.codeChallenge, tt.codeChallengeMethod, tt.codeVerifier)
			if tt.expectedError == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}

func (suite *PKCETestSuite) TestValidatePKCEWithGeneratedVerifier() {
	verifier := oauth2.GenerateVerifier()

	assert.NoError(suite.T(), ValidatePKCE(oauth2.S256ChallengeFromVerifier(verifier), CodeChallengeMethodS256,
		verifier))
}

func (suite *PKCETestSuite) TestGenerateCodeChallenge() {
	challenge, err := GenerateCodeChallenge(testVerifier, CodeChallengeMethodS256)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), testChallenge, challenge)

	challenge, err = GenerateCodeChallenge(testVerifier, CodeChallengeMethodPlain)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), testVerifier, challenge)

	_, err = GenerateCodeChallenge(testVerifier, "invalid")
	assert.ErrorIs(suite.T(), err, ErrInvalidChallengeMethod)

	_, err = GenerateCodeChallenge("short", CodeChallengeMethodS256)
	assert.ErrorIs(suite.T(), err, ErrInvalidCodeVerifier)
}

func (suite *PKCETestSuite) TestValidateCodeChallenge() {
	tests := []struct {
		name          string
		challenge     string
		method        string
		expectedError error
	}{
		{"Valid S256", testChallenge, CodeChallengeMethodS256, nil},
		{"Valid plain", testVerifier, CodeChallengeMethodPlain, nil},
		{"Plain by default", testVerifier, "", nil},
		{"S256 wrong length", testChallenge + "A", CodeChallengeMethodS256, ErrInvalidCodeChallenge},
		{"S256 invalid character", strings.Repeat("~", 43), CodeChallengeMethodS256, ErrInvalidCodeChallenge},
		{"Plain too short", "abc", CodeChallengeMethodPlain, ErrInvalidCodeChallenge},
		{"Unknown method", testChallenge, "S1", ErrInvalidChallengeMethod},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			err := ValidateCodeChallenge(tt.challenge, tt.method)
			if tt.expectedError == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expectedError)
			}
		})
	}
}
