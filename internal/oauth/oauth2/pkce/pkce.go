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

// Package pkce validates Proof Key for Code Exchange parameters of the authorization code grant.
package pkce

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/oauth2"
)

// Code challenge methods.
const (
	CodeChallengeMethodPlain = "plain"
	CodeChallengeMethodS256  = "S256"
)

const (
	minLength          = 43
	maxLength          = 128
	s256ChallengeBytes = 43
)

// PKCE validation errors.
var (
	ErrInvalidCodeVerifier    = errors.New("invalid code verifier")
	ErrInvalidCodeChallenge   = errors.New("invalid code challenge")
	ErrInvalidChallengeMethod = errors.New("invalid code challenge method")
	ErrPKCEValidationFailed   = errors.New("PKCE validation failed")
)

// ValidatePKCE checks the code verifier against the challenge recorded with the authorization.
// An empty method means plain.
func ValidatePKCE(codeChallenge, codeChallengeMethod, codeVerifier string) error {
	if !isUnreserved(codeVerifier, minLength, maxLength) {
		return ErrInvalidCodeVerifier
	}
	if codeChallenge == "" {
		return ErrInvalidCodeChallenge
	}

	expected, err := GenerateCodeChallenge(codeVerifier, codeChallengeMethod)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(codeChallenge)) != 1 {
		return ErrPKCEValidationFailed
	}
	return nil
}

// GenerateCodeChallenge derives the code challenge of a verifier.
func GenerateCodeChallenge(codeVerifier, method string) (string, error) {
	if !isUnreserved(codeVerifier, minLength, maxLength) {
		return "", ErrInvalidCodeVerifier
	}

	switch normalizeMethod(method) {
	case CodeChallengeMethodPlain:
		return codeVerifier, nil
	case CodeChallengeMethodS256:
		return oauth2.S256ChallengeFromVerifier(codeVerifier), nil
	default:
		return "", ErrInvalidChallengeMethod
	}
}

// ValidateCodeChallenge checks the format of a challenge received at the authorization endpoint.
func ValidateCodeChallenge(codeChallenge, codeChallengeMethod string) error {
	switch normalizeMethod(codeChallengeMethod) {
	case CodeChallengeMethodPlain:
		if !isUnreserved(codeChallenge, minLength, maxLength) {
			return ErrInvalidCodeChallenge
		}
	case CodeChallengeMethodS256:
		if len(codeChallenge) != s256ChallengeBytes || !isBase64URL(codeChallenge) {
			return ErrInvalidCodeChallenge
		}
	default:
		return ErrInvalidChallengeMethod
	}
	return nil
}

func normalizeMethod(method string) string {
	if method == "" {
		return CodeChallengeMethodPlain
	}
	return method
}

// isUnreserved reports whether value is within the length bounds and uses only RFC 3986 unreserved characters.
func isUnreserved(value string, minLen, maxLen int) bool {
	if len(value) < minLen || len(value) > maxLen {
		return false
	}
	for _, c := range value {
		if !isBase64URLRune(c) && c != '.' && c != '~' {
			return false
		}
	}
	return true
}

func isBase64URL(value string) bool {
	for _, c := range value {
		if !isBase64URLRune(c) {
			return false
		}
	}
	return true
}

func isBase64URLRune(c rune) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
