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

// Package assertion parses JWT bearer assertions and verifies their signatures.
package assertion

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedAssertion is returned when an assertion is not a decodable three part JWT.
var ErrMalformedAssertion = errors.New("malformed assertion")

// Header is the JOSE header of an assertion.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
	Kid string `json:"kid,omitempty"`
}

// Claims is the claim set of an assertion.
type Claims struct {
	Iss   string           `json:"iss"`
	Scope string           `json:"scope,omitempty"`
	Aud   jwt.ClaimStrings `json:"aud,omitempty"`
	Exp   *jwt.NumericDate `json:"exp,omitempty"`
	Iat   *jwt.NumericDate `json:"iat,omitempty"`
	Sub   string           `json:"sub,omitempty"`
	Prn   string           `json:"prn,omitempty"`
}

// Assertion is a decoded, not yet verified, JWT bearer assertion.
type Assertion struct {
	Header       Header
	Claims       Claims
	Signature    []byte
	SigningInput string
}

// Parse decodes the assertion without verifying it.
func Parse(assertion string) (*Assertion, error) {
	parts := strings.Split(assertion, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedAssertion
	}

	headerBytes, err := decodeSegment(parts[0])
	if err != nil {
		return nil, ErrMalformedAssertion
	}
	claimBytes, err := decodeSegment(parts[1])
	if err != nil {
		return nil, ErrMalformedAssertion
	}
	signature, err := decodeSegment(parts[2])
	if err != nil {
		return nil, ErrMalformedAssertion
	}

	parsed := &Assertion{
		Signature:    signature,
		SigningInput: parts[0] + "." + parts[1],
	}
	if err := json.Unmarshal(headerBytes, &parsed.Header); err != nil {
		return nil, ErrMalformedAssertion
	}
	if err := json.Unmarshal(claimBytes, &parsed.Claims); err != nil {
		return nil, ErrMalformedAssertion
	}

	return parsed, nil
}

// decodeSegment decodes a base64url segment with or without padding.
func decodeSegment(segment string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(segment, "="))
}
