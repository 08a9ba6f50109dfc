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
	"encoding/pem"

	"github.com/golang-jwt/jwt/v5"

	sysjwt "github.com/asgardeo/thunder-oauth/internal/system/jwt"
)

// SignatureInterface verifies one decoded signature.
type SignatureInterface interface {
	// Verify reports whether the signature is valid for content under the public key or certificate in key.
	Verify(content []byte, key *pem.Block) bool
}

// SignatureFactoryInterface builds signature verifiers for the algorithm declared in a header.
type SignatureFactoryInterface interface {
	CreateSignature(signature []byte, header Header) (SignatureInterface, bool)
}

// signingMethods lists the asymmetric algorithms accepted for assertions.
var signingMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodRS256.Alg(): jwt.SigningMethodRS256,
	jwt.SigningMethodRS384.Alg(): jwt.SigningMethodRS384,
	jwt.SigningMethodRS512.Alg(): jwt.SigningMethodRS512,
	jwt.SigningMethodPS256.Alg(): jwt.SigningMethodPS256,
	jwt.SigningMethodPS384.Alg(): jwt.SigningMethodPS384,
	jwt.SigningMethodPS512.Alg(): jwt.SigningMethodPS512,
	jwt.SigningMethodES256.Alg(): jwt.SigningMethodES256,
	jwt.SigningMethodES384.Alg(): jwt.SigningMethodES384,
	jwt.SigningMethodES512.Alg(): jwt.SigningMethodES512,
}

// SignatureFactory creates verifiers backed by the golang-jwt signing methods.
type SignatureFactory struct{}

// NewSignatureFactory creates a new SignatureFactory.
func NewSignatureFactory() *SignatureFactory {
	return &SignatureFactory{}
}

// CreateSignature returns a verifier for the header algorithm, or false when the algorithm is not supported.
func (f *SignatureFactory) CreateSignature(signature []byte, header Header) (SignatureInterface, bool) {
	method, ok := signingMethods[header.Alg]
	if !ok {
		return nil, false
	}
	return &methodSignature{method: method, signature: signature}, true
}

type methodSignature struct {
	method    jwt.SigningMethod
	signature []byte
}

func (s *methodSignature) Verify(content []byte, key *pem.Block) bool {
	publicKey, err := sysjwt.ParsePublicKey(key)
	if err != nil {
		return false
	}
	return s.method.Verify(string(content), s.signature, publicKey) == nil
}
