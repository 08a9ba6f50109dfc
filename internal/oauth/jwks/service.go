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

// Package jwks provides the implementation for retrieving JSON Web Key Sets (JWKS).
package jwks

import (
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"

	"github.com/asgardeo/thunder-oauth/internal/oauth/jwks/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/jwt"
)

// JWKSServiceInterface defines the interface for JWKS service.
type JWKSServiceInterface interface {
	GetJWKS() (jwk.Set, error)
}

// JWKSService implements the JWKSServiceInterface.
type JWKSService struct {
	jwtService jwt.JWTServiceInterface
}

// NewJWKSService creates a new instance of JWKSService publishing the key of the JWT service.
func NewJWKSService(jwtService jwt.JWTServiceInterface) JWKSServiceInterface {
	return &JWKSService{
		jwtService: jwtService,
	}
}

// GetJWKS returns the key set holding the public part of the id_token signing key.
// The set is empty when no signing key is loaded.
func (s *JWKSService) GetJWKS() (jwk.Set, error) {
	set := jwk.NewSet()
	publicKey := s.jwtService.GetPublicKey()
	if publicKey == nil {
		return set, nil
	}

	key, err := jwk.FromRaw(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to build JWK: %w", err)
	}
	if err := key.Set(jwk.KeyIDKey, s.jwtService.GetKeyID()); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.AlgorithmKey, jwa.RS256); err != nil {
		return nil, err
	}
	if err := key.Set(jwk.KeyUsageKey, constants.KeyUseSig); err != nil {
		return nil, err
	}

	if err := set.AddKey(key); err != nil {
		return nil, err
	}
	return set, nil
}
