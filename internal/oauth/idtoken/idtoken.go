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

// Package idtoken mints OpenID Connect identity tokens.
package idtoken

import (
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	sysjwt "github.com/asgardeo/thunder-oauth/internal/system/jwt"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

const loggerComponentName = "IdTokenFactory"

// IdTokenFactoryInterface creates identity tokens for issued access tokens.
type IdTokenFactoryInterface interface {
	// Create returns a signed identity token, or false when none can be minted.
	Create(host, clientID string, identity *model.Identity, ttlSeconds int64, instant time.Time) (string, bool)
}

// IdTokenFactory signs identity tokens with the server key.
type IdTokenFactory struct {
	jwtService sysjwt.JWTServiceInterface
	issuer     string
}

// NewIdTokenFactory creates a factory signing with jwtService.
// An empty issuer is derived from the request host.
func NewIdTokenFactory(jwtService sysjwt.JWTServiceInterface, issuer string) *IdTokenFactory {
	return &IdTokenFactory{
		jwtService: jwtService,
		issuer:     issuer,
	}
}

// Create returns a signed identity token, or false when none can be minted.
func (f *IdTokenFactory) Create(host, clientID string, identity *model.Identity, ttlSeconds int64,
	instant time.Time) (string, bool) {
	if f.jwtService == nil || f.jwtService.GetPublicKey() == nil || identity == nil {
		return "", false
	}

	issuer := f.issuer
	if issuer == "" {
		if host == "" {
			return "", false
		}
		issuer = "https://" + host
	}

	claims := make(map[string]interface{}, len(identity.Claims)+2)
	for key, value := range identity.Claims {
		claims[key] = value
	}
	if identity.Name != "" {
		claims["name"] = identity.Name
	}
	if identity.Email != "" {
		claims["email"] = identity.Email
	}

	token, err := f.jwtService.GenerateJWT(identity.ID, clientID, issuer, instant, ttlSeconds, claims)
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to sign identity token", log.Error(err))
		return "", false
	}
	return token, true
}
