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

package granthandlers

import (
	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/idtoken"
	authzstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
)

// Dependencies holds the collaborators shared by the grant handlers.
type Dependencies struct {
	AuthzStore       authzstore.AuthorizationStoreInterface
	TokenStore       tokenstore.TokenStoreInterface
	IdentityFinder   identity.IdentityFinderInterface
	KeyStore         identity.KeyStoreInterface
	SignatureFactory assertion.SignatureFactoryInterface
	IdTokenFactory   idtoken.IdTokenFactoryInterface
	EnforcePKCE      bool
}

// GrantHandlerProviderInterface defines the interface for resolving grant handlers.
type GrantHandlerProviderInterface interface {
	GetGrantHandler(grantType constants.GrantType) (GrantHandlerInterface, error)
}

// GrantHandlerProvider resolves the handler of each supported grant type.
type GrantHandlerProvider struct {
	authorizationCode GrantHandlerInterface
	refreshToken      GrantHandlerInterface
	jwtBearer         GrantHandlerInterface
}

// NewGrantHandlerProvider creates the handlers of all supported grant types.
func NewGrantHandlerProvider(deps Dependencies) GrantHandlerProviderInterface {
	tokenIssuer := newTokenIssuer(deps.TokenStore)
	return &GrantHandlerProvider{
		authorizationCode: newAuthorizationCodeGrantHandler(deps, tokenIssuer),
		refreshToken:      newRefreshTokenGrantHandler(deps),
		jwtBearer:         newJWTBearerGrantHandler(deps, tokenIssuer),
	}
}

// GetGrantHandler returns the handler of the grant type, or constants.UnSupportedGrantTypeError.
func (p *GrantHandlerProvider) GetGrantHandler(grantType constants.GrantType) (GrantHandlerInterface, error) {
	switch grantType {
	case constants.GrantTypeAuthorizationCode:
		return p.authorizationCode, nil
	case constants.GrantTypeRefreshToken:
		return p.refreshToken, nil
	case constants.GrantTypeJWTBearer:
		return p.jwtBearer, nil
	default:
		return nil, constants.UnSupportedGrantTypeError
	}
}
