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
	"context"
	"errors"
	"slices"

	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/idtoken"
	authzconstants "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	authzmodel "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	authzstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/pkce"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// authorizationCodeGrantHandler handles the authorization code grant type.
type authorizationCodeGrantHandler struct {
	authzStore     authzstore.AuthorizationStoreInterface
	tokenIssuer    TokenIssuerInterface
	identityFinder identity.IdentityFinderInterface
	idTokenFactory idtoken.IdTokenFactoryInterface
	enforcePKCE    bool
}

// newAuthorizationCodeGrantHandler creates a new instance of authorizationCodeGrantHandler.
func newAuthorizationCodeGrantHandler(deps Dependencies, tokenIssuer TokenIssuerInterface) GrantHandlerInterface {
	return &authorizationCodeGrantHandler{
		authzStore:     deps.AuthzStore,
		tokenIssuer:    tokenIssuer,
		identityFinder: deps.IdentityFinder,
		idTokenFactory: deps.IdTokenFactory,
		enforcePKCE:    deps.EnforcePKCE,
	}
}

// ValidateGrant validates the authorization code grant request.
func (h *authorizationCodeGrantHandler) ValidateGrant(grantRequest *model.GrantRequest) *model.ErrorResponse {
	if grantRequest.GrantType != constants.GrantTypeAuthorizationCode {
		return model.NewErrorResponse(constants.ErrorUnsupportedGrantType, "Unsupported grant type")
	}
	if grantRequest.Client == nil {
		return model.NewErrorResponse(constants.ErrorInvalidClient, "Client authentication is required")
	}
	if grantRequest.Code == "" {
		return model.NewErrorResponse(constants.ErrorInvalidRequest, "Authorization code is required")
	}
	return nil
}

// HandleGrant redeems the authorization code and issues a token for the identity that authorized it.
func (h *authorizationCodeGrantHandler) HandleGrant(ctx context.Context, grantRequest *model.GrantRequest) (
	*model.BearerTokenResponse, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationCodeGrantHandler"))

	authorization, err := h.authzStore.FindAuthorization(ctx, grantRequest.Client, grantRequest.Code)
	if err != nil {
		if !errors.Is(err, authzconstants.ErrAuthorizationNotFound) {
			logger.Error("Failed to redeem authorization code", log.String("clientID", grantRequest.Client.ID),
				log.Error(err))
		}
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid authorization code")
	}

	if grantRequest.RedirectURI != "" && !slices.Contains(authorization.RedirectURIs, grantRequest.RedirectURI) {
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid redirect URI")
	}

	if errResp := h.verifyCodeVerifier(authorization, grantRequest.CodeVerifier); errResp != nil {
		return nil, errResp
	}

	identityValue, ok := h.identityFinder.FindIdentity(ctx, identity.FindIdentityRequest{
		Issuer:    authorization.IdentityID,
		GrantType: constants.GrantTypeAuthorizationCode,
		Instant:   grantRequest.Instant,
		Params:    grantRequest.Params,
	})
	if !ok {
		identityValue = &model.Identity{ID: authorization.IdentityID}
	}

	response := h.tokenIssuer.IssueToken(ctx, &model.TokenRequest{
		GrantType: constants.GrantTypeAuthorizationCode,
		Client:    grantRequest.Client,
		Identity:  identityValue,
		Scopes:    authorization.Scopes,
		Instant:   grantRequest.Instant,
		Params:    grantRequest.Params,
	})
	if !response.Successful {
		return nil, model.NewErrorResponse(constants.ErrorInvalidRequest, "Token cannot be issued.")
	}

	idToken := createIDToken(h.idTokenFactory, grantRequest.Host, grantRequest.Client.ID, identityValue,
		response.AccessToken, grantRequest.Instant)
	return newBearerTokenResponse(response.AccessToken, idToken, grantRequest.Instant), nil
}

// verifyCodeVerifier checks the code verifier when PKCE is enforced and the code carries a challenge.
func (h *authorizationCodeGrantHandler) verifyCodeVerifier(authorization *authzmodel.Authorization,
	codeVerifier string) *model.ErrorResponse {
	if !h.enforcePKCE || authorization.CodeChallenge == "" {
		return nil
	}
	if codeVerifier == "" {
		return model.NewErrorResponse(constants.ErrorInvalidGrant, "Code verifier is required")
	}
	if err := pkce.ValidatePKCE(authorization.CodeChallenge, authorization.CodeChallengeMethod,
		codeVerifier); err != nil {
		return model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid code verifier")
	}
	return nil
}
