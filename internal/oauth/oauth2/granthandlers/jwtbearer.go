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
	"slices"

	"github.com/asgardeo/thunder-oauth/internal/oauth/assertion"
	"github.com/asgardeo/thunder-oauth/internal/oauth/identity"
	"github.com/asgardeo/thunder-oauth/internal/oauth/idtoken"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// jwtBearerGrantHandler handles the JWT bearer grant type of service accounts.
type jwtBearerGrantHandler struct {
	keyStore         identity.KeyStoreInterface
	signatureFactory assertion.SignatureFactoryInterface
	identityFinder   identity.IdentityFinderInterface
	tokenIssuer      TokenIssuerInterface
	idTokenFactory   idtoken.IdTokenFactoryInterface
}

// newJWTBearerGrantHandler creates a new instance of jwtBearerGrantHandler.
func newJWTBearerGrantHandler(deps Dependencies, tokenIssuer TokenIssuerInterface) GrantHandlerInterface {
	return &jwtBearerGrantHandler{
		keyStore:         deps.KeyStore,
		signatureFactory: deps.SignatureFactory,
		identityFinder:   deps.IdentityFinder,
		tokenIssuer:      tokenIssuer,
		idTokenFactory:   deps.IdTokenFactory,
	}
}

// ValidateGrant validates the JWT bearer grant request.
func (h *jwtBearerGrantHandler) ValidateGrant(grantRequest *model.GrantRequest) *model.ErrorResponse {
	if grantRequest.GrantType != constants.GrantTypeJWTBearer {
		return model.NewErrorResponse(constants.ErrorUnsupportedGrantType, "Unsupported grant type")
	}
	if grantRequest.Assertion == "" {
		return model.NewErrorResponse(constants.ErrorInvalidRequest, "bad request was provided")
	}
	return nil
}

// HandleGrant verifies the signed assertion of a service account and issues a token for its issuer.
func (h *jwtBearerGrantHandler) HandleGrant(ctx context.Context, grantRequest *model.GrantRequest) (
	*model.BearerTokenResponse, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "JWTBearerGrantHandler"))

	parsed, err := assertion.Parse(grantRequest.Assertion)
	if err != nil {
		return nil, model.NewErrorResponse(constants.ErrorInvalidRequest, "bad request was provided")
	}

	key, ok := h.keyStore.FindKey(ctx, parsed.Header, parsed.Claims)
	if !ok {
		logger.Debug("No key registered for the assertion", log.String("issuer", parsed.Claims.Iss))
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "unknown claims")
	}

	signature, ok := h.signatureFactory.CreateSignature(parsed.Signature, parsed.Header)
	if !ok {
		return nil, model.NewErrorResponse(constants.ErrorInvalidRequest, "Unknown signature was provided.")
	}
	if !signature.Verify([]byte(parsed.SigningInput), key) {
		logger.Debug("Assertion signature verification failed", log.String("issuer", parsed.Claims.Iss))
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid signature was provided.")
	}

	params := withoutParams(grantRequest.Params, constants.Assertion, constants.Scope)
	identityValue, ok := h.identityFinder.FindIdentity(ctx, identity.FindIdentityRequest{
		Issuer:    parsed.Claims.Iss,
		GrantType: constants.GrantTypeJWTBearer,
		Instant:   grantRequest.Instant,
		Params:    params,
	})
	if !ok {
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "unknown identity")
	}

	// Ephemeral client of the issuer, never persisted.
	client := &model.Client{ID: parsed.Claims.Iss}

	response := h.tokenIssuer.IssueToken(ctx, &model.TokenRequest{
		GrantType: constants.GrantTypeJWTBearer,
		Client:    client,
		Identity:  identityValue,
		Scopes:    utils.ParseScopes(grantRequest.Scope),
		Instant:   grantRequest.Instant,
		Params:    params,
	})
	if !response.Successful {
		return nil, model.NewErrorResponse(constants.ErrorInvalidRequest, "tokens issuing is temporary unavailable")
	}

	idToken := createIDToken(h.idTokenFactory, grantRequest.Host, client.ID, identityValue, response.AccessToken,
		grantRequest.Instant)
	return newBearerTokenResponse(response.AccessToken, idToken, grantRequest.Instant), nil
}

// withoutParams returns a copy of params without the named entries.
func withoutParams(params map[string]string, names ...string) map[string]string {
	filtered := make(map[string]string, len(params))
	for key, value := range params {
		if !slices.Contains(names, key) {
			filtered[key] = value
		}
	}
	return filtered
}
