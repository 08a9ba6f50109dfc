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

package authz

import (
	"context"

	"github.com/asgardeo/thunder-oauth/internal/oauth/client"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// AuthorizationValidatorInterface defines the interface for validating OAuth2 authorization requests.
type AuthorizationValidatorInterface interface {
	// ValidateAuthorizationRequest resolves the client and the redirect URI the response is sent to.
	// Errors are returned to the user agent and never redirected.
	ValidateAuthorizationRequest(ctx context.Context, clientID, redirectURI string) (*model.Client, string,
		*model.ErrorResponse)
}

// AuthorizationValidator implements the AuthorizationValidatorInterface for validating OAuth2 authorization requests.
type AuthorizationValidator struct {
	clientFinder client.ClientFinderInterface
}

// NewAuthorizationValidator creates a new instance of AuthorizationValidator.
func NewAuthorizationValidator(clientFinder client.ClientFinderInterface) AuthorizationValidatorInterface {
	return &AuthorizationValidator{clientFinder: clientFinder}
}

// ValidateAuthorizationRequest validates the client and redirect URI of the authorization request.
// An absent redirect URI resolves to the first URI registered for the client.
func (av *AuthorizationValidator) ValidateAuthorizationRequest(ctx context.Context, clientID,
	redirectURI string) (*model.Client, string, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AuthorizationValidator"))

	if clientID == "" {
		return nil, "", model.NewErrorResponse(constants.ErrorInvalidRequest, "Missing client_id parameter")
	}

	oauthClient, ok := av.clientFinder.FindClient(ctx, clientID)
	if !ok {
		logger.Debug("Authorization requested by an unknown client", log.String("clientID", clientID))
		return nil, "", model.NewErrorResponse(constants.ErrorInvalidRequest, "Invalid client_id")
	}

	if redirectURI == "" {
		redirectURI = oauthClient.DefaultRedirectURI()
		if redirectURI == "" {
			return nil, "", model.NewErrorResponse(constants.ErrorInvalidRequest,
				"No redirect URI is registered for the client")
		}
		return oauthClient, redirectURI, nil
	}

	if !oauthClient.HasRedirectURI(redirectURI) {
		logger.Debug("Validation failed for redirect URI", log.String("clientID", clientID),
			log.String("redirectURI", redirectURI))
		return nil, "", model.NewErrorResponse(constants.ErrorInvalidRequest, "Invalid redirect URI")
	}
	return oauthClient, redirectURI, nil
}
