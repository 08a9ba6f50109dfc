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

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// refreshTokenGrantHandler handles the refresh token grant type.
type refreshTokenGrantHandler struct {
	tokenStore tokenstore.TokenStoreInterface
}

// newRefreshTokenGrantHandler creates a new instance of refreshTokenGrantHandler.
func newRefreshTokenGrantHandler(deps Dependencies) GrantHandlerInterface {
	return &refreshTokenGrantHandler{
		tokenStore: deps.TokenStore,
	}
}

// ValidateGrant validates the refresh token grant request.
func (h *refreshTokenGrantHandler) ValidateGrant(grantRequest *model.GrantRequest) *model.ErrorResponse {
	if grantRequest.GrantType != constants.GrantTypeRefreshToken {
		return model.NewErrorResponse(constants.ErrorUnsupportedGrantType, "Unsupported grant type")
	}
	if grantRequest.Client == nil {
		return model.NewErrorResponse(constants.ErrorInvalidClient, "Client authentication is required")
	}
	if grantRequest.RefreshToken == "" {
		return model.NewErrorResponse(constants.ErrorInvalidRequest, "Refresh token is required")
	}
	return nil
}

// HandleGrant replaces the access token paired with the refresh value. The refresh value is returned
// unchanged.
func (h *refreshTokenGrantHandler) HandleGrant(ctx context.Context, grantRequest *model.GrantRequest) (
	*model.BearerTokenResponse, *model.ErrorResponse) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "RefreshTokenGrantHandler"))

	current, err := h.tokenStore.FindRefreshToken(ctx, grantRequest.RefreshToken)
	if err != nil || current.ClientID != grantRequest.Client.ID {
		logger.Debug("Refresh token rejected", log.String("clientID", grantRequest.Client.ID),
			log.String("refreshToken", log.MaskString(grantRequest.RefreshToken)))
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid refresh token")
	}

	token, err := h.tokenStore.RefreshToken(ctx, grantRequest.RefreshToken, grantRequest.Instant)
	if err != nil {
		logger.Debug("Failed to refresh token", log.String("clientID", grantRequest.Client.ID), log.Error(err))
		return nil, model.NewErrorResponse(constants.ErrorInvalidGrant, "Invalid refresh token")
	}

	return newBearerTokenResponse(token, "", grantRequest.Instant), nil
}
