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

// Package introspect provides functionality for the OAuth2 token introspection endpoint
package introspect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	tokenconstants "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// TokenIntrospectionServiceInterface defines the interface for OAuth 2.0 token introspection.
type TokenIntrospectionServiceInterface interface {
	IntrospectToken(ctx context.Context, token string, instant time.Time) (*model.IntrospectionResponse, error)
}

// TokenIntrospectionService implements the TokenIntrospectionServiceInterface.
type TokenIntrospectionService struct {
	tokenStore tokenstore.TokenStoreInterface
}

// NewTokenIntrospectionService creates a new TokenIntrospectionService instance.
func NewTokenIntrospectionService(tokenStore tokenstore.TokenStoreInterface) TokenIntrospectionServiceInterface {
	return &TokenIntrospectionService{
		tokenStore: tokenStore,
	}
}

// IntrospectToken looks the token up as a validity check, which also slides its expiration. It only returns
// an error if a server error occurs. Unknown and expired tokens are inactive as defined in the RFC 7662.
func (s *TokenIntrospectionService) IntrospectToken(ctx context.Context, token string,
	instant time.Time) (*model.IntrospectionResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenIntrospectionService"))

	if token == "" {
		return nil, errors.New("token is required")
	}

	found, err := s.tokenStore.FindTokenAvailableAt(ctx, token, instant)
	if err != nil {
		if errors.Is(err, tokenconstants.ErrTokenNotFound) {
			logger.Debug("Token is not active", log.String("token", log.MaskString(token)))
			return &model.IntrospectionResponse{Active: false}, nil
		}
		return nil, fmt.Errorf("failed to find token: %w", err)
	}

	return &model.IntrospectionResponse{
		Active:    true,
		Scope:     utils.JoinScopes(found.Scopes),
		ClientID:  found.ClientID,
		Sub:       found.IdentityID,
		TokenType: constants.TokenTypeBearer,
		// The check moved the expiration to one validity period after the instant.
		Exp: instant.Add(time.Duration(found.TTLSeconds) * time.Second).Unix(),
		Iat: found.IssuedAt.Unix(),
	}, nil
}
