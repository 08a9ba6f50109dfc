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

// Package revoke implements the OAuth 2.0 token revocation endpoint defined in RFC 7009.
package revoke

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	tokenconstants "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	tokenstore "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/store"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// TokenRevocationServiceInterface defines the interface for revoking tokens of a client.
type TokenRevocationServiceInterface interface {
	RevokeToken(ctx context.Context, clientID, token, tokenTypeHint string, instant time.Time) error
}

// TokenRevocationService implements the TokenRevocationServiceInterface.
type TokenRevocationService struct {
	tokenStore tokenstore.TokenStoreInterface
}

// NewTokenRevocationService creates a new TokenRevocationService instance.
func NewTokenRevocationService(tokenStore tokenstore.TokenStoreInterface) TokenRevocationServiceInterface {
	return &TokenRevocationService{
		tokenStore: tokenStore,
	}
}

// RevokeToken revokes the access token the value belongs to, whether it is the access value or the paired
// refresh value. Tokens that are unknown or owned by another client are left untouched without an error.
// The hint only decides which lookup runs first.
func (s *TokenRevocationService) RevokeToken(ctx context.Context, clientID, token, tokenTypeHint string,
	instant time.Time) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TokenRevocationService"))

	if token == "" {
		return errors.New("token is required")
	}

	lookups := []func(context.Context, string, string, time.Time) (string, error){
		s.findAccessValue, s.findAccessValueOfRefresh,
	}
	if tokenTypeHint == constants.TokenTypeHintRefreshToken {
		lookups[0], lookups[1] = lookups[1], lookups[0]
	}

	for _, lookup := range lookups {
		value, err := lookup(ctx, clientID, token, instant)
		if err != nil {
			return err
		}
		if value == "" {
			continue
		}
		if err := s.tokenStore.RevokeToken(ctx, value); err != nil {
			return fmt.Errorf("failed to revoke token: %w", err)
		}
		logger.Debug("Token revoked", log.String("clientID", clientID),
			log.String("token", log.MaskString(value)))
		return nil
	}

	logger.Debug("No token of the client matched the revocation request", log.String("clientID", clientID))
	return nil
}

// findAccessValue returns the value itself when it is an access value owned by the client.
func (s *TokenRevocationService) findAccessValue(ctx context.Context, clientID, value string,
	instant time.Time) (string, error) {
	token, err := s.tokenStore.FindTokenAvailableAt(ctx, value, instant)
	if err != nil {
		if errors.Is(err, tokenconstants.ErrTokenNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find token: %w", err)
	}
	if token.ClientID != clientID {
		return "", nil
	}
	return token.Value, nil
}

// findAccessValueOfRefresh returns the access value paired with a refresh value owned by the client.
func (s *TokenRevocationService) findAccessValueOfRefresh(ctx context.Context, clientID, value string,
	_ time.Time) (string, error) {
	token, err := s.tokenStore.FindRefreshToken(ctx, value)
	if err != nil {
		if errors.Is(err, tokenconstants.ErrTokenNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to find refresh token: %w", err)
	}
	if token.ClientID != clientID {
		return "", nil
	}
	return token.Value, nil
}
