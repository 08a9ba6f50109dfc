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

// Package store provides the token stores backing token issuance, validation, refresh and revocation.
package store

import (
	"context"
	"fmt"
	"time"

	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/config"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	"github.com/asgardeo/thunder-oauth/internal/system/redis"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

const loggerComponentName = "TokenStore"

// TokenStoreInterface defines the lifecycle of access tokens and their refresh values.
type TokenStoreInterface interface {
	// IssueToken creates and stores a token with fresh access and refresh values.
	IssueToken(ctx context.Context, grantType oauth2const.GrantType, client *oauth2model.Client, identityID string,
		scopes []string, instant time.Time) (*oauth2model.Token, error)
	// FindTokenAvailableAt returns the token as it was before the check and restarts its validity at instant.
	FindTokenAvailableAt(ctx context.Context, value string, instant time.Time) (*oauth2model.Token, error)
	// RefreshToken replaces the token holding the refresh value with a new access value and returns the new token.
	RefreshToken(ctx context.Context, refreshValue string, instant time.Time) (*oauth2model.Token, error)
	// FindRefreshToken returns the token currently holding the refresh value.
	FindRefreshToken(ctx context.Context, refreshValue string) (*oauth2model.Token, error)
	// RevokeToken deletes the token with the access value. Unknown values are ignored.
	RevokeToken(ctx context.Context, value string) error
}

// NewTokenStore creates the token store of the given backend type.
func NewTokenStore(storeType string, validityPeriod int64) (TokenStoreInterface, error) {
	switch storeType {
	case config.StoreTypeMemory:
		return NewMemoryTokenStore(validityPeriod), nil
	case config.StoreTypeDatabase:
		return NewDBTokenStore(provider.GetDBProvider(), validityPeriod), nil
	case config.StoreTypeRedis:
		redisProvider := redis.GetRedisProvider()
		client, err := redisProvider.GetClient()
		if err != nil {
			return nil, err
		}
		return NewRedisTokenStore(client, redisProvider.KeyPrefix(), validityPeriod), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// newToken builds a fresh bearer token for the client and identity.
func newToken(grantType oauth2const.GrantType, client *oauth2model.Client, identityID string, scopes []string,
	ttl int64, instant time.Time) (*oauth2model.Token, error) {
	if client == nil || identityID == "" {
		return nil, constants.ErrTokenNotIssued
	}

	value, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}
	refreshValue, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}

	return &oauth2model.Token{
		Value:        value,
		Type:         oauth2const.TokenTypeBearer,
		GrantType:    grantType,
		RefreshToken: refreshValue,
		IdentityID:   identityID,
		ClientID:     client.ID,
		Scopes:       append([]string{}, scopes...),
		TTLSeconds:   ttl,
		IssuedAt:     instant,
	}, nil
}

// renewToken builds the successor of a refreshed token. Only the access value, issue instant and ttl change.
func renewToken(previous *oauth2model.Token, value string, ttl int64, instant time.Time) *oauth2model.Token {
	token := previous.Copy()
	token.Value = value
	token.TTLSeconds = ttl
	token.IssuedAt = instant
	return token
}
