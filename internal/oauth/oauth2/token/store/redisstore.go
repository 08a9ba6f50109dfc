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

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// Hash fields of a token.
const (
	fieldValue        = "value"
	fieldType         = "type"
	fieldGrantType    = "grant_type"
	fieldRefreshToken = "refresh_token"
	fieldIdentityID   = "identity_id"
	fieldClientID     = "client_id"
	fieldScopes       = "scopes"
	fieldTTL          = "ttl"
	fieldIssuedAt     = "issued_at"
)

// checkScript returns the fields of a token still available at ARGV[1] and moves its issue instant there.
var checkScript = goredis.NewScript(`
local issued = redis.call('HGET', KEYS[1], 'issued_at')
if not issued then
	return nil
end
local ttl = redis.call('HGET', KEYS[1], 'ttl')
if tonumber(ARGV[1]) >= tonumber(issued) + tonumber(ttl) * 1000 then
	return nil
end
local fields = redis.call('HGETALL', KEYS[1])
redis.call('HSET', KEYS[1], 'issued_at', ARGV[1])
return fields
`)

// refreshScript moves the token indexed by KEYS[1] to KEYS[2] and returns the fields of the previous token.
// ARGV holds the access key prefix, the new value, the issue instant and the ttl.
var refreshScript = goredis.NewScript(`
local access = redis.call('GET', KEYS[1])
if not access then
	return nil
end
local previous = ARGV[1] .. access
local fields = redis.call('HGETALL', previous)
if #fields == 0 then
	return nil
end
redis.call('DEL', previous)
redis.call('HSET', KEYS[2], unpack(fields))
redis.call('HSET', KEYS[2], 'value', ARGV[2], 'issued_at', ARGV[3], 'ttl', ARGV[4])
redis.call('SET', KEYS[1], ARGV[2])
return fields
`)

// revokeScript deletes the token at KEYS[1] and its refresh index entry when it still points at ARGV[2].
var revokeScript = goredis.NewScript(`
local refresh = redis.call('HGET', KEYS[1], 'refresh_token')
if not refresh then
	return 0
end
redis.call('DEL', KEYS[1])
local index = ARGV[1] .. refresh
if redis.call('GET', index) == ARGV[2] then
	redis.call('DEL', index)
end
return 1
`)

// RedisTokenStore keeps each token in a Redis hash and the refresh index in plain keys.
type RedisTokenStore struct {
	client         goredis.UniversalClient
	keyPrefix      string
	validityPeriod int64
}

// NewRedisTokenStore creates a token store over the given Redis client.
func NewRedisTokenStore(client goredis.UniversalClient, keyPrefix string, validityPeriod int64) *RedisTokenStore {
	return &RedisTokenStore{
		client:         client,
		keyPrefix:      keyPrefix,
		validityPeriod: validityPeriod,
	}
}

func (s *RedisTokenStore) accessPrefix() string {
	return s.keyPrefix + constants.RedisKeyAccessToken
}

func (s *RedisTokenStore) refreshPrefix() string {
	return s.keyPrefix + constants.RedisKeyRefreshToken
}

// IssueToken creates and stores a token with fresh access and refresh values.
func (s *RedisTokenStore) IssueToken(ctx context.Context, grantType oauth2const.GrantType,
	client *oauth2model.Client, identityID string, scopes []string, instant time.Time) (*oauth2model.Token, error) {
	token, err := newToken(grantType, client, identityID, scopes, s.validityPeriod, instant)
	if err != nil {
		return nil, err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, s.accessPrefix()+token.Value,
			fieldValue, token.Value,
			fieldType, token.Type,
			fieldGrantType, string(token.GrantType),
			fieldRefreshToken, token.RefreshToken,
			fieldIdentityID, token.IdentityID,
			fieldClientID, token.ClientID,
			fieldScopes, oauthutils.JoinScopes(token.Scopes),
			fieldTTL, token.TTLSeconds,
			fieldIssuedAt, token.IssuedAt.UnixMilli(),
		)
		pipe.Set(ctx, s.refreshPrefix()+token.RefreshToken, token.Value, 0)
		return nil
	})
	if err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Error("Failed to store token", log.Error(err))
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	return token, nil
}

// FindTokenAvailableAt returns the token as it was before the check and restarts its validity at instant.
func (s *RedisTokenStore) FindTokenAvailableAt(ctx context.Context, value string,
	instant time.Time) (*oauth2model.Token, error) {
	values, err := checkScript.Run(ctx, s.client, []string{s.accessPrefix() + value},
		instant.UnixMilli()).StringSlice()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, constants.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to check token: %w", err)
	}
	return buildTokenFromFields(pairsToMap(values))
}

// RefreshToken replaces the token holding the refresh value with a new access value and returns the new token.
func (s *RedisTokenStore) RefreshToken(ctx context.Context, refreshValue string,
	instant time.Time) (*oauth2model.Token, error) {
	value, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}

	values, err := refreshScript.Run(ctx, s.client,
		[]string{s.refreshPrefix() + refreshValue, s.accessPrefix() + value},
		s.accessPrefix(), value, instant.UnixMilli(), s.validityPeriod).StringSlice()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, constants.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	previous, err := buildTokenFromFields(pairsToMap(values))
	if err != nil {
		return nil, err
	}
	return renewToken(previous, value, s.validityPeriod, instant), nil
}

// FindRefreshToken returns the token currently holding the refresh value.
func (s *RedisTokenStore) FindRefreshToken(ctx context.Context, refreshValue string) (*oauth2model.Token, error) {
	value, err := s.client.Get(ctx, s.refreshPrefix()+refreshValue).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, constants.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to read refresh token: %w", err)
	}

	fields, err := s.client.HGetAll(ctx, s.accessPrefix()+value).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read token: %w", err)
	}
	if len(fields) == 0 {
		return nil, constants.ErrTokenNotFound
	}
	return buildTokenFromFields(fields)
}

// RevokeToken deletes the token with the access value. Unknown values are ignored.
func (s *RedisTokenStore) RevokeToken(ctx context.Context, value string) error {
	err := revokeScript.Run(ctx, s.client, []string{s.accessPrefix() + value}, s.refreshPrefix(), value).Err()
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func pairsToMap(values []string) map[string]string {
	fields := make(map[string]string, len(values)/2)
	for i := 0; i+1 < len(values); i += 2 {
		fields[values[i]] = values[i+1]
	}
	return fields
}

func buildTokenFromFields(fields map[string]string) (*oauth2model.Token, error) {
	ttl, err := strconv.ParseInt(fields[fieldTTL], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}
	issuedAt, err := strconv.ParseInt(fields[fieldIssuedAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token issue time: %w", err)
	}

	return &oauth2model.Token{
		Value:        fields[fieldValue],
		Type:         fields[fieldType],
		GrantType:    oauth2const.GrantType(fields[fieldGrantType]),
		RefreshToken: fields[fieldRefreshToken],
		IdentityID:   fields[fieldIdentityID],
		ClientID:     fields[fieldClientID],
		Scopes:       oauthutils.ParseScopes(fields[fieldScopes]),
		TTLSeconds:   ttl,
		IssuedAt:     time.UnixMilli(issuedAt),
	}, nil
}
