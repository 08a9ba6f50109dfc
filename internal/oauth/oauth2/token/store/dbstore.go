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
	"time"

	oauth2const "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/token/constants"
	oauthutils "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/database/client"
	dbmodel "github.com/asgardeo/thunder-oauth/internal/system/database/model"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	dbutils "github.com/asgardeo/thunder-oauth/internal/system/database/utils"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// DBTokenStore keeps tokens in the runtime database.
// The refresh index is the REFRESH_TOKEN column index.
type DBTokenStore struct {
	DBProvider     provider.DBProviderInterface
	validityPeriod int64
}

// NewDBTokenStore creates a token store over the runtime database.
func NewDBTokenStore(dbProvider provider.DBProviderInterface, validityPeriod int64) *DBTokenStore {
	return &DBTokenStore{
		DBProvider:     dbProvider,
		validityPeriod: validityPeriod,
	}
}

// IssueToken creates and stores a token with fresh access and refresh values.
func (s *DBTokenStore) IssueToken(ctx context.Context, grantType oauth2const.GrantType,
	client *oauth2model.Client, identityID string, scopes []string, instant time.Time) (*oauth2model.Token, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	token, err := newToken(grantType, client, identityID, scopes, s.validityPeriod, instant)
	if err != nil {
		return nil, err
	}

	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, err
	}

	if _, err := dbClient.Execute(ctx, constants.QueryInsertToken, insertArgs(token)...); err != nil {
		logger.Error("Failed to insert token", log.Error(err))
		return nil, fmt.Errorf("failed to insert token: %w", err)
	}

	return token, nil
}

// FindTokenAvailableAt returns the token as it was before the check and restarts its validity at instant.
// The conditional update fails when the token expired or was removed after it was read.
func (s *DBTokenStore) FindTokenAvailableAt(ctx context.Context, value string,
	instant time.Time) (*oauth2model.Token, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return nil, err
	}

	token, err := queryToken(ctx, dbClient, constants.QueryGetTokenByAccessToken, value)
	if err != nil {
		return nil, err
	}
	if token.IsExpiredAt(instant) {
		return nil, constants.ErrTokenNotFound
	}

	slid := token.Copy()
	slid.IssuedAt = instant
	affected, err := dbClient.Execute(ctx, constants.QuerySlideTokenExpiry, instant.UnixMilli(),
		slid.ExpiresAt().UnixMilli(), value, instant.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to update token expiry: %w", err)
	}
	if affected != 1 {
		return nil, constants.ErrTokenNotFound
	}

	return token, nil
}

// RefreshToken replaces the token holding the refresh value with a new access value and returns the new token.
func (s *DBTokenStore) RefreshToken(ctx context.Context, refreshValue string,
	instant time.Time) (*oauth2model.Token, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return nil, err
	}

	previous, err := queryToken(ctx, dbClient, constants.QueryGetTokenByRefreshToken, refreshValue)
	if err != nil {
		return nil, err
	}

	value, err := utils.GenerateSecureToken(utils.DefaultTokenBytes)
	if err != nil {
		return nil, err
	}
	token := renewToken(previous, value, s.validityPeriod, instant)

	tx, err := dbClient.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	affected, err := tx.Exec(ctx, constants.QueryDeleteRefreshedToken, previous.Value, refreshValue)
	if err != nil {
		return nil, rollback(tx, fmt.Errorf("failed to delete refreshed token: %w", err))
	}
	if affected != 1 {
		logger.Debug("Refresh token was consumed concurrently", log.String("refreshToken",
			log.MaskString(refreshValue)))
		return nil, rollback(tx, constants.ErrTokenNotFound)
	}

	if _, err := tx.Exec(ctx, constants.QueryInsertToken, insertArgs(token)...); err != nil {
		return nil, rollback(tx, fmt.Errorf("failed to insert refreshed token: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return token, nil
}

// FindRefreshToken returns the token currently holding the refresh value.
func (s *DBTokenStore) FindRefreshToken(ctx context.Context, refreshValue string) (*oauth2model.Token, error) {
	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return nil, err
	}
	return queryToken(ctx, dbClient, constants.QueryGetTokenByRefreshToken, refreshValue)
}

// RevokeToken deletes the token with the access value. Unknown values are ignored.
func (s *DBTokenStore) RevokeToken(ctx context.Context, value string) error {
	dbClient, err := s.DBProvider.GetDBClient(provider.RuntimeDB)
	if err != nil {
		return err
	}

	if _, err := dbClient.Execute(ctx, constants.QueryDeleteToken, value); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// rollback rolls the transaction back and joins any rollback failure to the cause.
func rollback(tx dbmodel.TxInterface, cause error) error {
	if err := tx.Rollback(); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to rollback transaction: %w", err))
	}
	return cause
}

func insertArgs(token *oauth2model.Token) []interface{} {
	return []interface{}{
		utils.GenerateUUID(), token.Value, token.RefreshToken, token.Type, string(token.GrantType),
		token.IdentityID, token.ClientID, oauthutils.JoinScopes(token.Scopes), token.TTLSeconds,
		token.IssuedAt.UnixMilli(), token.ExpiresAt().UnixMilli(),
	}
}

func queryToken(ctx context.Context, dbClient client.DBClientInterface, query dbmodel.DBQuery,
	value string) (*oauth2model.Token, error) {
	results, err := dbClient.Query(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("error while retrieving token: %w", err)
	}
	if len(results) == 0 {
		return nil, constants.ErrTokenNotFound
	}
	return buildTokenFromRow(results[0])
}

// buildTokenFromRow maps a row of the token table to a token.
func buildTokenFromRow(row map[string]interface{}) (*oauth2model.Token, error) {
	token := &oauth2model.Token{}
	var grantType, scopes string
	var err error

	fields := []struct {
		column string
		target *string
	}{
		{"access_token", &token.Value},
		{"refresh_token", &token.RefreshToken},
		{"token_type", &token.Type},
		{"grant_type", &grantType},
		{"identity_id", &token.IdentityID},
		{"client_id", &token.ClientID},
		{"scopes", &scopes},
	}
	for _, field := range fields {
		if *field.target, err = dbutils.GetString(row, field.column); err != nil {
			return nil, err
		}
	}

	if token.TTLSeconds, err = dbutils.GetInt64(row, "ttl"); err != nil {
		return nil, err
	}
	issuedAt, err := dbutils.GetInt64(row, "issued_at")
	if err != nil {
		return nil, err
	}

	token.GrantType = oauth2const.GrantType(grantType)
	token.Scopes = oauthutils.ParseScopes(scopes)
	token.IssuedAt = time.UnixMilli(issuedAt)
	return token, nil
}
