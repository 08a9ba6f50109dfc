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
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/constants"
	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/authz/model"
	oauth2model "github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
	"github.com/asgardeo/thunder-oauth/internal/system/database/client"
	dbmodel "github.com/asgardeo/thunder-oauth/internal/system/database/model"
	"github.com/asgardeo/thunder-oauth/internal/system/database/provider"
	"github.com/asgardeo/thunder-oauth/tests/mocks/database/providermock"
)

type DBAuthorizationStoreTestSuite struct {
	suite.Suite
	mock           sqlmock.Sqlmock
	mockDBProvider *providermock.DBProviderInterfaceMock
	store          *DBAuthorizationStore
	client         *oauth2model.Client
	now            time.Time
}

func TestDBAuthorizationStoreSuite(t *testing.T) {
	suite.Run(t, new(DBAuthorizationStoreTestSuite))
}

func (suite *DBAuthorizationStoreTestSuite) SetupTest() {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	suite.Require().NoError(err)
	suite.T().Cleanup(func() { _ = db.Close() })
	suite.mock = mock

	suite.mockDBProvider = &providermock.DBProviderInterfaceMock{}
	suite.mockDBProvider.On("GetDBClient", provider.RuntimeDB).
		Return(client.NewDBClient(dbmodel.NewDB(db), dbmodel.DBTypePostgres), nil).Maybe()

	suite.now = time.UnixMilli(1700000000123)
	suite.store = NewDBAuthorizationStore(suite.mockDBProvider)
	suite.store.now = func() time.Time { return suite.now }
	suite.client = &oauth2model.Client{ID: "web-app", RedirectURIs: []string{"http://example.com/callback"}}
}

func (suite *DBAuthorizationStoreTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *DBAuthorizationStoreTestSuite) TestAuthorizeInsertsRow() {
	suite.mock.ExpectExec(constants.QueryInsertAuthorizationCode.Query).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "web-app", "user-1", "code", "openid profile",
			"http://example.com/callback", "", "", "null", suite.now.UnixMilli()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	authz, err := suite.store.Authorize(context.Background(), suite.client, "user-1",
		[]string{"openid", "profile"}, "code", model.AuthorizationOptions{})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), suite.now, authz.CreatedAt)
}

func (suite *DBAuthorizationStoreTestSuite) TestAuthorizeInsertError() {
	suite.mock.ExpectExec(constants.QueryInsertAuthorizationCode.Query).
		WillReturnError(errors.New("disk full"))

	authz, err := suite.store.Authorize(context.Background(), suite.client, "user-1", nil, "code",
		model.AuthorizationOptions{})

	assert.Nil(suite.T(), authz)
	assert.ErrorContains(suite.T(), err, "failed to insert authorization code: disk full")
}

func (suite *DBAuthorizationStoreTestSuite) TestAuthorizeDBClientError() {
	dbProvider := &providermock.DBProviderInterfaceMock{}
	dbProvider.On("GetDBClient", provider.RuntimeDB).Return(nil, errors.New("db unavailable"))
	store := NewDBAuthorizationStore(dbProvider)

	authz, err := store.Authorize(context.Background(), suite.client, "user-1", nil, "code",
		model.AuthorizationOptions{})

	assert.Nil(suite.T(), authz)
	assert.EqualError(suite.T(), err, "db unavailable")
	dbProvider.AssertExpectations(suite.T())
}

func (suite *DBAuthorizationStoreTestSuite) TestFindAuthorizationMarksAndReads() {
	suite.mock.ExpectExec(constants.QueryMarkAuthorizationCodeUsed.Query).
		WithArgs(suite.now.UnixMilli(), "abc", "web-app").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectQuery(constants.QueryGetAuthorizationCode.Query).
		WithArgs("abc", "web-app").
		WillReturnRows(sqlmock.NewRows([]string{"CODE", "CLIENT_ID", "IDENTITY_ID", "RESPONSE_TYPE", "SCOPES",
			"REDIRECT_URIS", "CODE_CHALLENGE", "CODE_CHALLENGE_METHOD", "PARAMS", "CREATED_AT"}).
			AddRow("abc", "web-app", "user-1", "code", "openid", "http://example.com/callback http://b/cb",
				"ch", "plain", `{"nonce":"n"}`, int64(1000)))

	authz, err := suite.store.FindAuthorization(context.Background(), suite.client, "abc")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "user-1", authz.IdentityID)
	assert.Equal(suite.T(), []string{"openid"}, authz.Scopes)
	assert.Equal(suite.T(), []string{"http://example.com/callback", "http://b/cb"}, authz.RedirectURIs)
	assert.Equal(suite.T(), "plain", authz.CodeChallengeMethod)
	assert.Equal(suite.T(), map[string]string{"nonce": "n"}, authz.Params)
	assert.Equal(suite.T(), time.UnixMilli(1000), authz.CreatedAt)
	assert.Nil(suite.T(), authz.UsedAt)
}

func (suite *DBAuthorizationStoreTestSuite) TestFindAuthorizationNotRedeemable() {
	suite.mock.ExpectExec(constants.QueryMarkAuthorizationCodeUsed.Query).
		WithArgs(suite.now.UnixMilli(), "abc", "web-app").
		WillReturnResult(sqlmock.NewResult(0, 0))

	authz, err := suite.store.FindAuthorization(context.Background(), suite.client, "abc")

	assert.Nil(suite.T(), authz)
	assert.ErrorIs(suite.T(), err, constants.ErrAuthorizationNotFound)
}

func (suite *DBAuthorizationStoreTestSuite) TestFindAuthorizationUpdateError() {
	suite.mock.ExpectExec(constants.QueryMarkAuthorizationCodeUsed.Query).
		WillReturnError(errors.New("connection reset"))

	authz, err := suite.store.FindAuthorization(context.Background(), suite.client, "abc")

	assert.Nil(suite.T(), authz)
	assert.ErrorContains(suite.T(), err, "connection reset")
	assert.NotErrorIs(suite.T(), err, constants.ErrAuthorizationNotFound)
}

func (suite *DBAuthorizationStoreTestSuite) TestFindAuthorizationBadParams() {
	suite.mock.ExpectExec(constants.QueryMarkAuthorizationCodeUsed.Query).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectQuery(constants.QueryGetAuthorizationCode.Query).
		WillReturnRows(sqlmock.NewRows([]string{"CODE", "PARAMS", "CREATED_AT"}).
			AddRow("abc", "{broken", int64(1)))

	authz, err := suite.store.FindAuthorization(context.Background(), suite.client, "abc")

	assert.Nil(suite.T(), authz)
	assert.ErrorContains(suite.T(), err, "failed to decode authorization params")
}
