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

package constants

import dbmodel "github.com/asgardeo/thunder-oauth/internal/system/database/model"

var (
	// QueryInsertToken is the query to insert a new token.
	QueryInsertToken = dbmodel.DBQuery{
		ID: "TKQ-00001",
		Query: "INSERT INTO TOKEN (TOKEN_ID, ACCESS_TOKEN, REFRESH_TOKEN, TOKEN_TYPE, GRANT_TYPE, IDENTITY_ID, " +
			"CLIENT_ID, SCOPES, TTL, ISSUED_AT, EXPIRES_AT) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}
	// QueryGetTokenByAccessToken is the query to retrieve a token by its access value.
	QueryGetTokenByAccessToken = dbmodel.DBQuery{
		ID: "TKQ-00002",
		Query: "SELECT ACCESS_TOKEN, REFRESH_TOKEN, TOKEN_TYPE, GRANT_TYPE, IDENTITY_ID, CLIENT_ID, SCOPES, TTL, " +
			"ISSUED_AT FROM TOKEN WHERE ACCESS_TOKEN = $1",
	}
	// QueryGetTokenByRefreshToken is the query to retrieve a token by its refresh value.
	QueryGetTokenByRefreshToken = dbmodel.DBQuery{
		ID: "TKQ-00003",
		Query: "SELECT ACCESS_TOKEN, REFRESH_TOKEN, TOKEN_TYPE, GRANT_TYPE, IDENTITY_ID, CLIENT_ID, SCOPES, TTL, " +
			"ISSUED_AT FROM TOKEN WHERE REFRESH_TOKEN = $1",
	}
	// QuerySlideTokenExpiry moves the expiry of a token that is still available.
	QuerySlideTokenExpiry = dbmodel.DBQuery{
		ID:    "TKQ-00004",
		Query: "UPDATE TOKEN SET ISSUED_AT = $1, EXPIRES_AT = $2 WHERE ACCESS_TOKEN = $3 AND EXPIRES_AT > $4",
	}
	// QueryDeleteToken is the query to delete a token by its access value.
	QueryDeleteToken = dbmodel.DBQuery{
		ID:    "TKQ-00005",
		Query: "DELETE FROM TOKEN WHERE ACCESS_TOKEN = $1",
	}
	// QueryDeleteRefreshedToken deletes the token holding the refresh value.
	QueryDeleteRefreshedToken = dbmodel.DBQuery{
		ID:    "TKQ-00006",
		Query: "DELETE FROM TOKEN WHERE ACCESS_TOKEN = $1 AND REFRESH_TOKEN = $2",
	}
)
