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
	// QueryInsertAuthorizationCode is the query to insert a new authorization code.
	QueryInsertAuthorizationCode = dbmodel.DBQuery{
		ID: "AZQ-00001",
		Query: "INSERT INTO AUTHORIZATION_CODE (CODE_ID, CODE, CLIENT_ID, IDENTITY_ID, RESPONSE_TYPE, SCOPES, " +
			"REDIRECT_URIS, CODE_CHALLENGE, CODE_CHALLENGE_METHOD, PARAMS, CREATED_AT) " +
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)",
	}
	// QueryMarkAuthorizationCodeUsed marks an unused code of the client as used.
	QueryMarkAuthorizationCodeUsed = dbmodel.DBQuery{
		ID:    "AZQ-00002",
		Query: "UPDATE AUTHORIZATION_CODE SET USED_AT = $1 WHERE CODE = $2 AND CLIENT_ID = $3 AND USED_AT IS NULL",
	}
	// QueryGetAuthorizationCode is the query to retrieve an authorization code of a client.
	QueryGetAuthorizationCode = dbmodel.DBQuery{
		ID: "AZQ-00003",
		Query: "SELECT CODE, CLIENT_ID, IDENTITY_ID, RESPONSE_TYPE, SCOPES, REDIRECT_URIS, CODE_CHALLENGE, " +
			"CODE_CHALLENGE_METHOD, PARAMS, CREATED_AT FROM AUTHORIZATION_CODE WHERE CODE = $1 AND CLIENT_ID = $2",
	}
)
