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

// Package granthandlers provides an interface and implementations for handling OAuth 2.0 grant types.
package granthandlers

import (
	"context"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/model"
)

// GrantHandlerInterface defines the interface for handling OAuth 2.0 grants.
type GrantHandlerInterface interface {
	// ValidateGrant checks the request parameters the grant requires before any store is touched.
	ValidateGrant(grantRequest *model.GrantRequest) *model.ErrorResponse
	// HandleGrant evaluates the grant and returns the token endpoint body.
	HandleGrant(ctx context.Context, grantRequest *model.GrantRequest) (*model.BearerTokenResponse,
		*model.ErrorResponse)
}
