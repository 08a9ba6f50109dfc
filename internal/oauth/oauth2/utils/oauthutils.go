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

// Package utils provides utility functions for OAuth2 operations.
package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/asgardeo/thunder-oauth/internal/oauth/oauth2/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/utils"
)

// Allowed character set of error and error_description: %x20-21 / %x23-5B / %x5D-7E
var allowedErrorCharRegex = regexp.MustCompile(`^[\x20-\x21\x23-\x5B\x5D-\x7E]*$`)

// ParseScopes splits a space separated scope parameter into a sorted set of scope tokens.
func ParseScopes(scope string) []string {
	seen := make(map[string]bool)
	scopes := []string{}
	for _, s := range strings.Split(scope, " ") {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)
	return scopes
}

// JoinScopes renders scopes as a space separated scope parameter.
func JoinScopes(scopes []string) string {
	return strings.Join(scopes, " ")
}

// GetForwardedParams returns the first value of each parameter, leaving out the excluded names.
func GetForwardedParams(values url.Values, exclude ...string) map[string]string {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	params := make(map[string]string, len(values))
	for key, vals := range values {
		if excluded[key] || len(vals) == 0 {
			continue
		}
		params[key] = vals[0]
	}
	return params
}

// GetURIWithQueryParams constructs a URI with the given query parameters.
// It validates the error code and error description when present.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	if err := validateErrorParams(queryParams[constants.Error], queryParams[constants.ErrorDescription]); err != nil {
		return "", err
	}

	return utils.GetURIWithQueryParams(uri, queryParams)
}

// validateErrorParams validates the error code and error description parameters.
func validateErrorParams(err, desc string) error {
	if err != "" && !allowedErrorCharRegex.MatchString(err) {
		return fmt.Errorf("invalid error code: %s", err)
	}
	if desc != "" && !allowedErrorCharRegex.MatchString(desc) {
		return fmt.Errorf("invalid error description: %s", desc)
	}
	return nil
}
