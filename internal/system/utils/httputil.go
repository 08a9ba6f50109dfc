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

// Package utils provides utility functions for HTTP operations.
package utils

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/asgardeo/thunder-oauth/internal/system/constants"
	"github.com/asgardeo/thunder-oauth/internal/system/log"
)

// ExtractBasicAuthCredentials extracts the basic authentication credentials from the request header.
// Both parts are form-url-decoded as required for OAuth client credentials.
func ExtractBasicAuthCredentials(r *http.Request) (string, string, error) {
	authHeader := r.Header.Get(constants.AuthorizationHeaderName)
	if !strings.HasPrefix(authHeader, "Basic ") {
		return "", "", errors.New("invalid authorization header")
	}

	encodedCredentials := strings.TrimPrefix(authHeader, "Basic ")
	decodedCredentials, err := base64.StdEncoding.DecodeString(encodedCredentials)
	if err != nil {
		return "", "", errors.New("failed to decode authorization header")
	}

	credentials := strings.SplitN(string(decodedCredentials), ":", 2)
	if len(credentials) != 2 {
		return "", "", errors.New("invalid authorization header format")
	}

	username, err := url.QueryUnescape(credentials[0])
	if err != nil {
		return "", "", errors.New("invalid authorization header encoding")
	}
	password, err := url.QueryUnescape(credentials[1])
	if err != nil {
		return "", "", errors.New("invalid authorization header encoding")
	}

	return username, password, nil
}

// WriteJSONError writes a JSON error response with the given details.
func WriteJSONError(w http.ResponseWriter, code, desc string, statusCode int, respHeaders []map[string]string) {
	logger := log.GetLogger()
	logger.Debug("Error in HTTP response", log.String("error", code), log.String("description", desc))

	WriteJSON(w, statusCode, map[string]string{
		"error":             code,
		"error_description": desc,
	}, respHeaders)
}

// WriteJSON writes the given body as a JSON response with the provided status and headers.
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}, respHeaders []map[string]string) {
	for _, header := range respHeaders {
		for key, value := range header {
			w.Header().Set(key, value)
		}
	}
	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.GetLogger().Error("Failed to write JSON response", log.Error(err))
	}
}

// GetURIWithQueryParams appends the given query parameters to the URI, keeping any existing query as is.
func GetURIWithQueryParams(uri string, queryParams map[string]string) (string, error) {
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if len(queryParams) == 0 {
		return uri, nil
	}

	values := url.Values{}
	for key, value := range queryParams {
		values.Set(key, value)
	}

	if parsedURL.RawQuery == "" {
		parsedURL.RawQuery = values.Encode()
	} else {
		parsedURL.RawQuery = parsedURL.RawQuery + "&" + values.Encode()
	}
	return parsedURL.String(), nil
}
