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

package authz

import (
	"net/http"
	"strings"
)

// ResourceOwnerFinderInterface resolves the authenticated resource owner of an authorization request.
type ResourceOwnerFinderInterface interface {
	FindResourceOwner(r *http.Request) (string, bool)
}

// HeaderResourceOwnerFinder reads the resource owner from a header set by the fronting authenticator.
type HeaderResourceOwnerFinder struct {
	header string
}

// NewHeaderResourceOwnerFinder creates a resource owner finder reading the given header.
func NewHeaderResourceOwnerFinder(header string) *HeaderResourceOwnerFinder {
	return &HeaderResourceOwnerFinder{header: header}
}

// FindResourceOwner returns the identity ID carried by the header.
func (f *HeaderResourceOwnerFinder) FindResourceOwner(r *http.Request) (string, bool) {
	identityID := strings.TrimSpace(r.Header.Get(f.header))
	return identityID, identityID != ""
}
