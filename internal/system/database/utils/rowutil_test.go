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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RowUtilTestSuite struct {
	suite.Suite
}

func TestRowUtilSuite(t *testing.T) {
	suite.Run(t, new(RowUtilTestSuite))
}

func (suite *RowUtilTestSuite) TestGetString() {
	row := map[string]interface{}{"a": "text", "b": []byte("bytes"), "c": nil, "d": 1}

	value, err := GetString(row, "a")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "text", value)

	value, err = GetString(row, "b")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "bytes", value)

	value, err = GetString(row, "c")
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), value)

	_, err = GetString(row, "d")
	assert.ErrorContains(suite.T(), err, "unexpected type int for column d")
}

func (suite *RowUtilTestSuite) TestGetInt64() {
	row := map[string]interface{}{
		"a": int64(7), "b": 8, "c": float64(9), "d": []byte("10"), "e": "11", "f": nil, "g": true,
	}

	for column, expected := range map[string]int64{"a": 7, "b": 8, "c": 9, "d": 10, "e": 11, "f": 0} {
		value, err := GetInt64(row, column)
		assert.NoError(suite.T(), err, column)
		assert.Equal(suite.T(), expected, value, column)
	}

	_, err := GetInt64(row, "g")
	assert.Error(suite.T(), err)
}
