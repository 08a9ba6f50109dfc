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

// Package metrics exposes the Prometheus counters of the OAuth endpoints.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ResultSuccess is the result label of a request that completed without an OAuth error.
// Failed requests are labelled with their OAuth error code.
const ResultSuccess = "success"

// Metrics holds the server counters and the registry they are exported from.
type Metrics struct {
	registry              *prometheus.Registry
	tokenRequests         *prometheus.CounterVec
	authorizationRequests *prometheus.CounterVec
	revocations           prometheus.Counter
}

var (
	instance *Metrics
	once     sync.Once
)

// GetMetrics returns the process wide metrics instance.
func GetMetrics() *Metrics {
	once.Do(func() {
		instance = NewMetrics()
		instance.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
	return instance
}

// NewMetrics creates a metrics instance backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokenRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth2_token_requests_total",
			Help: "Token endpoint requests by grant type and result.",
		}, []string{"grant_type", "result"}),
		authorizationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oauth2_authorization_requests_total",
			Help: "Authorization endpoint requests by result.",
		}, []string{"result"}),
		revocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oauth2_token_revocations_total",
			Help: "Revocation requests from authenticated clients.",
		}),
	}
	m.registry.MustRegister(m.tokenRequests, m.authorizationRequests, m.revocations)
	return m
}

// RecordTokenRequest counts a token endpoint request.
func (m *Metrics) RecordTokenRequest(grantType, result string) {
	m.tokenRequests.WithLabelValues(grantType, result).Inc()
}

// RecordAuthorizationRequest counts an authorization endpoint request.
func (m *Metrics) RecordAuthorizationRequest(result string) {
	m.authorizationRequests.WithLabelValues(result).Inc()
}

// RecordRevocation counts a revocation request.
func (m *Metrics) RecordRevocation() {
	m.revocations.Inc()
}

// Handler returns the HTTP handler serving the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
