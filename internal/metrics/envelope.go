// Copyright (C) 2025 scrtlabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

// SPDX-License-Identifier: LGPL-3.0-or-later

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EnvelopeOperations tracks envelope seal/open calls.
	EnvelopeOperations = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "envelope",
			Name:      "operations_total",
			Help:      "Total number of envelope seal/open operations",
		},
		[]string{"operation"}, // seal, open
	)

	// EnvelopeErrors tracks envelope seal/open failures.
	EnvelopeErrors = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "envelope",
			Name:      "errors_total",
			Help:      "Total number of envelope seal/open failures",
		},
		[]string{"operation"}, // seal, open
	)

	// EnvelopeOperationDuration tracks envelope seal/open durations.
	EnvelopeOperationDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "envelope",
			Name:      "operation_duration_seconds",
			Help:      "Envelope seal/open duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 15), // 10µs to 163ms
		},
		[]string{"operation"}, // seal, open
	)

	// CodeHashCacheLookups tracks code-hash cache lookups by outcome.
	CodeHashCacheLookups = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "codehash_cache",
			Name:      "lookups_total",
			Help:      "Total number of code-hash cache lookups",
		},
		[]string{"namespace", "outcome"}, // code_id|address, hit|miss
	)

	// IoPubKeyFetches tracks consensus I/O exchange pubkey fetches.
	IoPubKeyFetches = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "io_pubkey_cache",
			Name:      "fetches_total",
			Help:      "Total number of consensus I/O pubkey fetch attempts",
		},
		[]string{"outcome"}, // hit, miss_ok, miss_error
	)

	// LCDRequests tracks outbound LCD REST requests.
	LCDRequests = promauto.With(Registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lcd",
			Name:      "requests_total",
			Help:      "Total number of LCD REST requests",
		},
		[]string{"method", "outcome"}, // GET|POST, ok|error
	)

	// LCDRequestDuration tracks outbound LCD REST request durations.
	LCDRequestDuration = promauto.With(Registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lcd",
			Name:      "request_duration_seconds",
			Help:      "LCD REST request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"}, // GET, POST
	)
)
