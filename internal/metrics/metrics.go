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

// Package metrics exposes Prometheus instrumentation for the client's
// sealing/opening, caching, and transport layers.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "secretjs"

// Registry is the Prometheus registry all collectors in this package
// register against. Callers embedding this client into a larger service
// can still scrape it via Handler, or pass it to their own registry's
// Gatherers list.
var Registry = prometheus.NewRegistry()
