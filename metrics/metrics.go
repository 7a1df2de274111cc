// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes the prometheus collectors the Executor and
// Rule Engine update as they run (§5). Registration happens once, on
// package init, against the default registry; embedders that run their
// own registry can pull the individual collectors via the exported vars.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// CellsEvaluated counts cells dispatched by the Executor, labeled by
	// kind (scalar, expression, template, method, crosscube).
	CellsEvaluated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ncube",
		Name:      "cells_evaluated_total",
		Help:      "Number of cells dispatched by kind.",
	}, []string{"kind"})

	// RulesFired counts rule-axis condition columns that evaluated truthy
	// and produced a fired cell.
	RulesFired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ncube",
		Name:      "rules_fired_total",
		Help:      "Number of rule-axis conditions that fired.",
	})

	// ArtifactCacheHits counts compiled-expression cache hits.
	ArtifactCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ncube",
		Name:      "artifact_cache_hits_total",
		Help:      "Number of compiled-expression cache hits.",
	})

	// ArtifactCacheMisses counts compiled-expression cache misses.
	ArtifactCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ncube",
		Name:      "artifact_cache_misses_total",
		Help:      "Number of compiled-expression cache misses.",
	})

	// AxisOverlapRejections counts AddColumn/UpdateColumns calls rejected
	// for overlapping an existing RANGE/SET column or duplicating an
	// existing DISCRETE column.
	AxisOverlapRejections = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ncube",
		Name:      "axis_overlap_rejections_total",
		Help:      "Number of column additions rejected for axis overlap.",
	})

	// CellEvaluationDuration records wall-clock latency per cell kind.
	CellEvaluationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ncube",
		Name:      "cell_evaluation_duration_seconds",
		Help:      "Cell evaluation latency by kind.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(
		CellsEvaluated,
		RulesFired,
		ArtifactCacheHits,
		ArtifactCacheMisses,
		AxisOverlapRejections,
		CellEvaluationDuration,
	)
}
