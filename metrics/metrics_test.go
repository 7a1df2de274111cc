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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"
)

func TestCellsEvaluatedIncrementsByKind(t *testing.T) {
	CellsEvaluated.WithLabelValues("scalar").Inc()
	m := &dto.Metric{}
	require.NoError(t, CellsEvaluated.WithLabelValues("scalar").Write(m))
	require.GreaterOrEqual(t, m.GetCounter().GetValue(), 1.0)
}

func TestRulesFiredIsARegisteredCounter(t *testing.T) {
	before := counterValue(t, RulesFired)
	RulesFired.Inc()
	after := counterValue(t, RulesFired)
	require.Equal(t, before+1, after)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
