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

package host

// The types below mirror the JSON wire format (§6) a formatter
// collaborator reads and writes. The core never marshals or unmarshals
// them directly; they exist so a formatter implementation and the core
// agree on shape.

// DocumentJSON is the top-level wire object for one cube.
type DocumentJSON struct {
	Ncube                 string      `json:"ncube"`
	DefaultCellValue      interface{} `json:"defaultCellValue,omitempty"`
	DefaultCellValueType  string      `json:"defaultCellValueType,omitempty"`
	DefaultCellValueURL   string      `json:"defaultCellValueUrl,omitempty"`
	DefaultCellValueCache bool        `json:"defaultCellValueCache,omitempty"`
	Axes                  []AxisJSON  `json:"axes"`
	Cells                 []CellJSON  `json:"cells,omitempty"`
}

// AxisJSON is one axis in the wire format.
type AxisJSON struct {
	Name           string       `json:"name"`
	Type           string       `json:"type"` // DISCRETE, RANGE, SET, NEAREST, RULE
	ValueType      string       `json:"valueType"`
	HasDefault     bool         `json:"hasDefault"`
	PreferredOrder int          `json:"preferredOrder"` // 0=SORTED, 1=DISPLAY
	FireAll        bool         `json:"fireAll,omitempty"`
	Columns        []ColumnJSON `json:"columns"`
}

// ColumnJSON is one column in the wire format. Value holds a discrete
// scalar, a two-element [low, high) array for RANGE, or an array of
// ranges/discretes for SET.
type ColumnJSON struct {
	ID    *uint64     `json:"id,omitempty"`
	Value interface{} `json:"value"`
	Type  string      `json:"type,omitempty"`
	URL   string      `json:"url,omitempty"`
	Cache bool        `json:"cache,omitempty"`
	Name  string      `json:"name,omitempty"`
}

// CellJSON is one cell in the wire format, addressed by either an
// explicit column-id array (ID) or an axis-name-to-value map (Key) --
// exactly one must be set.
type CellJSON struct {
	ID    []uint64               `json:"id,omitempty"`
	Key   map[string]interface{} `json:"key,omitempty"`
	Value interface{}            `json:"value,omitempty"`
	Type  string                 `json:"type,omitempty"`
	URL   string                 `json:"url,omitempty"`
	Cache bool                   `json:"cache,omitempty"`
}
