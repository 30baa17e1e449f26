//
// Copyright 2020 OpenDP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

// Package base contains the data model shared by all graph analyses: scalar
// and array values, statistical properties attached to node outputs, graph
// components and patches, and the privacy definition they are analyzed under.
package base

import "fmt"

// DataType is an enum type. Its values are the scalar types a column of data
// may hold.
type DataType int

// Scalar types supported by the analysis.
const (
	Bool DataType = iota
	I64
	F64
	Str
)

var dataTypeName = map[DataType]string{
	Bool: "Bool",
	I64:  "I64",
	F64:  "F64",
	Str:  "Str",
}

func (t DataType) String() string {
	if name, ok := dataTypeName[t]; ok {
		return name
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

// Value is a literal value that may appear as a public argument or a release.
// It is either an *Array or a *Jagged.
type Value interface {
	isValue()
}

// Array is a homogeneous n-dimensional array of scalars in row-major order.
// Exactly one of the typed slices is non-nil, matching DataType.
type Array struct {
	DataType DataType
	// Shape lists the extent of each dimension. A vector has one entry,
	// a matrix two.
	Shape []int

	Bool []bool
	I64  []int64
	F64  []float64
	Str  []string
}

func (*Array) isValue() {}

// NumElements returns the total number of scalars held by the array.
func (a *Array) NumElements() int {
	n := 1
	for _, d := range a.Shape {
		n *= d
	}
	return n
}

// BoolVector returns a one-dimensional boolean Array.
func BoolVector(values []bool) *Array {
	return &Array{DataType: Bool, Shape: []int{len(values)}, Bool: values}
}

// I64Vector returns a one-dimensional integer Array.
func I64Vector(values []int64) *Array {
	return &Array{DataType: I64, Shape: []int{len(values)}, I64: values}
}

// F64Vector returns a one-dimensional float Array.
func F64Vector(values []float64) *Array {
	return &Array{DataType: F64, Shape: []int{len(values)}, F64: values}
}

// StrVector returns a one-dimensional string Array.
func StrVector(values []string) *Array {
	return &Array{DataType: Str, Shape: []int{len(values)}, Str: values}
}

// F64Matrix returns a two-dimensional float Array with the given extent.
// The values slice must hold rows*cols elements in row-major order.
func F64Matrix(values []float64, rows, cols int) *Array {
	return &Array{DataType: F64, Shape: []int{rows, cols}, F64: values}
}

// clone returns a deep copy of the array.
func (a *Array) clone() *Array {
	if a == nil {
		return nil
	}
	out := &Array{DataType: a.DataType, Shape: append([]int(nil), a.Shape...)}
	out.Bool = append([]bool(nil), a.Bool...)
	out.I64 = append([]int64(nil), a.I64...)
	out.F64 = append([]float64(nil), a.F64...)
	out.Str = append([]string(nil), a.Str...)
	return out
}

// Jagged holds one vector of scalars per column, where columns may have
// differing lengths. It is the representation of a known per-column value
// domain. Exactly one of the typed slices is non-nil, matching DataType.
type Jagged struct {
	DataType DataType

	Bool [][]bool
	I64  [][]int64
	F64  [][]float64
	Str  [][]string
}

func (*Jagged) isValue() {}

// BoolJagged returns a Jagged of boolean columns.
func BoolJagged(columns [][]bool) *Jagged {
	return &Jagged{DataType: Bool, Bool: columns}
}

// I64Jagged returns a Jagged of integer columns.
func I64Jagged(columns [][]int64) *Jagged {
	return &Jagged{DataType: I64, I64: columns}
}

// F64Jagged returns a Jagged of float columns.
func F64Jagged(columns [][]float64) *Jagged {
	return &Jagged{DataType: F64, F64: columns}
}

// StrJagged returns a Jagged of string columns.
func StrJagged(columns [][]string) *Jagged {
	return &Jagged{DataType: Str, Str: columns}
}

// NumColumns returns the number of columns held.
func (j *Jagged) NumColumns() int {
	switch j.DataType {
	case Bool:
		return len(j.Bool)
	case I64:
		return len(j.I64)
	case F64:
		return len(j.F64)
	case Str:
		return len(j.Str)
	}
	return 0
}

// Lengths returns the length of each column.
func (j *Jagged) Lengths() []int {
	lengths := make([]int, 0, j.NumColumns())
	switch j.DataType {
	case Bool:
		for _, col := range j.Bool {
			lengths = append(lengths, len(col))
		}
	case I64:
		for _, col := range j.I64 {
			lengths = append(lengths, len(col))
		}
	case F64:
		for _, col := range j.F64 {
			lengths = append(lengths, len(col))
		}
	case Str:
		for _, col := range j.Str {
			lengths = append(lengths, len(col))
		}
	}
	return lengths
}

// ColumnArray returns column i as a one-dimensional Array.
func (j *Jagged) ColumnArray(i int) (*Array, error) {
	if i < 0 || i >= j.NumColumns() {
		return nil, Errorf(UnsupportedShape, "column %d is out of range, jagged value has %d columns", i, j.NumColumns())
	}
	switch j.DataType {
	case Bool:
		return BoolVector(append([]bool(nil), j.Bool[i]...)), nil
	case I64:
		return I64Vector(append([]int64(nil), j.I64[i]...)), nil
	case F64:
		return F64Vector(append([]float64(nil), j.F64[i]...)), nil
	case Str:
		return StrVector(append([]string(nil), j.Str[i]...)), nil
	}
	return nil, Errorf(UnsupportedShape, "jagged value has unknown data type %s", j.DataType)
}

// CloneValue returns a deep copy of a value. Graph nodes and recorded
// releases never share backing storage, so mutating one cannot silently
// change the other.
func CloneValue(v Value) Value {
	switch value := v.(type) {
	case *Array:
		return value.clone()
	case *Jagged:
		return value.clone()
	}
	return v
}

// clone returns a deep copy of the jagged value.
func (j *Jagged) clone() *Jagged {
	if j == nil {
		return nil
	}
	out := &Jagged{DataType: j.DataType}
	for _, col := range j.Bool {
		out.Bool = append(out.Bool, append([]bool(nil), col...))
	}
	for _, col := range j.I64 {
		out.I64 = append(out.I64, append([]int64(nil), col...))
	}
	for _, col := range j.F64 {
		out.F64 = append(out.F64, append([]float64(nil), col...))
	}
	for _, col := range j.Str {
		out.Str = append(out.Str, append([]string(nil), col...))
	}
	return out
}
