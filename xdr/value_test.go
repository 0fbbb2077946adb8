// Copyright 2026 Blink Labs Software
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

package xdr_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/blinklabs-io/gostellar/internal/test"
	"github.com/blinklabs-io/gostellar/xdr"

	"github.com/stretchr/testify/assert"
)

// A shape resembling a small transaction-like structure, exercising every
// composite kind
var testShape = &xdr.Shape{
	Kind: xdr.KindStruct,
	Fields: []xdr.ShapeField{
		{Name: "source", Shape: &xdr.Shape{Kind: xdr.KindFixedOpaque, Size: 4}},
		{Name: "fee", Shape: &xdr.Shape{Kind: xdr.KindUint32}},
		{Name: "seqNum", Shape: &xdr.Shape{Kind: xdr.KindInt64}},
		{
			Name: "memo",
			Shape: &xdr.Shape{
				Kind: xdr.KindUnion,
				Name: "Memo",
				Arms: map[uint32]*xdr.Shape{
					0: nil, // void
					1: {Kind: xdr.KindString, Max: 28},
					2: {Kind: xdr.KindUint64},
				},
			},
		},
		{
			Name: "timeBounds",
			Shape: &xdr.Shape{
				Kind: xdr.KindOptional,
				Elem: &xdr.Shape{
					Kind: xdr.KindStruct,
					Fields: []xdr.ShapeField{
						{Name: "minTime", Shape: &xdr.Shape{Kind: xdr.KindUint64}},
						{Name: "maxTime", Shape: &xdr.Shape{Kind: xdr.KindUint64}},
					},
				},
			},
		},
		{
			Name: "tags",
			Shape: &xdr.Shape{
				Kind: xdr.KindVarArray,
				Max:  10,
				Elem: &xdr.Shape{Kind: xdr.KindString, Max: 16},
			},
		},
	},
}

func encodeTestShapeValue(t *testing.T) []byte {
	t.Helper()
	e := xdr.NewEncoder()
	for _, step := range []error{
		e.FixedOpaque([]byte{1, 2, 3, 4}),
		e.Uint32(100),
		e.Int64(12345),
		e.Uint32(1),
		e.String("hello memo", 28),
		e.Bool(true),
		e.Uint64(500),
		e.Uint64(600),
		e.ArrayLen(2, 10),
		e.String("a", 16),
		e.String("bb", 16),
	} {
		if step != nil {
			t.Fatalf("unexpected encode error: %s", step)
		}
	}
	return e.Bytes()
}

func TestValueRoundTrip(t *testing.T) {
	data := encodeTestShapeValue(t)
	v, err := xdr.DecodeValue(data, testShape)
	if err != nil {
		t.Fatalf("unexpected decode error: %s", err)
	}
	// Spot-check decoded structure
	assert.Equal(t, xdr.KindStruct, v.Kind)
	assert.Equal(t, []byte{1, 2, 3, 4}, v.Elems[0].Bytes)
	assert.Equal(t, uint32(100), v.Elems[1].U32)
	assert.Equal(t, int64(12345), v.Elems[2].I64)
	assert.Equal(t, uint32(1), v.Elems[3].Discriminant)
	assert.Equal(t, "hello memo", v.Elems[3].Elem.Str)
	assert.True(t, v.Elems[4].Flag)
	assert.Equal(t, uint64(500), v.Elems[4].Elem.Elems[0].U64)
	assert.Len(t, v.Elems[5].Elems, 2)
	// Re-encode and compare to the original bytes
	reencoded, err := xdr.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected encode error: %s", err)
	}
	if !bytes.Equal(reencoded, data) {
		t.Fatalf(
			"round trip mismatch\n  got:    %x\n  wanted: %x",
			reencoded,
			data,
		)
	}
}

func TestValueAbsentOptional(t *testing.T) {
	shape := &xdr.Shape{
		Kind: xdr.KindOptional,
		Elem: &xdr.Shape{Kind: xdr.KindUint32},
	}
	v, err := xdr.DecodeValue(test.DecodeHexString("00000000"), shape)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v.Flag || v.Elem != nil {
		t.Fatal("expected absent optional")
	}
}

func TestValueUnknownDiscriminant(t *testing.T) {
	shape := &xdr.Shape{
		Kind: xdr.KindUnion,
		Name: "Memo",
		Arms: map[uint32]*xdr.Shape{
			0: nil,
		},
	}
	_, err := xdr.DecodeValue(test.DecodeHexString("00000063"), shape)
	var discErr xdr.UnknownDiscriminantError
	if !errors.As(err, &discErr) {
		t.Fatalf("expected UnknownDiscriminantError, got %v", err)
	}
	if discErr.Union != "Memo" || discErr.Discriminant != 99 {
		t.Fatalf("unexpected error contents: %+v", discErr)
	}
}

func TestValueTrailingBytes(t *testing.T) {
	shape := &xdr.Shape{Kind: xdr.KindUint32}
	_, err := xdr.DecodeValue(
		test.DecodeHexString("0000000100000000"),
		shape,
	)
	var trailErr xdr.TrailingBytesError
	if !errors.As(err, &trailErr) {
		t.Fatalf("expected TrailingBytesError, got %v", err)
	}
}

func TestValueFixedArray(t *testing.T) {
	shape := &xdr.Shape{
		Kind: xdr.KindFixedArray,
		Size: 3,
		Elem: &xdr.Shape{Kind: xdr.KindUint32},
	}
	data := test.DecodeHexString("000000010000000200000003")
	v, err := xdr.DecodeValue(data, shape)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(v.Elems) != 3 || v.Elems[2].U32 != 3 {
		t.Fatalf("unexpected decoded array: %+v", v)
	}
	reencoded, err := xdr.Marshal(v)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !bytes.Equal(reencoded, data) {
		t.Fatal("fixed array round trip mismatch")
	}
}
