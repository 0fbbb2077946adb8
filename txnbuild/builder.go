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

package txnbuild

import (
	"time"

	"github.com/jinzhu/copier"
)

// DefaultBaseFee is the per-operation fee used when the caller does not
// override it
const DefaultBaseFee uint32 = 100

// Builder accumulates transaction state and produces an unsigned Envelope.
// A Builder is owned by a single logical flow; it is not safe for concurrent
// mutation. The Envelope produced by Build is independent of the builder and
// unaffected by further builder calls.
type Builder struct {
	sourceAccount string
	seqNum        int64
	baseFee       uint32
	fee           uint32 // explicit override; 0 means baseFee * opCount
	memo          Memo
	timeBounds    *TimeBounds
	operations    []Operation
	sorobanData   []byte
}

// NewBuilder returns a Builder for the given source account and
// caller-supplied sequence number
func NewBuilder(sourceAccount string, seqNum int64) *Builder {
	return &Builder{
		sourceAccount: sourceAccount,
		seqNum:        seqNum,
		baseFee:       DefaultBaseFee,
	}
}

// AddOperation appends an operation. Operations are encoded in the order
// they are added.
func (b *Builder) AddOperation(op Operation) *Builder {
	b.operations = append(b.operations, op)
	return b
}

// AddOperations appends multiple operations in order
func (b *Builder) AddOperations(ops ...Operation) *Builder {
	b.operations = append(b.operations, ops...)
	return b
}

// SetMemo sets the transaction memo
func (b *Builder) SetMemo(memo Memo) *Builder {
	b.memo = memo
	return b
}

// SetMemoText sets a text memo
func (b *Builder) SetMemoText(text string) *Builder {
	return b.SetMemo(MemoText(text))
}

// SetMemoID sets an id memo
func (b *Builder) SetMemoID(id uint64) *Builder {
	return b.SetMemo(MemoID(id))
}

// SetTimeBounds sets an explicit validity window in Unix seconds
func (b *Builder) SetTimeBounds(minTime uint64, maxTime uint64) *Builder {
	b.timeBounds = &TimeBounds{MinTime: minTime, MaxTime: maxTime}
	return b
}

// SetTimeout sets a validity window ending the given duration from now
func (b *Builder) SetTimeout(timeout time.Duration) *Builder {
	b.timeBounds = &TimeBounds{
		MinTime: 0,
		MaxTime: uint64(time.Now().Add(timeout).Unix()),
	}
	return b
}

// SetBaseFee overrides the per-operation base fee
func (b *Builder) SetBaseFee(baseFee uint32) *Builder {
	b.baseFee = baseFee
	return b
}

// SetFee sets an explicit total fee, overriding the per-operation default
func (b *Builder) SetFee(fee uint32) *Builder {
	b.fee = fee
	return b
}

// SetSorobanData attaches a pre-encoded soroban resource footprint
func (b *Builder) SetSorobanData(data []byte) *Builder {
	b.sorobanData = data
	return b
}

// Build validates the accumulated state and produces an unsigned Envelope.
// Bounds violations (no operations, too many operations, oversized memo)
// are reported here, not at submission time.
func (b *Builder) Build() (*Envelope, error) {
	if len(b.operations) == 0 {
		return nil, ErrNoOperations
	}
	if len(b.operations) > MaxOperations {
		return nil, TooManyOperationsError{Count: len(b.operations)}
	}
	if b.memo.Type == MemoTypeText && len(b.memo.Text) > MemoTextMaxBytes {
		return nil, MemoTextLengthError{Length: len(b.memo.Text)}
	}
	if _, err := parseAccountAddress(b.sourceAccount, true); err != nil {
		return nil, err
	}
	fee := b.fee
	if fee == 0 {
		fee = b.baseFee * uint32(len(b.operations))
	}
	tx := Transaction{
		SourceAccount:  b.sourceAccount,
		Fee:            fee,
		SequenceNumber: b.seqNum,
		TimeBounds:     b.timeBounds,
		Memo:           b.memo,
		Operations:     b.operations,
		SorobanData:    b.sorobanData,
	}
	// Deep-copy into the envelope so reuse of the builder (or of the
	// operation values added to it) cannot mutate the built transaction
	env := &Envelope{}
	if err := copier.CopyWithOption(
		&env.Transaction,
		&tx,
		copier.Option{DeepCopy: true},
	); err != nil {
		return nil, err
	}
	// The deep copy turns a nil footprint into an empty slice; keep the
	// classic-transaction form
	if len(env.Transaction.SorobanData) == 0 {
		env.Transaction.SorobanData = nil
	}
	// Validate the result encodes cleanly so failures surface at build time
	if _, err := env.Base64(); err != nil {
		return nil, err
	}
	return env, nil
}
