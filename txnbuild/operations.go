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
	"github.com/blinklabs-io/gostellar/xdr"
)

// OperationType is the discriminant selecting an operation body variant
type OperationType uint32

const (
	OperationTypeCreateAccount      OperationType = 0
	OperationTypePayment            OperationType = 1
	OperationTypeChangeTrust        OperationType = 6
	OperationTypeManageData         OperationType = 10
	OperationTypeBumpSequence       OperationType = 11
	OperationTypeInvokeHostFunction OperationType = 24
)

func (t OperationType) String() string {
	switch t {
	case OperationTypeCreateAccount:
		return "create account"
	case OperationTypePayment:
		return "payment"
	case OperationTypeChangeTrust:
		return "change trust"
	case OperationTypeManageData:
		return "manage data"
	case OperationTypeBumpSequence:
		return "bump sequence"
	case OperationTypeInvokeHostFunction:
		return "invoke host function"
	}
	return "unknown"
}

// ManageDataNameMaxBytes and ManageDataValueMaxBytes bound manage-data entries
const (
	ManageDataNameMaxBytes  = 64
	ManageDataValueMaxBytes = 64
)

// Operation is one transaction operation: an optional per-operation source
// account and the tagged body variant
type Operation struct {
	// SourceAccount overrides the transaction source for this operation.
	// Empty means the transaction source applies.
	SourceAccount string
	Body          OperationBody
}

// OperationBody is the closed set of operation variants. The unexported
// methods keep the union closed to this package so decode can stay
// exhaustive.
type OperationBody interface {
	OperationType() OperationType
	marshalBody(e *xdr.Encoder) error
	unmarshalBody(d *xdr.Decoder) error
}

// newOperationBody instantiates the variant for a discriminant
func newOperationBody(opType OperationType) (OperationBody, error) {
	switch opType {
	case OperationTypeCreateAccount:
		return &CreateAccount{}, nil
	case OperationTypePayment:
		return &Payment{}, nil
	case OperationTypeChangeTrust:
		return &ChangeTrust{}, nil
	case OperationTypeManageData:
		return &ManageData{}, nil
	case OperationTypeBumpSequence:
		return &BumpSequence{}, nil
	case OperationTypeInvokeHostFunction:
		return &InvokeHostFunction{}, nil
	}
	return nil, xdr.UnknownDiscriminantError{
		Union:        "OperationBody",
		Discriminant: uint32(opType),
	}
}

func (o Operation) MarshalXDR(e *xdr.Encoder) error {
	if o.Body == nil {
		return ErrNoOperationBody
	}
	if o.SourceAccount == "" {
		if err := e.Bool(false); err != nil {
			return err
		}
	} else {
		if err := e.Bool(true); err != nil {
			return err
		}
		source, err := parseAccountAddress(o.SourceAccount, true)
		if err != nil {
			return err
		}
		if err := source.marshalMuxed(e); err != nil {
			return err
		}
	}
	if err := e.Uint32(uint32(o.Body.OperationType())); err != nil {
		return err
	}
	return o.Body.marshalBody(e)
}

func (o *Operation) UnmarshalXDR(d *xdr.Decoder) error {
	present, err := d.Bool()
	if err != nil {
		return err
	}
	if present {
		source, err := unmarshalMuxed(d)
		if err != nil {
			return err
		}
		o.SourceAccount = source.String()
	} else {
		o.SourceAccount = ""
	}
	opType, err := d.Uint32()
	if err != nil {
		return err
	}
	body, err := newOperationBody(OperationType(opType))
	if err != nil {
		return err
	}
	if err := body.unmarshalBody(d); err != nil {
		return err
	}
	o.Body = body
	return nil
}

// CreateAccount funds a new account with a starting balance
type CreateAccount struct {
	Destination     string
	StartingBalance int64
}

func (CreateAccount) OperationType() OperationType {
	return OperationTypeCreateAccount
}

func (op *CreateAccount) marshalBody(e *xdr.Encoder) error {
	dest, err := parseAccountAddress(op.Destination, false)
	if err != nil {
		return err
	}
	if err := dest.marshalAccountID(e); err != nil {
		return err
	}
	return e.Int64(op.StartingBalance)
}

func (op *CreateAccount) unmarshalBody(d *xdr.Decoder) error {
	dest, err := unmarshalAccountID(d)
	if err != nil {
		return err
	}
	op.Destination = dest.String()
	op.StartingBalance, err = d.Int64()
	return err
}

// Payment sends an amount of an asset to a destination account
type Payment struct {
	Destination string // G or M strkey
	Asset       Asset
	Amount      int64
}

func (Payment) OperationType() OperationType {
	return OperationTypePayment
}

func (op *Payment) marshalBody(e *xdr.Encoder) error {
	dest, err := parseAccountAddress(op.Destination, true)
	if err != nil {
		return err
	}
	if err := dest.marshalMuxed(e); err != nil {
		return err
	}
	if err := op.Asset.MarshalXDR(e); err != nil {
		return err
	}
	return e.Int64(op.Amount)
}

func (op *Payment) unmarshalBody(d *xdr.Decoder) error {
	dest, err := unmarshalMuxed(d)
	if err != nil {
		return err
	}
	op.Destination = dest.String()
	if err := op.Asset.UnmarshalXDR(d); err != nil {
		return err
	}
	op.Amount, err = d.Int64()
	return err
}

// ChangeTrust creates, updates, or (with a zero limit) removes a trustline
type ChangeTrust struct {
	Line  Asset
	Limit int64
}

func (ChangeTrust) OperationType() OperationType {
	return OperationTypeChangeTrust
}

func (op *ChangeTrust) marshalBody(e *xdr.Encoder) error {
	if err := op.Line.MarshalXDR(e); err != nil {
		return err
	}
	return e.Int64(op.Limit)
}

func (op *ChangeTrust) unmarshalBody(d *xdr.Decoder) error {
	if err := op.Line.UnmarshalXDR(d); err != nil {
		return err
	}
	var err error
	op.Limit, err = d.Int64()
	return err
}

// ManageData sets (or with a nil value removes) a named data entry on the
// source account
type ManageData struct {
	Name  string
	Value []byte // nil removes the entry
}

func (ManageData) OperationType() OperationType {
	return OperationTypeManageData
}

func (op *ManageData) marshalBody(e *xdr.Encoder) error {
	if err := e.String(op.Name, ManageDataNameMaxBytes); err != nil {
		return err
	}
	if op.Value == nil {
		return e.Bool(false)
	}
	if err := e.Bool(true); err != nil {
		return err
	}
	return e.Opaque(op.Value, ManageDataValueMaxBytes)
}

func (op *ManageData) unmarshalBody(d *xdr.Decoder) error {
	var err error
	if op.Name, err = d.String(ManageDataNameMaxBytes); err != nil {
		return err
	}
	present, err := d.Bool()
	if err != nil {
		return err
	}
	if present {
		op.Value, err = d.Opaque(ManageDataValueMaxBytes)
		return err
	}
	op.Value = nil
	return nil
}

// BumpSequence raises the source account's sequence number
type BumpSequence struct {
	BumpTo int64
}

func (BumpSequence) OperationType() OperationType {
	return OperationTypeBumpSequence
}

func (op *BumpSequence) marshalBody(e *xdr.Encoder) error {
	return e.Int64(op.BumpTo)
}

func (op *BumpSequence) unmarshalBody(d *xdr.Decoder) error {
	var err error
	op.BumpTo, err = d.Int64()
	return err
}

// InvokeHostFunction invokes a contract host function. The function and its
// authorization entries are carried as opaque pre-encoded payloads; this
// library does not interpret contract call data.
type InvokeHostFunction struct {
	HostFunction []byte
	Auth         [][]byte
}

func (InvokeHostFunction) OperationType() OperationType {
	return OperationTypeInvokeHostFunction
}

func (op *InvokeHostFunction) marshalBody(e *xdr.Encoder) error {
	if err := e.Opaque(op.HostFunction, 0); err != nil {
		return err
	}
	if err := e.ArrayLen(len(op.Auth), 0); err != nil {
		return err
	}
	for _, entry := range op.Auth {
		if err := e.Opaque(entry, 0); err != nil {
			return err
		}
	}
	return nil
}

func (op *InvokeHostFunction) unmarshalBody(d *xdr.Decoder) error {
	var err error
	if op.HostFunction, err = d.Opaque(0); err != nil {
		return err
	}
	count, err := d.ArrayLen(0)
	if err != nil {
		return err
	}
	op.Auth = nil
	for i := 0; i < count; i++ {
		entry, err := d.Opaque(0)
		if err != nil {
			return err
		}
		op.Auth = append(op.Auth, entry)
	}
	return nil
}
