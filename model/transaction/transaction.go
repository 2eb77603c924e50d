// Package transaction carries the signed transaction envelope across the
// VM boundary. The raw transaction bytes are the payload the sender's
// signature covers: they travel through this package as an opaque blob and
// are re-emitted verbatim on encode. Re-encoding a decoded structure is
// never byte-stable across implementations, so regenerating the blob would
// silently invalidate the signature's coverage.
package transaction

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// SignedTransaction field numbers; part of the wire compatibility contract.
const (
	fieldRawTxnBytes     = protowire.Number(1) // bytes, signature-covered payload
	fieldSenderPublicKey = protowire.Number(2) // bytes
	fieldSenderSignature = protowire.Number(3) // bytes
)

// ErrMissingRawTxn reports an envelope without the signature-covered
// payload.
var ErrMissingRawTxn = errors.New("signed transaction has no raw transaction bytes")

// SignedTransaction is a sender-signed transaction envelope. The raw
// transaction payload is deliberately opaque: the type offers no structural
// accessors that could be used to decode and regenerate it.
type SignedTransaction struct {
	rawTxn    []byte
	publicKey []byte
	signature []byte
}

// NewSignedTransaction builds an envelope around an already-serialized raw
// transaction. Ownership of all three slices transfers to the value; the
// caller must not mutate them afterwards.
func NewSignedTransaction(rawTxn, publicKey, signature []byte) (SignedTransaction, error) {
	if len(rawTxn) == 0 {
		return SignedTransaction{}, ErrMissingRawTxn
	}
	return SignedTransaction{
		rawTxn:    rawTxn,
		publicKey: publicKey,
		signature: signature,
	}, nil
}

// RawTxnBytes returns the signature-covered payload exactly as received.
// The returned slice must not be mutated.
func (t SignedTransaction) RawTxnBytes() []byte {
	return t.rawTxn
}

// SenderPublicKey returns the sender's public key bytes.
func (t SignedTransaction) SenderPublicKey() []byte {
	return t.publicKey
}

// SenderSignature returns the signature over the raw transaction bytes.
func (t SignedTransaction) SenderSignature() []byte {
	return t.signature
}

// Marshal encodes the envelope. The raw transaction blob is copied into the
// output verbatim.
func (t SignedTransaction) Marshal() ([]byte, error) {
	if len(t.rawTxn) == 0 {
		return nil, ErrMissingRawTxn
	}
	var buf []byte
	buf = protowire.AppendTag(buf, fieldRawTxnBytes, protowire.BytesType)
	buf = protowire.AppendBytes(buf, t.rawTxn)
	if len(t.publicKey) > 0 {
		buf = protowire.AppendTag(buf, fieldSenderPublicKey, protowire.BytesType)
		buf = protowire.AppendBytes(buf, t.publicKey)
	}
	if len(t.signature) > 0 {
		buf = protowire.AppendTag(buf, fieldSenderSignature, protowire.BytesType)
		buf = protowire.AppendBytes(buf, t.signature)
	}
	return buf, nil
}

// Unmarshal decodes an envelope. Unknown fields are skipped for forward
// compatibility; the raw transaction payload is stored without
// interpretation.
func Unmarshal(data []byte) (SignedTransaction, error) {
	var t SignedTransaction
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return SignedTransaction{}, fmt.Errorf("signed transaction: malformed tag: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch num {
		case fieldRawTxnBytes, fieldSenderPublicKey, fieldSenderSignature:
			if typ != protowire.BytesType {
				return SignedTransaction{}, fmt.Errorf("signed transaction: field %d: unexpected wire type %d", num, typ)
			}
			payload, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return SignedTransaction{}, fmt.Errorf("signed transaction: field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			// Copy, so the envelope does not alias the caller's buffer.
			owned := make([]byte, len(payload))
			copy(owned, payload)
			switch num {
			case fieldRawTxnBytes:
				t.rawTxn = owned
			case fieldSenderPublicKey:
				t.publicKey = owned
			case fieldSenderSignature:
				t.signature = owned
			}
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return SignedTransaction{}, fmt.Errorf("signed transaction: malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}

	if len(t.rawTxn) == 0 {
		return SignedTransaction{}, ErrMissingRawTxn
	}
	return t, nil
}
