package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainRecord = "atommap/record/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// RecordID computes the content-addressed ID of a record.
// Two records with the same identifier, notation, and indices share an ID,
// so a journal can recognise the same input across runs.
//
// The identifier and notation are hashed byte for byte, without the NFC
// normalization MarshalCanonical applies: identifiers that differ only in
// Unicode normalization are distinct records.
func RecordID(rec Record) (string, error) {
	indices, err := MarshalCanonical(rec.Indices)
	if err != nil {
		return "", fmt.Errorf("RecordID: failed to marshal indices: %w", err)
	}

	var buf bytes.Buffer
	writeField(&buf, rec.Identifier)
	writeField(&buf, rec.Notation)
	buf.Write(indices)
	return hashWithDomain(DomainRecord, buf.Bytes()), nil
}

// writeField writes s as <len>:<bytes> so adjacent fields cannot run together.
func writeField(buf *bytes.Buffer, s string) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
}

// MustRecordID is like RecordID but panics on error.
// Indices are ints, so marshaling cannot fail.
func MustRecordID(rec Record) string {
	id, err := RecordID(rec)
	if err != nil {
		panic(err)
	}
	return id
}
