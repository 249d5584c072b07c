// Package binaryserializer provides allocation-free helpers for reading and
// writing fixed-size integers to/from an io.Reader/io.Writer, given an
// explicit byte order. It mirrors the shape of the teacher's own
// util/binaryserializer package: a handful of small Put/Get functions
// instead of reaching for encoding/binary.Write's reflection-based path on
// every hot serialisation loop (the signing hasher, run once per input per
// signature, is the hot path this exists for).
package binaryserializer

import (
	"encoding/binary"
	"io"
)

// PutUint16 writes v to w using the given byte order.
func PutUint16(w io.Writer, order binary.ByteOrder, v uint16) error {
	var buf [2]byte
	order.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// PutUint32 writes v to w using the given byte order.
func PutUint32(w io.Writer, order binary.ByteOrder, v uint32) error {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// PutUint64 writes v to w using the given byte order.
func PutUint64(w io.Writer, order binary.ByteOrder, v uint64) error {
	var buf [8]byte
	order.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// Uint16 reads a uint16 from r using the given byte order.
func Uint16(r io.Reader, order binary.ByteOrder) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint16(buf[:]), nil
}

// Uint32 reads a uint32 from r using the given byte order.
func Uint32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

// Uint64 reads a uint64 from r using the given byte order.
func Uint64(r io.Reader, order binary.ByteOrder) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint64(buf[:]), nil
}
