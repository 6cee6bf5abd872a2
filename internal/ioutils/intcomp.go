// Package ioutils provides length-prefixed, integer-compressed binary
// sections for model serialization.
package ioutils

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ronanh/intcomp"
)

// CompressAndWriteUints32 compresses a slice of uint32 and writes it to w,
// prefixed with the compressed word count.
func CompressAndWriteUints32(w io.Writer, input []uint32) error {
	buffer := intcomp.CompressUint32(input, nil)
	if err := binary.Write(w, binary.LittleEndian, uint64(len(buffer))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, buffer)
}

// ReadAndDecompressUints32 reads a compressed slice of uint32 from r and
// decompresses it. limit bounds the compressed word count a section may
// claim, protecting against corrupted length prefixes.
func ReadAndDecompressUints32(r io.Reader, limit uint64) ([]uint32, error) {
	var length uint64
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return nil, err
	}
	if length > limit {
		return nil, errors.New("invalid section length")
	}
	buffer := make([]uint32, length)
	if err := binary.Read(r, binary.LittleEndian, buffer); err != nil {
		return nil, err
	}
	return intcomp.UncompressUint32(buffer, nil), nil
}
