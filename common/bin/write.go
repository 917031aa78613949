package bin

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

func writeFull(w io.Writer, bs []byte) (int64, error) {
	n, err := w.Write(bs)
	if err != nil {
		return int64(n), errors.WithStack(err)
	}
	if n != len(bs) {
		return int64(n), errors.WithStack(ErrInvalidLength)
	}
	return int64(n), nil
}

// WriteUint64 writes the uint64 number to the writer
func WriteUint64(w io.Writer, num uint64) (int64, error) {
	BNum := make([]byte, 8)
	binary.LittleEndian.PutUint64(BNum, num)
	return writeFull(w, BNum)
}

// WriteUint32 writes the uint32 number to the writer
func WriteUint32(w io.Writer, num uint32) (int64, error) {
	BNum := make([]byte, 4)
	binary.LittleEndian.PutUint32(BNum, num)
	return writeFull(w, BNum)
}

// WriteUint16 writes the uint16 number to the writer
func WriteUint16(w io.Writer, num uint16) (int64, error) {
	BNum := make([]byte, 2)
	binary.LittleEndian.PutUint16(BNum, num)
	return writeFull(w, BNum)
}

// WriteUint8 writes the uint8 number to the writer
func WriteUint8(w io.Writer, num uint8) (int64, error) {
	return writeFull(w, []byte{num})
}

// WriteBytes writes the byte array with a var-length prefix
// (1 byte below 254, 0xFE + uint16, 0xFF + uint32)
func WriteBytes(w io.Writer, bs []byte) (int64, error) {
	var wrote int64
	var n int64
	var err error
	switch {
	case len(bs) < 254:
		n, err = WriteUint8(w, uint8(len(bs)))
	case len(bs) < 65536:
		if n, err = WriteUint8(w, 254); err == nil {
			wrote += n
			n, err = WriteUint16(w, uint16(len(bs)))
		}
	default:
		if n, err = WriteUint8(w, 255); err == nil {
			wrote += n
			n, err = WriteUint32(w, uint32(len(bs)))
		}
	}
	wrote += n
	if err != nil {
		return wrote, err
	}
	n, err = writeFull(w, bs)
	wrote += n
	return wrote, err
}

// WriteString writes the string with the var-length-byte to the writer
func WriteString(w io.Writer, str string) (int64, error) {
	return WriteBytes(w, []byte(str))
}

// WriteBool writes the bool using a uint8 to the writer
func WriteBool(w io.Writer, b bool) (int64, error) {
	if b {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

// WriterToBytes return bytes from writer to
func WriterToBytes(w io.WriterTo) ([]byte, int64, error) {
	var buffer bytes.Buffer
	n, err := w.WriteTo(&buffer)
	if err != nil {
		return nil, n, errors.WithStack(err)
	}
	return buffer.Bytes(), n, nil
}

// MustWriterToBytes panics when the value cannot be serialized
func MustWriterToBytes(w io.WriterTo) []byte {
	bs, _, err := WriterToBytes(w)
	if err != nil {
		panic(err)
	}
	return bs
}
