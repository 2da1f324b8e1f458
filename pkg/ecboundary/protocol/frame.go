package protocol

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

// MaxBuffers bounds the buffer count of a frame.
const MaxBuffers = 16

const (
	statusOK    byte = 0
	statusError byte = 1
)

// ErrMalformedFrame is returned for frames that are truncated, carry
// trailing bytes, or declare impossible counts.
var ErrMalformedFrame = errors.New("malformed boundary frame")

// MarshalBinary encodes the request frame.
func (r *Request) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := buf.WriteByte(byte(r.Curve)); err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}
	if err := buf.WriteByte(byte(r.Op)); err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}
	if err := writeBuffers(buf, r.Buffers); err != nil {
		return nil, errors.Wrap(err, "marshal request")
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a request frame. The tag byte must name a
// supported curve; the operation byte is checked by the handler.
func (r *Request) UnmarshalBinary(data []byte) error {
	rd := bytes.NewReader(data)
	var head [2]byte
	if _, err := io.ReadFull(rd, head[:]); err != nil {
		return errors.Wrapf(ErrMalformedFrame, "request header: %v", err)
	}
	tag, err := curve.ParseTag(head[0])
	if err != nil {
		return err
	}
	bufs, err := readBuffers(rd)
	if err != nil {
		return errors.Wrap(err, "unmarshal request")
	}
	if err := expectEOF(rd); err != nil {
		return err
	}
	r.Curve = tag
	r.Op = Operation(head[1])
	r.Buffers = bufs
	return nil
}

// MarshalBinary encodes a successful response frame.
func (r *Response) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := buf.WriteByte(statusOK); err != nil {
		return nil, errors.Wrap(err, "marshal response")
	}
	if err := writeBuffers(buf, r.Buffers); err != nil {
		return nil, errors.Wrap(err, "marshal response")
	}
	return buf.Bytes(), nil
}

// MarshalError encodes a failed response frame for err.
func MarshalError(err error) ([]byte, error) {
	if err == nil {
		return nil, errors.New("marshal error frame: nil error")
	}
	msg := []byte(err.Error())
	buf := new(bytes.Buffer)
	buf.WriteByte(statusError)
	buf.WriteByte(byte(KindOf(err)))
	if werr := binary.Write(buf, binary.BigEndian, uint32(len(msg))); werr != nil {
		return nil, errors.Wrap(werr, "marshal error frame")
	}
	buf.Write(msg)
	return buf.Bytes(), nil
}

// UnmarshalResponse decodes a response frame. An error frame is returned as
// an error matching its kind's sentinel; the Response is then nil.
func UnmarshalResponse(data []byte) (*Response, error) {
	rd := bytes.NewReader(data)
	status, err := rd.ReadByte()
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedFrame, "response status: %v", err)
	}
	switch status {
	case statusOK:
		bufs, err := readBuffers(rd)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal response")
		}
		if err := expectEOF(rd); err != nil {
			return nil, err
		}
		return &Response{Buffers: bufs}, nil
	case statusError:
		kind, err := rd.ReadByte()
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedFrame, "error kind: %v", err)
		}
		msg, err := readChunk(rd)
		if err != nil {
			return nil, errors.Wrap(err, "unmarshal error frame")
		}
		if err := expectEOF(rd); err != nil {
			return nil, err
		}
		return nil, RemoteError(Kind(kind), string(msg))
	default:
		return nil, errors.Wrapf(ErrMalformedFrame, "response status %d", status)
	}
}

func writeBuffers(w *bytes.Buffer, bufs [][]byte) error {
	if len(bufs) > MaxBuffers {
		return errors.Wrapf(ErrMalformedFrame, "%d buffers exceed %d", len(bufs), MaxBuffers)
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(bufs))); err != nil {
		return err
	}
	for _, b := range bufs {
		if err := binary.Write(w, binary.BigEndian, uint32(len(b))); err != nil {
			return err
		}
		w.Write(b)
	}
	return nil
}

func readBuffers(rd *bytes.Reader) ([][]byte, error) {
	var count uint32
	if err := binary.Read(rd, binary.BigEndian, &count); err != nil {
		return nil, errors.Wrapf(ErrMalformedFrame, "buffer count: %v", err)
	}
	if count > MaxBuffers {
		return nil, errors.Wrapf(ErrMalformedFrame, "%d buffers exceed %d", count, MaxBuffers)
	}
	bufs := make([][]byte, count)
	for i := range bufs {
		b, err := readChunk(rd)
		if err != nil {
			return nil, errors.Wrapf(err, "buffer %d", i)
		}
		bufs[i] = b
	}
	return bufs, nil
}

func readChunk(rd *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(rd, binary.BigEndian, &n); err != nil {
		return nil, errors.Wrapf(ErrMalformedFrame, "length prefix: %v", err)
	}
	if int64(n) > int64(rd.Len()) {
		return nil, errors.Wrapf(ErrMalformedFrame, "length %d exceeds %d remaining", n, rd.Len())
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(rd, b); err != nil {
		return nil, errors.Wrapf(ErrMalformedFrame, "payload: %v", err)
	}
	return b, nil
}

func expectEOF(rd *bytes.Reader) error {
	if rd.Len() != 0 {
		return errors.Wrapf(ErrMalformedFrame, "%d trailing bytes", rd.Len())
	}
	return nil
}
