package source

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Wire layout of one published frame, big-endian:
//
//	0  magic   "IMG0"
//	4  width   uint32
//	8  height  uint32
//	12 format  fourcc uint32
//	16 payload width*height*bpp bytes
const (
	frameMagic  = uint32('I')<<24 | uint32('M')<<16 | uint32('G')<<8 | uint32('0')
	headerSize  = 16
	maxFrameDim = 1 << 14
)

var (
	ErrBadMagic  = errors.New("frame message has no magic prefix")
	ErrTruncated = errors.New("frame message is truncated")
)

// DecodeFrame parses one publisher message. The returned frame
// aliases msg, it is only valid until the next read.
func DecodeFrame(msg []byte) (Frame, error) {
	if len(msg) < headerSize {
		return Frame{}, ErrTruncated
	}
	if binary.BigEndian.Uint32(msg) != frameMagic {
		return Frame{}, ErrBadMagic
	}
	w := binary.BigEndian.Uint32(msg[4:])
	h := binary.BigEndian.Uint32(msg[8:])
	format := PixelFormat(binary.BigEndian.Uint32(msg[12:]))
	if w == 0 || h == 0 || w > maxFrameDim || h > maxFrameDim {
		return Frame{}, fmt.Errorf("frame geometry %dx%d is out of range", w, h)
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return Frame{}, fmt.Errorf("unknown pixel format %q", format.String())
	}
	payload := msg[headerSize:]
	if want := int(w) * int(h) * bpp; len(payload) != want {
		return Frame{}, fmt.Errorf("frame payload is %d bytes, %s %dx%d needs %d",
			len(payload), format, w, h, want)
	}
	return Frame{Width: int(w), Height: int(h), Format: format, Data: payload}, nil
}

// EncodeFrame renders a frame into a publisher message.
func EncodeFrame(f Frame) ([]byte, error) {
	bpp := f.Format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("unknown pixel format %q", f.Format.String())
	}
	if want := f.Width * f.Height * bpp; len(f.Data) != want {
		return nil, fmt.Errorf("frame payload is %d bytes, %s %dx%d needs %d",
			len(f.Data), f.Format, f.Width, f.Height, want)
	}
	msg := make([]byte, headerSize+len(f.Data))
	binary.BigEndian.PutUint32(msg, frameMagic)
	binary.BigEndian.PutUint32(msg[4:], uint32(f.Width))
	binary.BigEndian.PutUint32(msg[8:], uint32(f.Height))
	binary.BigEndian.PutUint32(msg[12:], uint32(f.Format))
	copy(msg[headerSize:], f.Data)
	return msg, nil
}
