//go:build linux

package v4l2

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/videodev2.h

const (
	bufTypeVideoOutput = 2
	fieldNone          = 1
)

// PixFmtYUYV is the packed 4:2:2 fourcc 'YUYV'.
const PixFmtYUYV = uint32('Y') | uint32('U')<<8 | uint32('Y')<<16 | uint32('V')<<24

// v4l2_capability has size 104 bytes on all architectures.
type v4l2Capability struct {
	driver       [16]byte
	card         [32]byte
	busInfo      [32]byte
	version      uint32
	capabilities uint32
	deviceCaps   uint32
	reserved     [3]uint32
}

// v4l2_pix_format has size 48 bytes; 152 bytes of padding follow it
// inside the v4l2_format union.
type v4l2PixFormat struct {
	width        uint32
	height       uint32
	pixelformat  uint32
	field        uint32
	bytesperline uint32
	sizeimage    uint32
	colorspace   uint32
	priv         uint32
	flags        uint32
	ycbcrEnc     uint32
	quantization uint32
	xferFunc     uint32
}

// FourccString renders a pixel format code as its four character tag.
func FourccString(f uint32) string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

func cstring(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
