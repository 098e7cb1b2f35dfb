package v4l2

import "fmt"

// Format is the negotiated device output format. It is set once
// during negotiation and immutable afterwards.
type Format struct {
	Width        uint32
	Height       uint32
	PixelFormat  uint32
	Field        uint32
	BytesPerLine uint32
	SizeImage    uint32
}

// NewFormat returns the packed 4:2:2 output format for the given
// geometry: two bytes per pixel, no interlacing.
func NewFormat(w, h int) Format {
	return Format{
		Width:        uint32(w),
		Height:       uint32(h),
		PixelFormat:  PixFmtYUYV,
		Field:        fieldNone,
		BytesPerLine: uint32(w) * 2,
		SizeImage:    uint32(w) * uint32(h) * 2,
	}
}

func (f Format) String() string {
	return fmt.Sprintf("%dx%d %s bpl=%d size=%d",
		f.Width, f.Height, FourccString(f.PixelFormat), f.BytesPerLine, f.SizeImage)
}
