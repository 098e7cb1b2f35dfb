package source

// PixelFormat is the fourcc-style pixel encoding tag of a published frame.
type PixelFormat uint32

const (
	// FormatRGBA is 4 bytes per pixel, alpha ignored.
	FormatRGBA PixelFormat = 'R' | 'G'<<8 | 'B'<<16 | 'A'<<24
	// FormatBGR is 3 bytes per pixel in blue-green-red order.
	FormatBGR PixelFormat = 'B' | 'G'<<8 | 'R'<<16 | '3'<<24
	// FormatYUV is 3 bytes per pixel, already converted to
	// luma plus two chroma components.
	FormatYUV PixelFormat = 'Y' | 'U'<<8 | 'V'<<16 | '3'<<24
)

// BytesPerPixel returns the payload stride of the format, or 0 for
// an unknown format.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatRGBA:
		return 4
	case FormatBGR, FormatYUV:
		return 3
	}
	return 0
}

func (f PixelFormat) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

// Frame is one published image: row-major pixels with the stride
// implied by Format.
type Frame struct {
	Width  int
	Height int
	Format PixelFormat
	Data   []byte
}
