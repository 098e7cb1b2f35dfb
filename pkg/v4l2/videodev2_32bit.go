//go:build linux && (386 || arm)

package v4l2

import "unsafe"

// IOCTL constants for 32-bit architectures; sizeof(struct v4l2_format)
// is 204 here, the union needs no extra alignment.
const (
	vidiocQuerycap = 0x80685600
	vidiocGFmt     = 0xc0cc5604
	vidiocSFmt     = 0xc0cc5605
)

type v4l2Format struct {
	typ uint32
	pix v4l2PixFormat
	_   [152]byte // tail of the 200-byte union
}

var (
	_ [0]struct{} = [unsafe.Sizeof(v4l2Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2PixFormat{}) - 48]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Format{}) - 204]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(v4l2Format{}.pix) - 4]struct{}{}
)
