//go:build linux && (amd64 || arm64 || riscv64)

package v4l2

import "unsafe"

// IOCTL constants for 64-bit architectures. The format ioctls encode
// sizeof(struct v4l2_format), which is 208 here because the union is
// 8-byte aligned (v4l2_window carries pointers).
const (
	vidiocQuerycap = 0x80685600
	vidiocGFmt     = 0xc0d05604
	vidiocSFmt     = 0xc0d05605
)

// v4l2_format with the VIDIOC buffer type selector and the pix format
// member of its union; has size 208 bytes.
type v4l2Format struct {
	typ uint32
	_   uint32 // union alignment
	pix v4l2PixFormat
	_   [152]byte // tail of the 200-byte union
}

// Compile-time struct size assertions against the kernel ABI.
// Pattern: [0]struct{} = [actual - expected]struct{} fails if actual != expected.
var (
	_ [0]struct{} = [unsafe.Sizeof(v4l2Capability{}) - 104]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2PixFormat{}) - 48]struct{}{}
	_ [0]struct{} = [unsafe.Sizeof(v4l2Format{}) - 208]struct{}{}
	_ [0]struct{} = [unsafe.Offsetof(v4l2Format{}.pix) - 8]struct{}{}
)
