//go:build linux

package v4l2

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/prothen/ros2webrtc/pkg/logger"
	xos "github.com/prothen/ros2webrtc/pkg/os"
)

// Device is an exclusively held v4l2loopback output device.
type Device struct {
	index int
	path  string
	file  *os.File
	lock  *xos.Flock
	log   *logger.Logger

	Card   string
	Driver string

	caps   Caps
	format Format
}

// Open takes an exclusive read/write handle on /dev/video<index>.
// A file lock keeps two streamer processes off the same node.
func Open(index int, log *logger.Logger) (*Device, error) {
	path := fmt.Sprintf("/dev/video%d", index)
	lock, err := xos.NewFileLock(filepath.Join(os.TempDir(), fmt.Sprintf("ros2webrtc-video%d.lock", index)))
	if err != nil {
		return nil, &SetupError{Reason: "could not create the device lock file", Err: err}
	}
	if err := lock.TryLock(); err != nil {
		return nil, &SetupError{Reason: fmt.Sprintf("device %s is busy", path), Err: err}
	}
	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		_ = lock.Unlock()
		return nil, &SetupError{Reason: fmt.Sprintf("could not open %s", path), Err: err}
	}
	l := log.Extend(log.With().Str("device", path))
	return &Device{index: index, path: path, file: file, lock: lock, log: l}, nil
}

func ioctl(fd uintptr, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// QueryCapabilities issues VIDIOC_QUERYCAP and records the card and
// driver identifiers of the device.
func (d *Device) QueryCapabilities() (Caps, error) {
	var cp v4l2Capability
	if err := ioctl(d.file.Fd(), vidiocQuerycap, unsafe.Pointer(&cp)); err != nil {
		return 0, fmt.Errorf("querycap %s: %w", d.path, err)
	}
	d.caps = Caps(cp.capabilities)
	d.Card = cstring(cp.card[:])
	d.Driver = cstring(cp.driver[:])
	return d.caps, nil
}

// Format reads the current output format of the device.
func (d *Device) Format() (Format, error) {
	vf := v4l2Format{typ: bufTypeVideoOutput}
	if err := ioctl(d.file.Fd(), vidiocGFmt, unsafe.Pointer(&vf)); err != nil {
		return Format{}, fmt.Errorf("get format %s: %w", d.path, err)
	}
	return formatOf(vf.pix), nil
}

// SetFormat overwrites the device output format and returns the
// format the driver reports back.
func (d *Device) SetFormat(f Format) (Format, error) {
	vf := v4l2Format{typ: bufTypeVideoOutput}
	vf.pix.width = f.Width
	vf.pix.height = f.Height
	vf.pix.pixelformat = f.PixelFormat
	vf.pix.field = f.Field
	vf.pix.bytesperline = f.BytesPerLine
	vf.pix.sizeimage = f.SizeImage
	if err := ioctl(d.file.Fd(), vidiocSFmt, unsafe.Pointer(&vf)); err != nil {
		return Format{}, fmt.Errorf("set format %s: %w", d.path, err)
	}
	return formatOf(vf.pix), nil
}

// Negotiate queries the device capabilities, then replaces whatever
// format the device currently has with the requested one. A missing
// streaming or read/write capability is tolerated with a warning; a
// format the driver refuses to take verbatim is an error.
func (d *Device) Negotiate(want Format) error {
	caps, err := d.QueryCapabilities()
	if err != nil {
		return err
	}
	d.log.Debug().
		Str("card", d.Card).
		Str("driver", d.Driver).
		Str("caps", caps.String()).
		Msg("device capabilities")
	if !caps.Has(CapStreaming) || !caps.Has(CapReadWrite) {
		d.log.Warn().Str("caps", caps.String()).Msg("device lacks streaming/read-write capability")
	}

	current, err := d.Format()
	if err != nil {
		return err
	}
	d.log.Debug().Str("format", current.String()).Msg("current device format")

	got, err := d.SetFormat(want)
	if err != nil {
		return err
	}
	d.log.Debug().Str("format", got.String()).Msg("updated device format")
	if got != want {
		return &NegotiationError{Want: want, Got: got}
	}
	d.format = got
	return nil
}

// Write writes exactly one negotiated frame to the device.
func (d *Device) Write(p []byte) error {
	if len(p) != int(d.format.SizeImage) {
		return fmt.Errorf("frame is %d bytes, device expects %d", len(p), d.format.SizeImage)
	}
	n, err := d.file.Write(p)
	if err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return nil
}

// NegotiatedFormat returns the format set by Negotiate.
func (d *Device) NegotiatedFormat() Format { return d.format }

// Close releases the device handle and its lock.
func (d *Device) Close() error {
	err := d.file.Close()
	if lerr := d.lock.Unlock(); err == nil {
		err = lerr
	}
	return err
}

func (d *Device) String() string { return fmt.Sprintf("v4l2::%s", d.path) }

func formatOf(pix v4l2PixFormat) Format {
	return Format{
		Width:        pix.width,
		Height:       pix.height,
		PixelFormat:  pix.pixelformat,
		Field:        pix.field,
		BytesPerLine: pix.bytesperline,
		SizeImage:    pix.sizeimage,
	}
}
