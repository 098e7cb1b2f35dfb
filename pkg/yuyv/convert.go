package yuyv

import (
	"fmt"
	"image/color"

	"github.com/prothen/ros2webrtc/pkg/source"
)

// SizeMismatchError reports a frame whose geometry differs from the
// plan the converter was built with. The single-resolution-per-run
// assumption is a precondition, not something to recover from.
type SizeMismatchError struct {
	PlanWidth, PlanHeight int
	Width, Height         int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("frame is %dx%d, conversion plan was built for %dx%d",
		e.Width, e.Height, e.PlanWidth, e.PlanHeight)
}

// Converter turns frames into packed 4:2:2 buffers through a fixed
// plan. Both the triplet scratch buffer and the output buffer are
// allocated once and reused, so a Converter is not safe for
// concurrent use.
type Converter struct {
	plan *Plan
	yuv  []byte
	out  []byte
}

func NewConverter(plan *Plan) *Converter {
	return &Converter{
		plan: plan,
		yuv:  make([]byte, plan.w*plan.h*3),
		out:  make([]byte, plan.BufferSize()),
	}
}

// Convert repacks one frame. The returned buffer is owned by the
// converter and overwritten by the next call.
func (c *Converter) Convert(f source.Frame) ([]byte, error) {
	if f.Width != c.plan.w || f.Height != c.plan.h {
		return nil, &SizeMismatchError{
			PlanWidth: c.plan.w, PlanHeight: c.plan.h,
			Width: f.Width, Height: f.Height,
		}
	}
	if err := c.toTriplets(f); err != nil {
		return nil, err
	}
	for i, src := range c.plan.srcY {
		c.out[c.plan.dstY[i]] = c.yuv[src]
	}
	for i, src := range c.plan.srcU {
		c.out[c.plan.dstU[i]] = c.yuv[src]
	}
	for i, src := range c.plan.srcV {
		c.out[c.plan.dstV[i]] = c.yuv[src]
	}
	return c.out, nil
}

// toTriplets converts the frame pixels into the flattened
// Y/Cb/Cr-per-pixel intermediate inside the scratch buffer.
func (c *Converter) toTriplets(f source.Frame) error {
	bpp := f.Format.BytesPerPixel()
	if bpp == 0 {
		return fmt.Errorf("unsupported pixel format %q", f.Format.String())
	}
	if want := f.Width * f.Height * bpp; len(f.Data) != want {
		return fmt.Errorf("frame payload is %d bytes, %s %dx%d needs %d",
			len(f.Data), f.Format, f.Width, f.Height, want)
	}
	switch f.Format {
	case source.FormatYUV:
		copy(c.yuv, f.Data)
	case source.FormatRGBA:
		for i, j := 0, 0; i < len(f.Data); i, j = i+4, j+3 {
			y, cb, cr := color.RGBToYCbCr(f.Data[i], f.Data[i+1], f.Data[i+2])
			c.yuv[j], c.yuv[j+1], c.yuv[j+2] = y, cb, cr
		}
	case source.FormatBGR:
		for i, j := 0, 0; i < len(f.Data); i, j = i+3, j+3 {
			y, cb, cr := color.RGBToYCbCr(f.Data[i+2], f.Data[i+1], f.Data[i])
			c.yuv[j], c.yuv[j+1], c.yuv[j+2] = y, cb, cr
		}
	default:
		return fmt.Errorf("unsupported pixel format %q", f.Format.String())
	}
	return nil
}
