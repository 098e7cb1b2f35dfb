package v4l2

import "testing"

func TestCapsHas(t *testing.T) {
	tests := []struct {
		caps  Caps
		flags Caps
		want  bool
	}{
		{CapVideoCapture | CapReadWrite | CapStreaming, CapStreaming, true},
		{CapVideoCapture | CapReadWrite | CapStreaming, CapReadWrite | CapStreaming, true},
		{CapVideoCapture, CapStreaming, false},
		{0, CapReadWrite, false},
	}
	for _, tc := range tests {
		if got := tc.caps.Has(tc.flags); got != tc.want {
			t.Errorf("%v.Has(%v) = %v, want %v", tc.caps, tc.flags, got, tc.want)
		}
	}
}

func TestCapsString(t *testing.T) {
	tests := []struct {
		caps Caps
		want string
	}{
		{0, "none"},
		{CapVideoCapture, "video_capture"},
		{CapVideoCapture | CapReadWrite | CapStreaming, "video_capture|read_write|streaming"},
	}
	for _, tc := range tests {
		if got := tc.caps.String(); got != tc.want {
			t.Errorf("got %q, want %q", got, tc.want)
		}
	}
}

func TestNewFormat(t *testing.T) {
	f := NewFormat(1280, 720)
	if f.PixelFormat != PixFmtYUYV {
		t.Errorf("pixel format %08x, want YUYV", f.PixelFormat)
	}
	if f.BytesPerLine != 2560 {
		t.Errorf("bytes per line %d, want 2560", f.BytesPerLine)
	}
	if f.SizeImage != 1280*720*2 {
		t.Errorf("image size %d, want %d", f.SizeImage, 1280*720*2)
	}
	if f.Field != fieldNone {
		t.Errorf("field %d, want progressive", f.Field)
	}
}

func TestFourccString(t *testing.T) {
	if got := FourccString(PixFmtYUYV); got != "YUYV" {
		t.Errorf("got %q, want YUYV", got)
	}
}
