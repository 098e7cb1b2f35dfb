package v4l2

import "strings"

// Caps is a bitset of device capability flags.
type Caps uint32

const (
	CapVideoCapture Caps = 0x00000001
	CapReadWrite    Caps = 0x01000000
	CapStreaming    Caps = 0x04000000
)

func (c Caps) Has(flags Caps) bool { return c&flags == flags }

func (c Caps) String() string {
	var names []string
	if c.Has(CapVideoCapture) {
		names = append(names, "video_capture")
	}
	if c.Has(CapReadWrite) {
		names = append(names, "read_write")
	}
	if c.Has(CapStreaming) {
		names = append(names, "streaming")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
