package v4l2

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const moduleDir = "/sys/module/v4l2loopback"

// VerifyPrerequisites checks that the v4l2loopback kernel module is
// loaded and that the requested device index is among the indices the
// module was loaded with.
func VerifyPrerequisites(index int) error {
	return verifySetup(moduleDir, index)
}

func verifySetup(dir string, index int) error {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return &SetupError{Reason: fmt.Sprintf(
			"kernel module v4l2loopback is not loaded, try: sudo modprobe v4l2loopback video_nr=%d", index)}
	}
	raw, err := os.ReadFile(filepath.Join(dir, "parameters", "video_nr"))
	if err != nil {
		return &SetupError{Reason: "could not read v4l2loopback video_nr parameter", Err: err}
	}
	registered, err := parseVideoNr(string(raw))
	if err != nil {
		return &SetupError{Reason: "could not parse v4l2loopback video_nr parameter", Err: err}
	}
	for _, nr := range registered {
		if nr == index {
			return nil
		}
	}
	return &SetupError{Reason: fmt.Sprintf(
		"device %d is not in %v, check the modprobe video_nr parameter", index, registered)}
}

func parseVideoNr(raw string) ([]int, error) {
	var list []int
	for _, part := range strings.Split(strings.TrimSpace(raw), ",") {
		nr, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		list = append(list, nr)
	}
	return list, nil
}
