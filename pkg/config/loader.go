package config

import (
	"errors"
	"os"

	"github.com/kkyr/fig"
)

const EnvPrefix = "ROS2WEBRTC"

// load loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file.
// Reads and puts environment variables with the prefix ROS2WEBRTC_.
// Params from the config should be in uppercase separated with _.
// Without an explicit path a missing file is not an error and
// defaults plus environment values are used.
func load(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs, ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, home+"/.ros2webrtc")
		}
	}
	err := fig.Load(config, fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
	if err != nil && path == "" && errors.Is(err, fig.ErrFileNotFound) {
		return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	return err
}
