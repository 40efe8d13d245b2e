package theme

import (
	"errors"
	"regexp"
)

// ErrNoVideoPath is returned when a descriptor contains no recognizable
// device-side video path.
var ErrNoVideoPath = errors.New("no video path in descriptor")

// Descriptor path patterns, most specific first. Vendor descriptors embed
// the device-side path as /mnt/SDCARD/video/themeNN.mp4; third-party theme
// packs use free-form names under the same root.
var videoPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/mnt/SDCARD/video/theme\d{2}\.mp4`),
	regexp.MustCompile(`/mnt/SDCARD/video/\w+\.mp4`),
	regexp.MustCompile(`/mnt/[^"\x00]+\.mp4`),
}

// ExtractVideoPath scans a serialized theme descriptor for the device-side
// video path. The descriptor format is an opaque vendor serialization; the
// path string is the only field the driver consumes, so it is located by
// pattern rather than by parsing the whole structure.
func ExtractVideoPath(descriptor []byte) (string, error) {
	for _, pattern := range videoPathPatterns {
		if match := pattern.Find(descriptor); match != nil {
			return string(match), nil
		}
	}
	return "", ErrNoVideoPath
}
