package theme

import (
	"path"

	"github.com/openlcd/go-sm360/device"
	"github.com/openlcd/go-sm360/protocol"
)

// Storage roots the device searches for video files, in fallback order.
// A freshly pushed file lands in /tmp first, survives in /root after an
// install, and ships on the SD card with vendor themes.
const (
	TmpRoot    = "/tmp/video"
	RootRoot   = "/root/video"
	SDCardRoot = "/mnt/SDCARD/video"
)

// Candidates builds the ordered (selector, path) fallback set for a video
// filename: temporary storage, then the home directory, then the SD card.
// The filename is the bare name, not a path; any directory part is dropped.
func Candidates(filename string) []device.Candidate {
	name := path.Base(filename)
	return []device.Candidate{
		{Selector: protocol.PathTmp, Path: path.Join(TmpRoot, name)},
		{Selector: protocol.PathRoot, Path: path.Join(RootRoot, name)},
		{Selector: protocol.PathSDCard, Path: path.Join(SDCardRoot, name)},
	}
}

// CandidatesForPath builds a single-entry candidate set for a fully
// resolved device-side path, choosing the selector from the path's root.
// Paths outside the known roots get the full fallback set for their
// filename instead.
func CandidatesForPath(devicePath string) []device.Candidate {
	for _, root := range []struct {
		prefix   string
		selector byte
	}{
		{TmpRoot, protocol.PathTmp},
		{RootRoot, protocol.PathRoot},
		{SDCardRoot, protocol.PathSDCard},
	} {
		if path.Dir(devicePath) == root.prefix {
			return []device.Candidate{{Selector: root.selector, Path: devicePath}}
		}
	}
	return Candidates(devicePath)
}
