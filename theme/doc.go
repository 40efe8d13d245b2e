// Package theme handles the theme packages distributed for the SM360 panel:
// locating them on disk by panel resolution, extracting the device-side
// video path from a serialized theme descriptor, and producing the ordered
// path candidate set the device's load fallback expects.
//
// The package never talks to the device. It feeds the device package with
// names and candidate lists.
package theme
