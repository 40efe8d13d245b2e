package theme

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Resolutions are the panel variants a theme collection is organized by,
// named after the vendor's folder convention (width x height, with an r/s
// suffix where two panels share a size).
var Resolutions = []string{"240320", "320320", "480480r", "480480s", "720720", "8001280"}

// Theme is one installable theme found in a collection.
type Theme struct {
	// Name is the video filename without extension
	Name string

	// VideoPath is the host-side path of the .mp4 file
	VideoPath string

	// DescriptorPath is the host-side path of the serialized descriptor,
	// empty when the theme ships without one
	DescriptorPath string

	// PreviewPath is the host-side path of the preview image, empty when
	// the theme ships without one
	PreviewPath string
}

// Library lists themes from a host-side collection directory laid out as
// <root>/<resolution>/<name>.mp4 with optional sidecar descriptor and
// preview files.
type Library struct {
	fs   afero.Fs
	root string
}

// NewLibrary creates a Library over the host filesystem.
func NewLibrary(root string) *Library {
	return NewLibraryFs(afero.NewOsFs(), root)
}

// NewLibraryFs creates a Library over an arbitrary filesystem.
func NewLibraryFs(fs afero.Fs, root string) *Library {
	return &Library{fs: fs, root: root}
}

// List returns the themes available for one resolution folder, sorted by
// name. A missing folder is an error; an empty folder is not.
func (l *Library) List(resolution string) ([]Theme, error) {
	dir := filepath.Join(l.root, resolution)
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list themes in %s: %w", dir, err)
	}

	var themes []Theme
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".mp4") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		theme := Theme{
			Name:      name,
			VideoPath: filepath.Join(dir, entry.Name()),
		}
		theme.DescriptorPath = l.sidecar(dir, name, ".turtheme")
		theme.PreviewPath = l.firstSidecar(dir, name, ".png", ".jpg", ".gif")
		themes = append(themes, theme)
	}

	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes, nil
}

// Find returns the named theme for a resolution.
func (l *Library) Find(resolution, name string) (Theme, error) {
	themes, err := l.List(resolution)
	if err != nil {
		return Theme{}, err
	}
	for _, t := range themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("theme %q not found under %s", name, filepath.Join(l.root, resolution))
}

// VideoPathFor resolves the device-side video path for a theme: from its
// descriptor when one exists, otherwise by the vendor path convention.
func (l *Library) VideoPathFor(t Theme) (string, error) {
	if t.DescriptorPath != "" {
		descriptor, err := afero.ReadFile(l.fs, t.DescriptorPath)
		if err != nil {
			return "", fmt.Errorf("read descriptor %s: %w", t.DescriptorPath, err)
		}
		if devicePath, err := ExtractVideoPath(descriptor); err == nil {
			return devicePath, nil
		}
		// descriptor present but pathless, fall through to the convention
	}
	return SDCardRoot + "/" + filepath.Base(t.VideoPath), nil
}

// sidecar returns the path of a same-named sidecar file, empty if absent.
func (l *Library) sidecar(dir, name, ext string) string {
	p := filepath.Join(dir, name+ext)
	if ok, err := afero.Exists(l.fs, p); err == nil && ok {
		return p
	}
	return ""
}

// firstSidecar returns the first existing sidecar among the extensions.
func (l *Library) firstSidecar(dir, name string, exts ...string) string {
	for _, ext := range exts {
		if p := l.sidecar(dir, name, ext); p != "" {
			return p
		}
	}
	return ""
}
