package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Sources is the result of gathering command line arguments.
type Sources struct {
	Tracks     []string
	Activities []string
}

// Extension returns the lower case extension of name. A trailing gzip suffix
// is skipped, so "a.GPX.gz" yields ".gpx".
func Extension(name string) string {
	name = strings.ToLower(name)
	name = strings.TrimSuffix(name, ".gz")
	return filepath.Ext(name)
}

// GatherFiles expands roots into the files whose extension is contained in
// extensions. Directories are scanned without recursion.
func GatherFiles(roots []string, extensions []string) ([]string, error) {
	accept := func(name string) bool {
		return slices.Contains(extensions, Extension(name))
	}

	appendAbsPath := func(paths []string, path string) ([]string, error) {
		path, err := filepath.Abs(path)
		if err != nil {
			return paths, fmt.Errorf("absolute path: %w", err)
		}
		return append(paths, path), nil
	}

	var paths []string

	for _, root := range roots {
		fi, err := os.Stat(root)
		if err != nil {
			return nil, err
		}

		if fi.Mode().IsRegular() {
			if !accept(fi.Name()) {
				continue
			}

			paths, err = appendAbsPath(paths, root)
			if err != nil {
				return nil, err
			}

		} else if fi.Mode().IsDir() {
			files, err := os.ReadDir(root)
			if err != nil {
				return nil, fmt.Errorf("read dir: %w", err)
			}

			for _, fi := range files {
				if !fi.Type().IsRegular() || !accept(fi.Name()) {
					continue
				}

				paths, err = appendAbsPath(paths, filepath.Join(root, fi.Name()))
				if err != nil {
					return nil, err
				}
			}
		} else {
			return nil, fmt.Errorf("path '%s' neither directory nor file", root)
		}
	}

	return paths, nil
}

// GatherSources splits args into track sources and activity exports. URLs are
// kept as given, files and directories are expanded. A file given explicitly
// with an unknown extension is kept so the loader can report it.
func GatherSources(args []string, trackExtensions, activityExtensions []string) (Sources, error) {
	var src Sources

	for _, arg := range args {
		lower := strings.ToLower(arg)
		if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
			src.Tracks = append(src.Tracks, arg)
			continue
		}

		fi, err := os.Stat(arg)
		if err != nil {
			return src, err
		}

		if fi.Mode().IsRegular() && slices.Contains(activityExtensions, Extension(arg)) {
			src.Activities = append(src.Activities, arg)
			continue
		}

		if fi.Mode().IsRegular() {
			src.Tracks = append(src.Tracks, arg)
			continue
		}

		tracks, err := GatherFiles([]string{arg}, trackExtensions)
		if err != nil {
			return src, err
		}
		src.Tracks = append(src.Tracks, tracks...)

		activities, err := GatherFiles([]string{arg}, activityExtensions)
		if err != nil {
			return src, err
		}
		src.Activities = append(src.Activities, activities...)
	}

	return src, nil
}
