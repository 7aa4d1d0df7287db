package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/viant/afs"

	"github.com/viant/pyinspect/pygraph"
)

// HasFileWithSuffixes reports whether dirPath directly contains a file
// whose name carries one of inclusionSuffix but none of exclusionSuffix,
// used by InspectPackages to decide whether a directory is a Python
// package worth inspecting.
func HasFileWithSuffixes(ctx context.Context, dirPath string, inclusionSuffix, exclusionSuffix []string) (bool, error) {
	fs := afs.New()
	entries, err := fs.List(ctx, dirPath)
	if err != nil {
		return false, err
	}
outer:
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		for _, suffix := range inclusionSuffix {
			if !strings.HasSuffix(name, suffix) {
				continue
			}
			for _, exclusion := range exclusionSuffix {
				if strings.HasSuffix(name, exclusion) {
					continue outer
				}
			}
			return true, nil
		}
	}
	return false, nil
}

// ReadAssetsRecursively walks packageDir through afs, collecting every file
// that does not carry one of skipExt as a pygraph.Asset. It stops recursing
// into a subdirectory that itself has source files unless isRoot is true,
// mirroring the teacher's "don't swallow nested packages' assets" rule.
func ReadAssetsRecursively(ctx context.Context, packageDir string, isRoot bool, importPath func(relative string) string, skipExt ...string) ([]*pygraph.Asset, error) {
	fs := afs.New()
	entries, err := fs.List(ctx, packageDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", packageDir, err)
	}

	var assets []*pygraph.Asset
	var subFolders []string
	var hasSourceFiles bool

outer:
	for _, entry := range entries {
		name := entry.Name()
		if name == "." || name == ".." {
			continue
		}
		if entry.IsDir() {
			subFolders = append(subFolders, name)
			continue
		}
		for _, ext := range skipExt {
			if strings.HasSuffix(name, "."+ext) {
				hasSourceFiles = true
				continue outer
			}
		}

		filePath := filepath.Join(packageDir, name)
		content, err := fs.DownloadWithURL(ctx, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read asset %s: %w", filePath, err)
		}
		assets = append(assets, &pygraph.Asset{
			Path:       filePath,
			ImportPath: importPath(packageDir),
			Content:    content,
		})
	}

	if hasSourceFiles && !isRoot {
		return []*pygraph.Asset{}, nil
	}
	for _, subFolder := range subFolders {
		subAssets, err := ReadAssetsRecursively(ctx, filepath.Join(packageDir, subFolder), false, importPath, skipExt...)
		if err != nil {
			return nil, fmt.Errorf("failed to read assets in subfolder %s: %w", subFolder, err)
		}
		assets = append(assets, subAssets...)
	}

	return assets, nil
}
