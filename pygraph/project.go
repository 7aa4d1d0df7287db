package pygraph

import "path/filepath"

// Init rewrites every Module and Asset path under p to be relative to the
// project root, the way a consumer comparing results across machines
// expects, mirroring the teacher's Project.adjustRelativePath.
func (p *Project) Init() {
	if p.RootPath == "" {
		return
	}
	for _, pkg := range p.Packages {
		for _, mod := range pkg.Modules {
			if mod.Path == "" {
				continue
			}
			if rel, err := filepath.Rel(p.RootPath, mod.Path); err == nil {
				mod.Path = rel
			}
		}
		for _, asset := range pkg.Assets {
			if asset.Path == "" {
				continue
			}
			if rel, err := filepath.Rel(p.RootPath, asset.Path); err == nil {
				asset.Path = rel
			}
		}
	}
}
