package repository

// Project describes the project a source file or package directory was
// found inside: its root, its kind, and a best-effort name.
type Project struct {
	RootPath     string // Absolute path to the project root directory
	Type         string // "python", "git", or "unknown"
	Name         string // Name from pyproject.toml/setup.py or the git origin URL, else the root directory name; empty when no marker was found
	RelativePath string // Path from project root to the inspected file/directory
}

// Repository describes the version-control repository (if any) containing
// a project.
type Repository struct {
	Kind   string
	Root   string
	Origin string
	Info   *Project
}
