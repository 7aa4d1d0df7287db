package repository

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
)

// Detector identifies project root folders and provides project-related
// information, grounded on the teacher's marker-file walk-up but narrowed
// to the markers a Python project and its surrounding VCS actually carry.
type Detector struct {
	markers []string
}

// New creates a new project detector instance.
func New() *Detector {
	return &Detector{
		markers: []string{
			"pyproject.toml",   // PEP 621 / Poetry / Flit projects
			"setup.py",         // setuptools projects
			"setup.cfg",        // setuptools projects (declarative)
			"requirements.txt", // plain pip projects
			"Pipfile",          // pipenv projects
			".git",             // generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and
// returns project info.
func (d *Detector) DetectProject(filePath string, baseURL ...string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)

	info := &Project{Type: "unknown", RootPath: absPath}
	if rootPath == "" && len(baseURL) > 0 && baseURL[0] != "" {
		info.RootPath = baseURL[0]
	} else if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if projectType != "" {
		info.Name = d.extractProjectName(info.RootPath, projectType)
	}

	return info, nil
}

// DetectRepository identifies the repository containing the given file
// path, preferring a git root over a bare language-marker root.
func (d *Detector) DetectRepository(filePath string) (*Repository, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	if gitRoot := d.findGitRoot(startDir); gitRoot != "" {
		repo := &Repository{Kind: "git", Root: gitRoot, Origin: d.extractGitOrigin(gitRoot)}
		if info, err := d.DetectProject(filePath); err == nil {
			repo.Info = info
		}
		return repo, nil
	}

	info, err := d.DetectProject(filePath)
	if err != nil {
		return nil, err
	}
	return &Repository{Kind: info.Type, Root: info.RootPath, Info: info}, nil
}

func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func (d *Detector) findGitRoot(startDir string) string {
	dir := startDir
	homeDir := os.Getenv("HOME")
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		if homeDir == parent {
			return ""
		}
		dir = parent
	}
	return ""
}

func (d *Detector) extractGitOrigin(gitRoot string) string {
	configPath := filepath.Join(gitRoot, ".git", "config")
	file, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	foundRemote := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `[remote "origin"]`) {
			foundRemote = true
			continue
		}
		if foundRemote && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}

// extractProjectName reads a project's config file through afs and falls
// back to the directory name when no name field is found. Only files present
// on the local filesystem are read: downloadIfExists checks os.Stat first.
func (d *Detector) extractProjectName(rootPath, projectType string) string {
	switch projectType {
	case "python":
		if name := extractPyProjectName(rootPath); name != "" {
			return name
		}
		if name := extractSetupPyName(rootPath); name != "" {
			return name
		}
		return filepath.Base(rootPath)
	case "git":
		return extractGitProjectName(rootPath)
	default:
		return filepath.Base(rootPath)
	}
}

var pyProjectNameRE = regexp.MustCompile(`(?:tool\.poetry|project)\s*\][\s\S]*?name\s*=\s*["']([^"']+)["']`)

func extractPyProjectName(rootPath string) string {
	data := downloadIfExists(filepath.Join(rootPath, "pyproject.toml"))
	if data == nil {
		return ""
	}
	matches := pyProjectNameRE.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

var setupPyNameRE = regexp.MustCompile(`name\s*=\s*["']([^"']+)["']`)

func extractSetupPyName(rootPath string) string {
	data := downloadIfExists(filepath.Join(rootPath, "setup.py"))
	if data == nil {
		return ""
	}
	matches := setupPyNameRE.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}

func extractGitProjectName(gitRoot string) string {
	configPath := filepath.Join(gitRoot, ".git", "config")
	if data := downloadIfExists(configPath); data != nil {
		scanner := bufio.NewScanner(strings.NewReader(string(data)))
		foundRemote := false
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if strings.Contains(line, `[remote "origin"]`) {
				foundRemote = true
				continue
			}
			if foundRemote && strings.HasPrefix(line, "url = ") {
				url := strings.TrimSuffix(strings.TrimPrefix(line, "url = "), ".git")
				parts := strings.Split(url, "/")
				if len(parts) > 0 {
					return parts[len(parts)-1]
				}
				break
			}
		}
	}
	return filepath.Base(gitRoot)
}

// downloadIfExists reads path through afs, returning nil rather than an
// error when the file is absent (the common case while probing markers).
func downloadIfExists(path string) []byte {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	fs := afs.New()
	data, err := fs.DownloadWithURL(context.Background(), path)
	if err != nil {
		return nil
	}
	return data
}

func determineProjectType(marker string) string {
	switch marker {
	case "pyproject.toml", "setup.py", "setup.cfg", "requirements.txt", "Pipfile":
		return "python"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
