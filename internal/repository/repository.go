package repository

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/estellalin21/cam-u/internal/config"
	"github.com/estellalin21/cam-u/internal/gitcmd"
	"github.com/pkg/errors"
)

// PromptFunc asks the operator for a value and returns the entered text.
type PromptFunc func(label string) (string, error)

// Repository represents the local working directory that backs the
// hosted pages: videos, player pages, QR images and git metadata all
// live under Root.
type Repository struct {
	Root    string
	git     gitcmd.Runner
	verbose bool
}

// New creates a Repository rooted at root, using git to run
// version-control commands.
func New(root string, git gitcmd.Runner, verbose bool) *Repository {
	return &Repository{Root: root, git: git, verbose: verbose}
}

func (r *Repository) VideosDir() string  { return filepath.Join(r.Root, config.VideosDirName) }
func (r *Repository) PagesDir() string   { return filepath.Join(r.Root, config.PagesDirName) }
func (r *Repository) QRCodesDir() string { return filepath.Join(r.Root, config.QRCodesDirName) }
func (r *Repository) PostersDir() string { return filepath.Join(r.Root, config.PostersDirName) }

// IsInitialized reports whether the working directory already carries
// git metadata.
func (r *Repository) IsInitialized() bool {
	fi, err := os.Stat(filepath.Join(r.Root, ".git"))
	return err == nil && fi.IsDir()
}

// Setup creates the working directory layout and, if the directory is
// not yet under version control, initializes git and LFS tracking.
// Running it against an initialized repository only ensures the
// subdirectories exist.
func (r *Repository) Setup() error {
	for _, dir := range []string{r.Root, r.VideosDir(), r.PagesDir(), r.QRCodesDir(), r.PostersDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}

	if r.IsInitialized() {
		return nil
	}

	if r.verbose {
		log.Printf("Initializing git repository in %s\n", r.Root)
	}

	if err := gitcmd.Init(r.git, r.Root); err != nil {
		return errors.Wrap(err, "failed to initialize repository")
	}
	if err := r.writeGitAttributes(); err != nil {
		return err
	}
	if err := gitcmd.LFSInstall(r.git, r.Root); err != nil {
		return errors.Wrap(err, "failed to install git lfs")
	}

	return nil
}

func (r *Repository) writeGitAttributes() error {
	var sb strings.Builder
	for _, pattern := range config.LFSPatterns {
		sb.WriteString(fmt.Sprintf("%s filter=lfs diff=lfs merge=lfs -text\n", pattern))
	}

	path := filepath.Join(r.Root, config.GitAttributesName)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return errors.Wrap(err, "failed to write .gitattributes")
	}
	return nil
}

// BaseURL resolves the public root address under which committed files
// become browsable. It derives the URL from remote.origin.url when one
// is configured, and falls back to prompting the operator otherwise.
func (r *Repository) BaseURL(prompt PromptFunc) (string, error) {
	remote, err := gitcmd.RemoteOriginURL(r.git, r.Root)
	if err == nil {
		if url, ok := DeriveBaseURL(remote); ok {
			if r.verbose {
				log.Printf("Derived hosting URL %s from remote %s\n", url, remote)
			}
			return url, nil
		}
	}

	if prompt == nil {
		return "", fmt.Errorf("no origin remote configured and no prompt available")
	}
	url, err := prompt("Enter the hosting pages URL (e.g. https://username.github.io/repo)")
	if err != nil {
		return "", errors.Wrap(err, "failed to read hosting URL")
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return "", fmt.Errorf("hosting URL must not be empty")
	}
	return strings.TrimRight(url, "/"), nil
}

// DeriveBaseURL rewrites a GitHub remote URL into its Pages form. The
// rewrite only understands github.com remotes; for anything else it
// returns false and the caller falls back to manual input.
func DeriveBaseURL(remote string) (string, bool) {
	url := strings.TrimSpace(remote)
	if !strings.Contains(url, "github.com") {
		return "", false
	}
	url = strings.TrimSuffix(url, ".git")
	if strings.HasPrefix(url, "git@github.com:") {
		url = "https://" + strings.TrimPrefix(url, "git@github.com:")
	}
	return strings.TrimRight(strings.ReplaceAll(url, "github.com", "github.io"), "/"), true
}
