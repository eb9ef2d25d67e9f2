// Package videoshare implements the share workflow: copy a video into
// a git-LFS backed repository, render a static player page for it,
// encode the page's public URL into a QR image, and commit the result.
// Publishing happens when the operator pushes and enables the hosting
// platform's pages feature; this package never pushes.
package videoshare

import (
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/estellalin21/cam-u/internal/config"
	"github.com/estellalin21/cam-u/internal/gitcmd"
	"github.com/estellalin21/cam-u/internal/page"
	"github.com/estellalin21/cam-u/internal/probe"
	"github.com/estellalin21/cam-u/internal/qr"
	"github.com/estellalin21/cam-u/internal/repository"
	"github.com/pkg/errors"
)

// Sharer runs the share workflow. The zero value is not usable; build
// one with NewSharer and override fields for testing.
type Sharer struct {
	Git    gitcmd.Runner
	Prober probe.Prober
	// Prompt is consulted when the hosting URL cannot be derived from
	// the repository remote. Leaving it nil makes that case an error.
	Prompt repository.PromptFunc
	Now    func() time.Time
}

// NewSharer creates a Sharer backed by the external git and ffmpeg
// binaries.
func NewSharer(verbose bool) *Sharer {
	return &Sharer{
		Git:    gitcmd.ExecRunner{},
		Prober: probe.NewFFmpegProber(verbose),
		Now:    time.Now,
	}
}

// Result describes the artifacts produced by one share.
type Result struct {
	VideoPath  string
	PagePath   string
	PosterPath string // empty when no poster frame was extracted
	PageURL    string
	QRPath     string
	Meta       *probe.Metadata // nil when probing failed
}

// Setup prepares the working directory without sharing anything.
func (s *Sharer) Setup(opts *config.SetupOptions) error {
	return repository.New(opts.RepoPath, s.Git, opts.Verbose).Setup()
}

// Share copies the video into the repository, generates the player
// page and QR image, and commits all new files. The first error aborts
// the workflow; artifacts written before the failure stay on disk.
func (s *Sharer) Share(opts *config.ShareOptions) (*Result, error) {
	// Validate the input before touching the repository, so a bad
	// path leaves no artifacts and runs no git commands.
	fi, err := os.Stat(opts.InputPath)
	if err != nil {
		return nil, errors.Wrapf(err, "video file %s not found", opts.InputPath)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("input path %s is a directory, not a video file", opts.InputPath)
	}
	mimeType, ok := page.MIMETypeFor(opts.InputPath)
	if !ok {
		return nil, fmt.Errorf("unsupported video format %q (supported: %s)",
			filepath.Ext(opts.InputPath), strings.Join(page.SupportedExtensions(), ", "))
	}

	repo := repository.New(opts.RepoPath, s.Git, opts.Verbose)
	if err := repo.Setup(); err != nil {
		return nil, errors.Wrap(err, "repository setup failed")
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL, err = repo.BaseURL(s.Prompt)
		if err != nil {
			return nil, err
		}
	}

	videoName := filepath.Base(opts.InputPath)
	targetPath := filepath.Join(repo.VideosDir(), videoName)
	if opts.Verbose {
		log.Printf("Copying %s to %s\n", opts.InputPath, targetPath)
	}
	if err := copyFile(opts.InputPath, targetPath); err != nil {
		return nil, errors.Wrap(err, "failed to copy video")
	}

	result := &Result{VideoPath: targetPath}

	meta, err := s.Prober.Probe(targetPath)
	if err != nil {
		if opts.Verbose {
			log.Printf("Warning: could not probe video: %v", err)
		}
	} else {
		result.Meta = meta
	}

	var posterRel string
	if !opts.SkipPoster {
		posterName := videoStem(videoName) + "_poster.jpg"
		posterPath := filepath.Join(repo.PostersDir(), posterName)
		if err := s.Prober.ExtractPoster(targetPath, posterPath, config.PosterOffsetSeconds); err != nil {
			if opts.Verbose {
				log.Printf("Warning: could not extract poster frame: %v", err)
			}
		} else {
			result.PosterPath = posterPath
			posterRel = "/" + path.Join(config.PostersDirName, posterName)
		}
	}

	title := opts.Title
	if title == "" {
		title = videoName
	}

	now := s.Now
	if now == nil {
		now = time.Now
	}
	pageName := page.FileName(now(), title)
	pagePath := filepath.Join(repo.PagesDir(), pageName)

	err = page.Create(pagePath, page.Data{
		Title:      title,
		VideoPath:  "/" + path.Join(config.VideosDirName, videoName),
		PosterPath: posterRel,
		MIMEType:   mimeType,
	})
	if err != nil {
		return nil, err
	}
	result.PagePath = pagePath

	// The QR content is exactly the hosting base URL plus the page
	// path relative to the repository root.
	result.PageURL = fmt.Sprintf("%s/%s", baseURL, path.Join(config.PagesDirName, pageName))

	qrPath := filepath.Join(repo.QRCodesDir(), qr.FileName(videoName))
	if err := qr.WriteFile(result.PageURL, qrPath, config.QRImageSize); err != nil {
		return nil, err
	}
	result.QRPath = qrPath

	if err := gitcmd.AddAll(s.Git, repo.Root); err != nil {
		return nil, errors.Wrap(err, "failed to stage shared files")
	}
	if err := gitcmd.Commit(s.Git, repo.Root, fmt.Sprintf("Add video: %s", videoName)); err != nil {
		return nil, errors.Wrap(err, "failed to commit shared files")
	}

	return result, nil
}

// SupportedExtensions returns the video extensions the share workflow
// accepts, for help text and error messages.
func SupportedExtensions() []string {
	return page.SupportedExtensions()
}

func videoStem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// copyFile copies src to dst byte-for-byte and keeps the source
// modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), fi.ModTime())
}
