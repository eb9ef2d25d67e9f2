package config

// ShareOptions defines options for sharing a single video
type ShareOptions struct {
	RepoPath   string
	InputPath  string
	Title      string
	BaseURL    string // overrides remote-derived hosting URL
	SkipPoster bool
	Verbose    bool
}

// SetupOptions defines options for preparing a working directory
type SetupOptions struct {
	RepoPath string
	Verbose  bool
}

const (
	// Working directory layout
	VideosDirName  = "videos"
	PagesDirName   = "pages"
	QRCodesDirName = "qrcodes"
	PostersDirName = "posters"

	// Timestamp layout for page file names (second resolution)
	PageTimestampLayout = "20060102_150405"

	// QR image dimensions (in pixels)
	QRImageSize = 512

	// Poster frame offset from the start of the video, in seconds
	PosterOffsetSeconds = 1.0

	GitAttributesName = ".gitattributes"
)

// LFSPatterns lists the file patterns tracked through git LFS.
var LFSPatterns = []string{"*.mp4", "*.mkv", "*.mov", "*.webm"}
