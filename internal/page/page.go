package page

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/estellalin21/cam-u/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Data holds the values rendered into a player page.
type Data struct {
	Title string
	// VideoPath is the video source relative to the repository root,
	// with a leading slash so pages work from any depth.
	VideoPath string
	// PosterPath is optional; when empty no poster attribute is emitted.
	PosterPath string
	MIMEType   string
}

const playerTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            margin: 0;
            padding: 0;
            background: #000;
            display: flex;
            flex-direction: column;
            justify-content: center;
            align-items: center;
            min-height: 100vh;
            color: #fff;
            font-family: system-ui, -apple-system, sans-serif;
        }
        .video-container {
            width: 100%;
            max-width: 1920px;
            margin: 20px auto;
            padding: 0 20px;
            box-sizing: border-box;
        }
        video {
            width: 100%;
            max-height: 85vh;
            background: #000;
        }
        h1 {
            margin: 20px;
            font-size: 24px;
            text-align: center;
        }
    </style>
</head>
<body>
    <h1>{{.Title}}</h1>
    <div class="video-container">
        <video controls preload="metadata"{{if .PosterPath}} poster="{{.PosterPath}}"{{end}}>
            <source src="{{.VideoPath}}" type="{{.MIMEType}}">
            Your browser does not support video playback.
        </video>
    </div>
</body>
</html>
`

var playerTmpl = template.Must(template.New("player").Parse(playerTemplate))

var mimeTypes = map[string]string{
	".mp4":  "video/mp4",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Render writes the player page markup for d to w.
func Render(w io.Writer, d Data) error {
	if err := playerTmpl.Execute(w, d); err != nil {
		return errors.Wrap(err, "failed to render player page")
	}
	return nil
}

// Create renders the player page for d into a new file at path.
func Create(path string, d Data) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create player page")
	}
	if err := Render(f, d); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "failed to write player page")
}

// FileName builds a unique page file name from the generation time and
// the video title: <timestamp>_<sanitized stem>.html.
func FileName(now time.Time, title string) string {
	stem := strings.TrimSuffix(filepath.Base(title), filepath.Ext(title))
	stem = unsafeChars.ReplaceAllString(stem, "_")
	return fmt.Sprintf("%s_%s.html", now.Format(config.PageTimestampLayout), stem)
}

// MIMETypeFor returns the video MIME type for a file path based on its
// extension, and false for unsupported extensions.
func MIMETypeFor(path string) (string, bool) {
	mime, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]
	return mime, ok
}

// SupportedExtensions returns the shareable video extensions in sorted
// order, for error messages and help text.
func SupportedExtensions() []string {
	exts := maps.Keys(mimeTypes)
	slices.Sort(exts)
	return exts
}
