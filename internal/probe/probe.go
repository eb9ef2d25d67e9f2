package probe

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Metadata contains metadata about a video file
type Metadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// Prober inspects video files and extracts poster frames.
type Prober interface {
	Probe(inputPath string) (*Metadata, error)
	ExtractPoster(inputPath, outputPath string, offsetSeconds float64) error
}

// FFmpegProber implements Prober on top of the external ffmpeg/ffprobe
// binaries.
type FFmpegProber struct {
	verbose bool
}

// NewFFmpegProber creates a new ffmpeg-backed prober.
func NewFFmpegProber(verbose bool) *FFmpegProber {
	return &FFmpegProber{verbose: verbose}
}

// Probe retrieves metadata about a video file.
func (p *FFmpegProber) Probe(inputPath string) (*Metadata, error) {
	raw, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error probing video: %v", err)
	}

	meta, err := parseProbe([]byte(raw))
	if err != nil {
		return nil, err
	}

	if p.verbose {
		log.Printf("Video metadata: Duration=%.2fs, Resolution=%dx%d, Codec=%s\n",
			meta.Duration, meta.Width, meta.Height, meta.Codec)
	}
	return meta, nil
}

// ExtractPoster grabs a single frame offsetSeconds into the video and
// writes it to outputPath as a JPEG.
func (p *FFmpegProber) ExtractPoster(inputPath, outputPath string, offsetSeconds float64) error {
	stream := ffmpeg.Input(inputPath, ffmpeg.KwArgs{
		"ss": offsetSeconds,
	}).Output(outputPath, ffmpeg.KwArgs{
		"vframes": 1,
		"q:v":     2,
	}).OverWriteOutput()

	if p.verbose {
		log.Printf("FFmpeg command: %s\n", stream.String())
	}

	if err := stream.Run(); err != nil {
		return fmt.Errorf("failed to extract poster frame: %v", err)
	}
	return nil
}

func parseProbe(raw []byte) (*Metadata, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			videoStream = s
			break
		}
	}

	if videoStream == nil {
		return nil, fmt.Errorf("no video stream found")
	}

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	// If still no duration found, try calculating from frames and frame rate
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				var frameRate float64
				if rFrameRate, ok := videoStream["r_frame_rate"].(string); ok {
					if nums := strings.Split(rFrameRate, "/"); len(nums) == 2 {
						num, err1 := strconv.ParseFloat(nums[0], 64)
						den, err2 := strconv.ParseFloat(nums[1], 64)
						if err1 == nil && err2 == nil && den != 0 {
							frameRate = num / den
						}
					}
				}
				if frameRate > 0 {
					duration = frames / frameRate
				}
			}
		}
	}

	if duration == 0 {
		return nil, fmt.Errorf("could not determine video duration")
	}

	width, _ := videoStream["width"].(float64)
	height, _ := videoStream["height"].(float64)
	codec, _ := videoStream["codec_name"].(string)

	return &Metadata{
		Duration: duration,
		Width:    int(width),
		Height:   int(height),
		Codec:    codec,
	}, nil
}
