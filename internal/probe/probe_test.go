package probe

import (
	"strings"
	"testing"
)

func TestParseProbeStreamDuration(t *testing.T) {
	raw := `{
		"streams": [
			{"codec_type": "audio", "codec_name": "aac"},
			{"codec_type": "video", "codec_name": "h264", "duration": "12.5", "width": 1920, "height": 1080}
		]
	}`

	meta, err := parseProbe([]byte(raw))
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 12.5 || meta.Width != 1920 || meta.Height != 1080 || meta.Codec != "h264" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestParseProbeFormatDurationFallback(t *testing.T) {
	raw := `{
		"streams": [{"codec_type": "video", "codec_name": "vp9", "width": 640, "height": 360}],
		"format": {"duration": "7.2"}
	}`

	meta, err := parseProbe([]byte(raw))
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 7.2 {
		t.Errorf("duration = %v, want 7.2", meta.Duration)
	}
}

func TestParseProbeFrameRateFallback(t *testing.T) {
	raw := `{
		"streams": [{"codec_type": "video", "codec_name": "h264", "width": 640, "height": 360,
			"nb_frames": "300", "r_frame_rate": "30/1"}]
	}`

	meta, err := parseProbe([]byte(raw))
	if err != nil {
		t.Fatalf("parseProbe: %v", err)
	}
	if meta.Duration != 10 {
		t.Errorf("duration = %v, want 10", meta.Duration)
	}
}

func TestParseProbeNoVideoStream(t *testing.T) {
	raw := `{"streams": [{"codec_type": "audio", "codec_name": "aac"}]}`

	if _, err := parseProbe([]byte(raw)); err == nil || !strings.Contains(err.Error(), "no video stream") {
		t.Errorf("expected a no-video-stream error, got %v", err)
	}
}

func TestParseProbeNoStreams(t *testing.T) {
	if _, err := parseProbe([]byte(`{"format": {}}`)); err == nil {
		t.Error("expected an error for probe output without streams")
	}
}

func TestParseProbeUnknownDuration(t *testing.T) {
	raw := `{"streams": [{"codec_type": "video", "codec_name": "h264", "width": 1, "height": 1}]}`

	if _, err := parseProbe([]byte(raw)); err == nil || !strings.Contains(err.Error(), "duration") {
		t.Errorf("expected a duration error, got %v", err)
	}
}
