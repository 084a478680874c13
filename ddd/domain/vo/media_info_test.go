package vo

import (
	"math"
	"testing"
)

func TestFrameRateParsing(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"25/1", 25},
		{"30000/1001", 29.97002997},
		{"30", 30},
		{"", 0},
		{"0/0", 0},
		{"abc", 0},
		{"25/0", 0},
	}
	for _, c := range cases {
		s := StreamInfo{RFrameRate: c.raw}
		if got := s.FrameRate(); math.Abs(got-c.want) > 1e-6 {
			t.Errorf("FrameRate(%q) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestIsPortrait(t *testing.T) {
	if (StreamInfo{Width: 1920, Height: 1080}).IsPortrait() {
		t.Error("1920x1080 is landscape")
	}
	if !(StreamInfo{Width: 1080, Height: 1920}).IsPortrait() {
		t.Error("1080x1920 is portrait")
	}
	if (StreamInfo{Width: 0, Height: 1920}).IsPortrait() {
		t.Error("unknown width must not count as portrait")
	}
}

func TestVideoStreamSelection(t *testing.T) {
	info := &MediaInfo{Streams: []StreamInfo{
		{CodecType: "audio", CodecName: "aac"},
		{CodecType: "video", CodecName: "h264", Width: 1280, Height: 720},
		{CodecType: "video", CodecName: "mjpeg"},
	}}
	stream := info.VideoStream()
	if stream == nil || stream.CodecName != "h264" {
		t.Fatalf("expected the first video stream, got %+v", stream)
	}
	if !info.HasAudio() {
		t.Error("expected audio stream to be detected")
	}

	audioOnly := &MediaInfo{Streams: []StreamInfo{{CodecType: "audio"}}}
	if audioOnly.VideoStream() != nil {
		t.Error("audio-only input has no video stream")
	}
}
