package vo

import "testing"

func TestResolutionDimensions(t *testing.T) {
	cases := []struct {
		res    Resolution
		width  int
		height int
	}{
		{Resolution480p, 640, 480},
		{Resolution720p, 1280, 720},
		{Resolution1080p, 1920, 1080},
		{Resolution4K, 3840, 2160},
	}
	for _, c := range cases {
		d := c.res.Dimensions()
		if d.Width != c.width || d.Height != c.height {
			t.Errorf("%s dimensions = %dx%d, want %dx%d", c.res, d.Width, d.Height, c.width, c.height)
		}
	}
}

func TestResolutionDimensionsFallback(t *testing.T) {
	d := Resolution("2160p").Dimensions()
	if d.Width != 1920 || d.Height != 1080 {
		t.Errorf("fallback dimensions = %dx%d, want 1920x1080", d.Width, d.Height)
	}
}

func TestScaleExpr(t *testing.T) {
	s := Settings{Resolution: Resolution1080p}
	if expr := s.ScaleExpr(false); expr != "1920:-2" {
		t.Errorf("landscape expr = %s, want 1920:-2", expr)
	}
	if expr := s.ScaleExpr(true); expr != "-2:1920" {
		t.Errorf("portrait expr = %s, want -2:1920", expr)
	}
}

func TestWatermarkScaleWidth(t *testing.T) {
	cases := []struct {
		res  Resolution
		want int
	}{
		{Resolution480p, 33},
		{Resolution720p, 67},
		{Resolution1080p, 100},
		{Resolution4K, 200},
	}
	for _, c := range cases {
		s := Settings{Resolution: c.res}
		if got := s.WatermarkScaleWidth(); got != c.want {
			t.Errorf("%s watermark width = %d, want %d", c.res, got, c.want)
		}
	}
}

func TestWatermarkOverlayExpr(t *testing.T) {
	cases := []struct {
		pos  WatermarkPosition
		want string
	}{
		{WatermarkTopLeft, "10:10"},
		{WatermarkTopRight, "main_w-overlay_w-10:10"},
		{WatermarkBottomLeft, "10:main_h-overlay_h-10"},
		{WatermarkBottomRight, "main_w-overlay_w-10:main_h-overlay_h-10"},
	}
	for _, c := range cases {
		if got := c.pos.OverlayExpr(); got != c.want {
			t.Errorf("%s overlay = %s, want %s", c.pos, got, c.want)
		}
	}
	if got := WatermarkPosition("center").OverlayExpr(); got != watermarkOverlays[WatermarkBottomRight] {
		t.Errorf("invalid position must fall back to bottom-right, got %s", got)
	}
}

func TestSettingsValidate(t *testing.T) {
	valid := DefaultSettings()
	if err := valid.Validate(); err != nil {
		t.Fatalf("default settings must validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"invalid resolution", func(s *Settings) { s.Resolution = "144p" }},
		{"zero bitrate", func(s *Settings) { s.BitrateKbps = 0 }},
		{"negative frame rate", func(s *Settings) { s.FrameRate = -1 }},
		{"zero screenshots", func(s *Settings) { s.ScreenshotCount = 0 }},
		{"watermark without image", func(s *Settings) { s.WatermarkEnabled = true; s.WatermarkImage = "" }},
		{"watermark bad position", func(s *Settings) {
			s.WatermarkEnabled = true
			s.WatermarkImage = "wm.png"
			s.WatermarkPosition = "middle"
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSettings()
			c.mutate(&s)
			if err := s.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
