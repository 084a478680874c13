package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

func TestSegmentStarts(t *testing.T) {
	starts, err := SegmentStarts(10, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 2, 4, 6, 8}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("start[%d] = %v, want %v", i, starts[i], want[i])
		}
	}
}

func TestSegmentStartsSpreadOverLongVideo(t *testing.T) {
	starts, err := SegmentStarts(100, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 24.5, 49, 73.5, 98}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("start[%d] = %v, want %v", i, starts[i], want[i])
		}
	}
}

func TestSegmentStartsLastSegmentEndsAtVideoEnd(t *testing.T) {
	starts, err := SegmentStarts(12, 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0, 2.5, 5, 7.5, 10}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("start[%d] = %v, want %v", i, starts[i], want[i])
		}
	}
	// 末段起点+段长必须收尾在视频结尾
	if last := starts[len(starts)-1]; last+2 != 12 {
		t.Errorf("last segment ends at %v, want 12", last+2)
	}
}

func TestSegmentStartsRejectsShortVideo(t *testing.T) {
	if _, err := SegmentStarts(9.5, 2, 5); err == nil {
		t.Fatal("expected error for video shorter than total preview length")
	}
}

func TestComposeConcatenatesAndCleansSegments(t *testing.T) {
	dir := t.TempDir()
	media := &fakeMediaEngine{}
	svc := NewPreviewService(media, 2, 5)

	out, err := svc.Compose(context.Background(), "in.mp4", dir, vo.DefaultSettings(), 20)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if out != filepath.Join(dir, "preview.mp4") {
		t.Errorf("unexpected preview path %s", out)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("preview file missing: %v", err)
	}
	if len(media.clipSpecs) != 5 {
		t.Errorf("got %d clips, want 5", len(media.clipSpecs))
	}
	if len(media.concatInputs) != 5 {
		t.Errorf("concat got %d inputs, want 5", len(media.concatInputs))
	}
	// 中间片段清理
	for i := 1; i <= 5; i++ {
		seg := filepath.Join(dir, fmt.Sprintf("preview%d.mp4", i))
		if _, err := os.Stat(seg); !os.IsNotExist(err) {
			t.Errorf("segment %s should have been removed", seg)
		}
	}
}

func TestComposeFailsWhenClipFails(t *testing.T) {
	dir := t.TempDir()
	media := &fakeMediaEngine{clipErr: fmt.Errorf("clip boom")}
	svc := NewPreviewService(media, 2, 5)

	if _, err := svc.Compose(context.Background(), "in.mp4", dir, vo.DefaultSettings(), 20); err == nil {
		t.Fatal("expected error when a segment clip fails")
	}
	if media.concatInputs != nil {
		t.Error("concat should not run after a failed clip")
	}
}
