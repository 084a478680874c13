package vo

import "testing"

func TestDownloadStatusTransitions(t *testing.T) {
	cases := []struct {
		from DownloadStatus
		to   DownloadStatus
		ok   bool
	}{
		{DownloadStatusPending, DownloadStatusDownloading, true},
		{DownloadStatusPending, DownloadStatusCompleted, false},
		{DownloadStatusDownloading, DownloadStatusCompleted, true},
		{DownloadStatusDownloading, DownloadStatusError, true},
		{DownloadStatusCompleted, DownloadStatusPending, false},
		{DownloadStatusError, DownloadStatusDownloading, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestVideoStatusTransitions(t *testing.T) {
	cases := []struct {
		from VideoStatus
		to   VideoStatus
		ok   bool
	}{
		{VideoStatusWaiting, VideoStatusTranscoding, true},
		{VideoStatusWaiting, VideoStatusFinished, false},
		{VideoStatusTranscoding, VideoStatusFinished, true},
		{VideoStatusTranscoding, VideoStatusError, true},
		{VideoStatusFinished, VideoStatusWaiting, false},
		{VideoStatusError, VideoStatusTranscoding, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.ok {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestFinalStatus(t *testing.T) {
	if DownloadStatusDownloading.IsFinalStatus() || VideoStatusTranscoding.IsFinalStatus() {
		t.Error("in-flight statuses are not final")
	}
	if !DownloadStatusCompleted.IsFinalStatus() || !VideoStatusError.IsFinalStatus() {
		t.Error("terminal statuses must be final")
	}
	if DownloadStatus("unknown").IsValid() || VideoStatus("paused").IsValid() {
		t.Error("unknown statuses must be invalid")
	}
}
