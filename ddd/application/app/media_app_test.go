package app

import (
	"context"
	"errors"
	"testing"

	"github.com/vidprocc/vidpro/ddd/application/cqe"
	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
	"github.com/vidprocc/vidpro/pkg/errno"
)

type stubDownloadRepo struct {
	jobs    map[string]*entity.DownloadJobEntity
	deleted []string
}

func newStubDownloadRepo() *stubDownloadRepo {
	return &stubDownloadRepo{jobs: make(map[string]*entity.DownloadJobEntity)}
}

func (s *stubDownloadRepo) Create(_ context.Context, job *entity.DownloadJobEntity) error {
	s.jobs[job.JobUUID()] = job
	return nil
}

func (s *stubDownloadRepo) GetByUUID(_ context.Context, jobUUID string) (*entity.DownloadJobEntity, error) {
	return s.jobs[jobUUID], nil
}

func (s *stubDownloadRepo) FindOldestByStatus(_ context.Context, _ vo.DownloadStatus) (*entity.DownloadJobEntity, error) {
	return nil, nil
}

func (s *stubDownloadRepo) ClaimStatus(_ context.Context, _ string, _, _ vo.DownloadStatus) (bool, error) {
	return false, nil
}

func (s *stubDownloadRepo) SetStatus(_ context.Context, _ string, _ vo.DownloadStatus, _ string) error {
	return nil
}

func (s *stubDownloadRepo) List(_ context.Context, _ repo.ListQuery) ([]*entity.DownloadJobEntity, int64, error) {
	out := make([]*entity.DownloadJobEntity, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, int64(len(out)), nil
}

func (s *stubDownloadRepo) Delete(_ context.Context, jobUUID string) error {
	delete(s.jobs, jobUUID)
	s.deleted = append(s.deleted, jobUUID)
	return nil
}

type stubVideoRepo struct {
	jobs    map[string]*entity.VideoJobEntity
	paused  map[string]bool
	deleted []string
}

func newStubVideoRepo() *stubVideoRepo {
	return &stubVideoRepo{jobs: make(map[string]*entity.VideoJobEntity), paused: make(map[string]bool)}
}

func (s *stubVideoRepo) Create(_ context.Context, job *entity.VideoJobEntity) error {
	s.jobs[job.JobUUID()] = job
	return nil
}

func (s *stubVideoRepo) GetByUUID(_ context.Context, jobUUID string) (*entity.VideoJobEntity, error) {
	return s.jobs[jobUUID], nil
}

func (s *stubVideoRepo) FindOldestWaiting(_ context.Context) (*entity.VideoJobEntity, error) {
	return nil, nil
}

func (s *stubVideoRepo) ClaimStatus(_ context.Context, _ string, _, _ vo.VideoStatus) (bool, error) {
	return false, nil
}

func (s *stubVideoRepo) SaveMetadata(_ context.Context, _ string, _, _ int, _ float64, _ string) error {
	return nil
}

func (s *stubVideoRepo) SetTranscodedPath(_ context.Context, _, _ string) error { return nil }

func (s *stubVideoRepo) SetScreenshotArtifacts(_ context.Context, _ string, _ []string, _, _ string) error {
	return nil
}

func (s *stubVideoRepo) SetPreviewVideo(_ context.Context, _, _ string) error { return nil }
func (s *stubVideoRepo) SetM3U8Path(_ context.Context, _, _ string) error     { return nil }
func (s *stubVideoRepo) MarkFinished(_ context.Context, _, _ string, _ int64) error {
	return nil
}
func (s *stubVideoRepo) MarkError(_ context.Context, _, _ string) error { return nil }

func (s *stubVideoRepo) SetPause(_ context.Context, jobUUID string, paused bool) error {
	s.paused[jobUUID] = paused
	return nil
}

func (s *stubVideoRepo) List(_ context.Context, _ repo.ListQuery) ([]*entity.VideoJobEntity, int64, error) {
	out := make([]*entity.VideoJobEntity, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j)
	}
	return out, int64(len(out)), nil
}

func (s *stubVideoRepo) Delete(_ context.Context, jobUUID string) error {
	delete(s.jobs, jobUUID)
	s.deleted = append(s.deleted, jobUUID)
	return nil
}

type stubSettingRepo struct {
	settings vo.Settings
}

func (s *stubSettingRepo) Load(_ context.Context) (vo.Settings, error) { return s.settings, nil }
func (s *stubSettingRepo) Save(_ context.Context, settings vo.Settings) error {
	s.settings = settings
	return nil
}
func (s *stubSettingRepo) EnsureDefaults(_ context.Context) error { return nil }

func newTestApp() (MediaApp, *stubDownloadRepo, *stubVideoRepo, *stubSettingRepo) {
	downloads := newStubDownloadRepo()
	videos := newStubVideoRepo()
	settings := &stubSettingRepo{settings: vo.DefaultSettings()}
	return NewMediaAppWith(downloads, videos, settings), downloads, videos, settings
}

func TestCreateDownload(t *testing.T) {
	mediaApp, downloads, _, _ := newTestApp()

	out, err := mediaApp.CreateDownload(context.Background(), &cqe.CreateDownloadCqe{
		Title: "clip", URL: "https://example.com/v", NotifyTarget: "chat-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.UUID == "" {
		t.Error("uuid should be assigned")
	}
	if out.Status != vo.DownloadStatusPending.String() {
		t.Errorf("status = %s, want pending", out.Status)
	}
	if len(downloads.jobs) != 1 {
		t.Errorf("expected one persisted job")
	}
}

func TestCreateDownloadValidation(t *testing.T) {
	mediaApp, _, _, _ := newTestApp()

	cases := []struct {
		name string
		req  cqe.CreateDownloadCqe
		want error
	}{
		{"missing title", cqe.CreateDownloadCqe{URL: "https://example.com"}, errno.ErrTitleRequired},
		{"missing url", cqe.CreateDownloadCqe{Title: "t"}, errno.ErrURLRequired},
		{"bad scheme", cqe.CreateDownloadCqe{Title: "t", URL: "ftp://example.com/v"}, errno.ErrURLInvalid},
		{"not a url", cqe.CreateDownloadCqe{Title: "t", URL: "://nope"}, errno.ErrURLInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := mediaApp.CreateDownload(context.Background(), &tc.req); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestDeleteDownloadNotFound(t *testing.T) {
	mediaApp, _, _, _ := newTestApp()
	if err := mediaApp.DeleteDownload(context.Background(), "missing"); !errors.Is(err, errno.ErrDownloadNotFound) {
		t.Errorf("got %v, want ErrDownloadNotFound", err)
	}
}

func TestPauseVideo(t *testing.T) {
	mediaApp, _, videos, _ := newTestApp()
	videos.jobs["v1"] = entity.NewVideoJobEntity("v1", "t", "/tmp/v1.mp4", 10, "")

	if err := mediaApp.PauseVideo(context.Background(), "v1", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !videos.paused["v1"] {
		t.Error("pause flag should be set")
	}
	if err := mediaApp.PauseVideo(context.Background(), "missing", true); !errors.Is(err, errno.ErrVideoNotFound) {
		t.Errorf("got %v, want ErrVideoNotFound", err)
	}
}

func TestDeleteVideoRejectsTranscoding(t *testing.T) {
	mediaApp, _, videos, _ := newTestApp()
	job := entity.NewVideoJobEntity("v1", "t", "", 10, "")
	job.SetStatus(vo.VideoStatusTranscoding)
	videos.jobs["v1"] = job

	if err := mediaApp.DeleteVideo(context.Background(), "v1"); !errors.Is(err, errno.ErrVideoNotDeletable) {
		t.Errorf("got %v, want ErrVideoNotDeletable", err)
	}
	if len(videos.deleted) != 0 {
		t.Error("transcoding job must not be deleted")
	}
}

func TestDeleteVideoFinished(t *testing.T) {
	mediaApp, _, videos, _ := newTestApp()
	job := entity.NewVideoJobEntity("v1", "t", "", 10, "")
	job.SetStatus(vo.VideoStatusFinished)
	videos.jobs["v1"] = job

	if err := mediaApp.DeleteVideo(context.Background(), "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos.deleted) != 1 {
		t.Error("finished job should be deleted")
	}
}

func TestUpdateSettings(t *testing.T) {
	mediaApp, _, _, settings := newTestApp()

	out, err := mediaApp.UpdateSettings(context.Background(), &cqe.UpdateSettingsCqe{
		Resolution:      "720p",
		BitrateKbps:     1800,
		FrameRate:       25,
		ScreenshotCount: 6,
		PreviewEnabled:  true,
		PreviewWidth:    640,
		PreviewHeight:   360,
		PosterWidth:     640,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Resolution != "720p" {
		t.Errorf("resolution = %s, want 720p", out.Resolution)
	}
	if settings.settings.BitrateKbps != 1800 {
		t.Errorf("persisted bitrate = %d, want 1800", settings.settings.BitrateKbps)
	}
}

func TestUpdateSettingsInvalid(t *testing.T) {
	mediaApp, _, _, _ := newTestApp()

	_, err := mediaApp.UpdateSettings(context.Background(), &cqe.UpdateSettingsCqe{
		Resolution: "999p", BitrateKbps: 1000, FrameRate: 30, ScreenshotCount: 5,
	})
	if !errors.Is(err, errno.ErrSettingsInvalid) {
		t.Errorf("got %v, want ErrSettingsInvalid", err)
	}
}
