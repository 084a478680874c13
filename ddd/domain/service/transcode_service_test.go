package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vidprocc/vidpro/ddd/domain/entity"
	"github.com/vidprocc/vidpro/ddd/domain/repo"
	"github.com/vidprocc/vidpro/ddd/domain/vo"
)

type fakeVideoRepo struct {
	mu             sync.Mutex
	created        []*entity.VideoJobEntity
	waiting        []*entity.VideoJobEntity
	statuses       map[string]vo.VideoStatus
	errorMessages  map[string]string
	metadataRaw    map[string]string
	transcodedDirs map[string]string
	screenshots    map[string][]string
	posters        map[string]string
	thumbnails     map[string]string
	previews       map[string]string
	playlists      map[string]string
	afterPaths     map[string]string
	afterSizes     map[string]int64
	claimOK        bool
}

func newFakeVideoRepo(waiting ...*entity.VideoJobEntity) *fakeVideoRepo {
	return &fakeVideoRepo{
		waiting:        waiting,
		statuses:       make(map[string]vo.VideoStatus),
		errorMessages:  make(map[string]string),
		metadataRaw:    make(map[string]string),
		transcodedDirs: make(map[string]string),
		screenshots:    make(map[string][]string),
		posters:        make(map[string]string),
		thumbnails:     make(map[string]string),
		previews:       make(map[string]string),
		playlists:      make(map[string]string),
		afterPaths:     make(map[string]string),
		afterSizes:     make(map[string]int64),
		claimOK:        true,
	}
}

func (f *fakeVideoRepo) Create(_ context.Context, job *entity.VideoJobEntity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, job)
	return nil
}

func (f *fakeVideoRepo) GetByUUID(_ context.Context, jobUUID string) (*entity.VideoJobEntity, error) {
	for _, j := range f.waiting {
		if j.JobUUID() == jobUUID {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) FindOldestWaiting(_ context.Context) (*entity.VideoJobEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.waiting {
		if j.Status() == vo.VideoStatusWaiting && !j.NotTranscoding() {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeVideoRepo) ClaimStatus(_ context.Context, jobUUID string, _, to vo.VideoStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.claimOK {
		return false, nil
	}
	f.statuses[jobUUID] = to
	return true, nil
}

func (f *fakeVideoRepo) SaveMetadata(_ context.Context, jobUUID string, _, _ int, _ float64, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metadataRaw[jobUUID] = raw
	return nil
}

func (f *fakeVideoRepo) SetTranscodedPath(_ context.Context, jobUUID, dir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transcodedDirs[jobUUID] = dir
	return nil
}

func (f *fakeVideoRepo) SetScreenshotArtifacts(_ context.Context, jobUUID string, screenshots []string, poster, thumbnail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.screenshots[jobUUID] = screenshots
	f.posters[jobUUID] = poster
	f.thumbnails[jobUUID] = thumbnail
	return nil
}

func (f *fakeVideoRepo) SetPreviewVideo(_ context.Context, jobUUID, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.previews[jobUUID] = path
	return nil
}

func (f *fakeVideoRepo) SetM3U8Path(_ context.Context, jobUUID, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playlists[jobUUID] = path
	return nil
}

func (f *fakeVideoRepo) MarkFinished(_ context.Context, jobUUID, afterPath string, afterSize int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[jobUUID] = vo.VideoStatusFinished
	f.afterPaths[jobUUID] = afterPath
	f.afterSizes[jobUUID] = afterSize
	return nil
}

func (f *fakeVideoRepo) MarkError(_ context.Context, jobUUID, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[jobUUID] = vo.VideoStatusError
	f.errorMessages[jobUUID] = message
	return nil
}

func (f *fakeVideoRepo) SetPause(_ context.Context, _ string, _ bool) error { return nil }

func (f *fakeVideoRepo) List(_ context.Context, _ repo.ListQuery) ([]*entity.VideoJobEntity, int64, error) {
	return f.waiting, int64(len(f.waiting)), nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeSettingRepo struct {
	settings vo.Settings
}

func (f *fakeSettingRepo) Load(_ context.Context) (vo.Settings, error)  { return f.settings, nil }
func (f *fakeSettingRepo) Save(_ context.Context, s vo.Settings) error { f.settings = s; return nil }
func (f *fakeSettingRepo) EnsureDefaults(_ context.Context) error      { return nil }

type fakeProber struct {
	info *vo.MediaInfo
	err  error
}

func (f *fakeProber) Probe(_ context.Context, _ string) (*vo.MediaInfo, error) {
	return f.info, f.err
}

type fakeNotifier struct {
	targets     []string
	attachments [][]vo.Attachment
}

func (f *fakeNotifier) Notify(_ context.Context, target string, attachments []vo.Attachment) error {
	f.targets = append(f.targets, target)
	f.attachments = append(f.attachments, attachments)
	return nil
}

type transcodeFixture struct {
	videos   *fakeVideoRepo
	settings *fakeSettingRepo
	prober   *fakeProber
	media    *fakeMediaEngine
	notifier *fakeNotifier
	svc      TranscodeService
	source   string
	outDir   string
}

func newTranscodeFixture(t *testing.T, job *entity.VideoJobEntity, prober *fakeProber, media *fakeMediaEngine) *transcodeFixture {
	t.Helper()
	outDir := t.TempDir()
	videos := newFakeVideoRepo(job)
	settings := &fakeSettingRepo{settings: vo.DefaultSettings()}
	settings.settings.ScreenshotCount = 4
	notifier := &fakeNotifier{}

	shots := NewScreenshotService(media, &fakeImageEngine{canvasWidth: 1280, canvasHeight: 960}, "jpg")
	preview := NewPreviewService(media, 2, 5)
	hls := NewHLSService(media, "")
	svc := NewTranscodeService(videos, settings, prober, media, shots, preview, hls, notifier, nil, outDir)

	return &transcodeFixture{
		videos:   videos,
		settings: settings,
		prober:   prober,
		media:    media,
		notifier: notifier,
		svc:      svc,
		outDir:   outDir,
	}
}

func writeSourceVideo(t *testing.T, withSidecar bool) string {
	t.Helper()
	dir := t.TempDir()
	source := filepath.Join(dir, "src.mp4")
	if err := os.WriteFile(source, []byte("raw video"), 0o644); err != nil {
		t.Fatal(err)
	}
	if withSidecar {
		if err := os.WriteFile(source+".json", []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return source
}

func TestPickupTranscodeSuccess(t *testing.T) {
	source := writeSourceVideo(t, true)
	job := entity.NewVideoJobEntity("vid-1", "my clip", source, 9, "chat-7")
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, &fakeMediaEngine{})

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.statuses["vid-1"] != vo.VideoStatusFinished {
		t.Fatalf("status = %s, want finished (error: %s)", fx.videos.statuses["vid-1"], fx.videos.errorMessages["vid-1"])
	}
	wantOut := filepath.Join(fx.outDir, "vid-1", "output.mp4")
	if fx.videos.afterPaths["vid-1"] != wantOut {
		t.Errorf("after path = %s, want %s", fx.videos.afterPaths["vid-1"], wantOut)
	}
	if fx.videos.afterSizes["vid-1"] == 0 {
		t.Error("after size should be recorded")
	}
	if len(fx.videos.screenshots["vid-1"]) != 4 {
		t.Errorf("persisted %d screenshots, want 4", len(fx.videos.screenshots["vid-1"]))
	}
	if fx.videos.previews["vid-1"] == "" {
		t.Error("preview path should be persisted")
	}

	// 成功后源文件与json边车一并删除
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Error("source file should be deleted after success")
	}
	if _, err := os.Stat(source + ".json"); !os.IsNotExist(err) {
		t.Error("source sidecar should be deleted after success")
	}

	// 通知顺序：成品视频、预览、静态图
	if len(fx.notifier.targets) != 1 || fx.notifier.targets[0] != "chat-7" {
		t.Fatalf("notifier targets = %v", fx.notifier.targets)
	}
	atts := fx.notifier.attachments[0]
	if len(atts) != 3 {
		t.Fatalf("got %d attachments, want 3", len(atts))
	}
	if atts[0].Type != vo.AttachmentVideo || atts[0].Path != wantOut {
		t.Errorf("first attachment should be the transcoded video, got %+v", atts[0])
	}
	if atts[0].Duration != 20 || atts[0].Width != 1920 || atts[0].Height != 1080 {
		t.Errorf("primary attachment metadata wrong: %+v", atts[0])
	}
	if atts[1].Type != vo.AttachmentVideo || filepath.Base(atts[1].Path) != "preview.mp4" {
		t.Errorf("second attachment should be the preview, got %+v", atts[1])
	}
	if atts[2].Type != vo.AttachmentPhoto {
		t.Errorf("third attachment should be a still, got %+v", atts[2])
	}
}

func TestPickupTranscodeInvalidVideo(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	fx := newTranscodeFixture(t, job, &fakeProber{err: fmt.Errorf("probe boom")}, &fakeMediaEngine{})

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.statuses["vid-1"] != vo.VideoStatusError {
		t.Fatalf("status = %s, want error", fx.videos.statuses["vid-1"])
	}
	if fx.videos.errorMessages["vid-1"] != "Not a valid video" {
		t.Errorf("message = %q, want \"Not a valid video\"", fx.videos.errorMessages["vid-1"])
	}
	// 探测失败保留源文件
	if _, err := os.Stat(source); err != nil {
		t.Error("source should be retained when probing fails")
	}
}

func TestPickupTranscodeNoVideoStream(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	info := &vo.MediaInfo{Duration: 5, Streams: []vo.StreamInfo{{CodecType: "audio"}}}
	fx := newTranscodeFixture(t, job, &fakeProber{info: info}, &fakeMediaEngine{})

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.errorMessages["vid-1"] != "Not a valid video" {
		t.Errorf("message = %q, want \"Not a valid video\"", fx.videos.errorMessages["vid-1"])
	}
}

func TestPickupTranscodeEncodeFailureKeepsSource(t *testing.T) {
	source := writeSourceVideo(t, true)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "chat-7")
	media := &fakeMediaEngine{transcodeErr: fmt.Errorf("encode boom")}
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, media)

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.statuses["vid-1"] != vo.VideoStatusError {
		t.Fatalf("status = %s, want error", fx.videos.statuses["vid-1"])
	}
	if _, err := os.Stat(source); err != nil {
		t.Error("source should be retained when encoding fails")
	}
	if len(fx.notifier.targets) != 0 {
		t.Error("no notification should be sent on failure")
	}
}

func TestPickupTranscodeSkipsWhenClaimLost(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, &fakeMediaEngine{})
	fx.videos.claimOK = false

	fx.svc.PickupTranscode(context.Background())

	if fx.media.transcodeSpec != nil {
		t.Error("pipeline should not run when the claim is lost")
	}
}

func TestPickupTranscodeSkipsPausedJobs(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	job.SetPause(true)
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, &fakeMediaEngine{})

	fx.svc.PickupTranscode(context.Background())

	if fx.media.transcodeSpec != nil {
		t.Error("paused job should not be picked up")
	}
}

func TestPickupTranscodeWithoutSubscriberSendsNothing(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, &fakeMediaEngine{})

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.statuses["vid-1"] != vo.VideoStatusFinished {
		t.Fatalf("status = %s, want finished", fx.videos.statuses["vid-1"])
	}
	if len(fx.notifier.targets) != 0 {
		t.Error("no notification should be sent without a subscriber")
	}
}

func TestPickupTranscodeAppliesWatermarkSpec(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	media := &fakeMediaEngine{}
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, media)
	fx.settings.settings.Resolution = vo.Resolution720p
	fx.settings.settings.WatermarkEnabled = true
	fx.settings.settings.WatermarkImage = "wm.png"
	fx.settings.settings.WatermarkPosition = vo.WatermarkTopLeft

	fx.svc.PickupTranscode(context.Background())

	spec := media.transcodeSpec
	if spec == nil {
		t.Fatal("transcode did not run")
	}
	if spec.ScaleExpr != "1280:-2" {
		t.Errorf("scale = %s, want 1280:-2", spec.ScaleExpr)
	}
	if spec.Watermark == nil {
		t.Fatal("watermark spec missing")
	}
	// 1280/1920*100 = 66.7 → 67
	if spec.Watermark.ScaleWidth != 67 {
		t.Errorf("watermark width = %d, want 67", spec.Watermark.ScaleWidth)
	}
	if spec.Watermark.Position != "10:10" {
		t.Errorf("watermark position = %s, want 10:10", spec.Watermark.Position)
	}
}

func TestPickupTranscodePortraitScale(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	media := &fakeMediaEngine{}
	info := probeInfo(600, "30/1", 20)
	info.Streams[0].Width = 1080
	info.Streams[0].Height = 1920
	fx := newTranscodeFixture(t, job, &fakeProber{info: info}, media)

	fx.svc.PickupTranscode(context.Background())

	if media.transcodeSpec == nil {
		t.Fatal("transcode did not run")
	}
	if media.transcodeSpec.ScaleExpr != "-2:1920" {
		t.Errorf("scale = %s, want -2:1920", media.transcodeSpec.ScaleExpr)
	}
}

func TestPickupTranscodeHLSEnabled(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	info := probeInfo(600, "30/1", 20)
	info.Streams = append(info.Streams, vo.StreamInfo{CodecType: "audio", CodecName: "aac"})
	media := &fakeMediaEngine{}
	fx := newTranscodeFixture(t, job, &fakeProber{info: info}, media)
	fx.settings.settings.HLSEnabled = true

	fx.svc.PickupTranscode(context.Background())

	want := filepath.Join(fx.outDir, "vid-1", "hls", "output.m3u8")
	if fx.videos.playlists["vid-1"] != want {
		t.Errorf("playlist = %s, want %s", fx.videos.playlists["vid-1"], want)
	}
	if media.hlsSpec == nil || !media.hlsSpec.IncludeAudio {
		t.Error("audio track should be mapped when the source has audio")
	}
}

func TestPickupTranscodeHLSSilentSource(t *testing.T) {
	source := writeSourceVideo(t, false)
	job := entity.NewVideoJobEntity("vid-1", "t", source, 9, "")
	media := &fakeMediaEngine{}
	fx := newTranscodeFixture(t, job, &fakeProber{info: probeInfo(600, "30/1", 20)}, media)
	fx.settings.settings.HLSEnabled = true

	fx.svc.PickupTranscode(context.Background())

	if fx.videos.playlists["vid-1"] == "" {
		t.Fatal("playlist should be persisted for a silent source")
	}
	if media.hlsSpec == nil || media.hlsSpec.IncludeAudio {
		t.Error("audio track must not be mapped for a source without audio")
	}
}
