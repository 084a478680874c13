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

type fakeDownloadRepo struct {
	mu       sync.Mutex
	pending  []*entity.DownloadJobEntity
	statuses map[string]vo.DownloadStatus
	messages map[string]string
	queried  bool
	claimOK  bool
}

func newFakeDownloadRepo(jobs ...*entity.DownloadJobEntity) *fakeDownloadRepo {
	return &fakeDownloadRepo{
		pending:  jobs,
		statuses: make(map[string]vo.DownloadStatus),
		messages: make(map[string]string),
		claimOK:  true,
	}
}

func (f *fakeDownloadRepo) Create(_ context.Context, job *entity.DownloadJobEntity) error {
	f.pending = append(f.pending, job)
	return nil
}

func (f *fakeDownloadRepo) GetByUUID(_ context.Context, jobUUID string) (*entity.DownloadJobEntity, error) {
	for _, j := range f.pending {
		if j.JobUUID() == jobUUID {
			return j, nil
		}
	}
	return nil, nil
}

func (f *fakeDownloadRepo) FindOldestByStatus(_ context.Context, _ vo.DownloadStatus) (*entity.DownloadJobEntity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queried = true
	if len(f.pending) == 0 {
		return nil, nil
	}
	return f.pending[0], nil
}

func (f *fakeDownloadRepo) ClaimStatus(_ context.Context, jobUUID string, _, to vo.DownloadStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.claimOK {
		return false, nil
	}
	f.statuses[jobUUID] = to
	return true, nil
}

func (f *fakeDownloadRepo) SetStatus(_ context.Context, jobUUID string, status vo.DownloadStatus, errorMessage string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[jobUUID] = status
	f.messages[jobUUID] = errorMessage
	return nil
}

func (f *fakeDownloadRepo) List(_ context.Context, _ repo.ListQuery) ([]*entity.DownloadJobEntity, int64, error) {
	return f.pending, int64(len(f.pending)), nil
}

func (f *fakeDownloadRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeDownloader struct {
	payload []byte
	err     error
	fetched []string
}

func (f *fakeDownloader) Fetch(_ context.Context, url, dest, _ string) error {
	f.fetched = append(f.fetched, url)
	if len(f.payload) > 0 || f.err == nil {
		if err := os.WriteFile(dest, f.payload, 0o644); err != nil {
			return err
		}
	}
	return f.err
}

type fakeLimiter struct {
	mu       sync.Mutex
	capacity int
	inUse    int
	denied   int
}

func (f *fakeLimiter) Acquire() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inUse >= f.capacity {
		f.denied++
		return false
	}
	f.inUse++
	return true
}

func (f *fakeLimiter) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inUse--
}

func TestPickupDownloadSuccess(t *testing.T) {
	dir := t.TempDir()
	job := entity.NewDownloadJobEntity("dl-1", "clip one", "https://example.com/v", "chat-42")
	downloads := newFakeDownloadRepo(job)
	videos := newFakeVideoRepo()
	dl := &fakeDownloader{payload: []byte("video bytes")}
	svc := NewSpoolService(downloads, videos, dl, &fakeLimiter{capacity: 1}, dir)

	svc.PickupDownload(context.Background())

	if downloads.statuses["dl-1"] != vo.DownloadStatusCompleted {
		t.Fatalf("status = %s, want completed", downloads.statuses["dl-1"])
	}
	if len(videos.created) != 1 {
		t.Fatalf("expected one video job, got %d", len(videos.created))
	}
	created := videos.created[0]
	if created.JobUUID() != "dl-1" {
		t.Errorf("video job uuid = %s, want dl-1", created.JobUUID())
	}
	if created.OriginalPath() != filepath.Join(dir, "dl-1.mp4") {
		t.Errorf("unexpected original path %s", created.OriginalPath())
	}
	if created.OriginalSize() != int64(len("video bytes")) {
		t.Errorf("original size = %d", created.OriginalSize())
	}
	if created.NotifyTarget() != "chat-42" {
		t.Errorf("notify target = %s, want chat-42", created.NotifyTarget())
	}
	if created.Status() != vo.VideoStatusWaiting {
		t.Errorf("video status = %s, want waiting", created.Status())
	}
}

func TestPickupDownloadRespectsSlotLimit(t *testing.T) {
	downloads := newFakeDownloadRepo(entity.NewDownloadJobEntity("dl-1", "t", "u", ""))
	limiter := &fakeLimiter{capacity: 0}
	svc := NewSpoolService(downloads, newFakeVideoRepo(), &fakeDownloader{}, limiter, t.TempDir())

	svc.PickupDownload(context.Background())

	if downloads.queried {
		t.Error("repo should not be queried when no slot is available")
	}
	if limiter.denied != 1 {
		t.Errorf("denied = %d, want 1", limiter.denied)
	}
}

func TestPickupDownloadSkipsWhenClaimLost(t *testing.T) {
	downloads := newFakeDownloadRepo(entity.NewDownloadJobEntity("dl-1", "t", "u", ""))
	downloads.claimOK = false
	dl := &fakeDownloader{payload: []byte("x")}
	svc := NewSpoolService(downloads, newFakeVideoRepo(), dl, &fakeLimiter{capacity: 1}, t.TempDir())

	svc.PickupDownload(context.Background())

	if len(dl.fetched) != 0 {
		t.Error("download should not start when the claim is lost")
	}
}

func TestPickupDownloadFailureRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	downloads := newFakeDownloadRepo(entity.NewDownloadJobEntity("dl-1", "t", "u", ""))
	videos := newFakeVideoRepo()
	dl := &fakeDownloader{payload: []byte("partial"), err: fmt.Errorf("network boom")}
	svc := NewSpoolService(downloads, videos, dl, &fakeLimiter{capacity: 1}, dir)

	svc.PickupDownload(context.Background())

	if downloads.statuses["dl-1"] != vo.DownloadStatusError {
		t.Fatalf("status = %s, want error", downloads.statuses["dl-1"])
	}
	if downloads.messages["dl-1"] == "" {
		t.Error("error message should be recorded")
	}
	if _, err := os.Stat(filepath.Join(dir, "dl-1.mp4")); !os.IsNotExist(err) {
		t.Error("partial file should be removed")
	}
	if len(videos.created) != 0 {
		t.Error("no video job should be created on failure")
	}
}

func TestPickupDownloadRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	downloads := newFakeDownloadRepo(entity.NewDownloadJobEntity("dl-1", "t", "u", ""))
	videos := newFakeVideoRepo()
	svc := NewSpoolService(downloads, videos, &fakeDownloader{payload: nil}, &fakeLimiter{capacity: 1}, dir)

	svc.PickupDownload(context.Background())

	if downloads.statuses["dl-1"] != vo.DownloadStatusError {
		t.Fatalf("status = %s, want error", downloads.statuses["dl-1"])
	}
	if len(videos.created) != 0 {
		t.Error("no video job should be created for an empty download")
	}
}
