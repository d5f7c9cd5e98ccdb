package core

import (
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestDownloadProgressFixture(t *testing.T) {
	gunit.Run(new(DownloadProgressFixture), t)
}

type DownloadProgressFixture struct {
	*gunit.Fixture
	lock    sync.Mutex
	reports []string
}

func (this *DownloadProgressFixture) onProgress(written string) {
	this.lock.Lock()
	defer this.lock.Unlock()
	this.reports = append(this.reports, written)
}

func (this *DownloadProgressFixture) TestHumanFileSize() {
	this.So(humanFileSize(0), should.Equal, "0 B")
	this.So(humanFileSize(512), should.Equal, "512 B")
	this.So(humanFileSize(1536), should.Equal, "1.5 KB")
	this.So(humanFileSize(250_000_000), should.Equal, "238.42 MB")
	this.So(humanFileSize(1<<50), should.Equal, "1024 TB")
}

func (this *DownloadProgressFixture) TestRound() {
	this.So(round(26.2245, .5, 3), should.Equal, 26.225)
	this.So(round(26.2244, .5, 3), should.Equal, 26.224)
}

func (this *DownloadProgressFixture) TestFinalReportOnClose() {
	progress := newDownloadProgress(time.Hour, this.onProgress)

	_, _ = progress.Write([]byte("test"))
	_, _ = progress.Write([]byte("test"))
	_ = progress.Close()

	this.So(this.reports, should.Resemble, []string{"8 B"})
}

func (this *DownloadProgressFixture) TestPeriodicReports() {
	progress := newDownloadProgress(time.Millisecond, this.onProgress)
	_, _ = progress.Write([]byte("test"))

	time.Sleep(20 * time.Millisecond)
	_ = progress.Close()

	this.lock.Lock()
	defer this.lock.Unlock()
	this.So(len(this.reports), should.BeGreaterThan, 1)
	this.So(this.reports[len(this.reports)-1], should.Equal, "4 B")
}
