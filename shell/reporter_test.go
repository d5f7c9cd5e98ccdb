package shell

import (
	"bytes"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestConsoleReporterFixture(t *testing.T) {
	gunit.Run(new(ConsoleReporterFixture), t)
}

type ConsoleReporterFixture struct {
	*gunit.Fixture
}

func (this *ConsoleReporterFixture) TestOneLinePerDownload() {
	output := new(bytes.Buffer)
	reporter := NewConsoleReporter(output)

	reporter.Downloading("https://example.com/a.zip")
	reporter.Downloading("https://example.com/b.tar.xz")

	lines := bytes.Split(bytes.TrimSpace(output.Bytes()), []byte("\n"))
	this.So(lines, should.HaveLength, 2)
	this.So(string(lines[0]), should.ContainSubstring, "Download")
	this.So(string(lines[0]), should.EndWith, " https://example.com/a.zip")
	this.So(string(lines[1]), should.EndWith, " https://example.com/b.tar.xz")
}
