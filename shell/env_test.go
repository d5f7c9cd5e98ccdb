package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/assertions/should"
	"github.com/smartystreets/gunit"
)

func TestEnvironmentFileFixture(t *testing.T) {
	gunit.Run(new(EnvironmentFileFixture), t)
}

type EnvironmentFileFixture struct {
	*gunit.Fixture

	root string
}

func (this *EnvironmentFileFixture) Setup() {
	var err error
	this.root, err = os.MkdirTemp("", "stager-env-")
	this.So(err, should.BeNil)
}

func (this *EnvironmentFileFixture) Teardown() {
	_ = os.RemoveAll(this.root)
}

func (this *EnvironmentFileFixture) TestAppendKeepsExistingLines() {
	path := filepath.Join(this.root, "github_env")
	this.So(os.WriteFile(path, []byte("EXISTING=1\n"), 0644), should.BeNil)
	file := NewEnvironmentFile(path)

	err := file.Append(func(writer io.Writer) error {
		_, err := fmt.Fprintln(writer, "CGO_CFLAGS=-I/build/include")
		return err
	})

	this.So(err, should.BeNil)
	raw, _ := os.ReadFile(path)
	this.So(string(raw), should.Equal, "EXISTING=1\nCGO_CFLAGS=-I/build/include\n")
}

func (this *EnvironmentFileFixture) TestAppendToMissingDirectoryFails() {
	file := NewEnvironmentFile(filepath.Join(this.root, "missing", "github_env"))

	err := file.Append(func(io.Writer) error { return nil })

	this.So(err, should.NotBeNil)
}
