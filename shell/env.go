package shell

import (
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
)

type Environment struct{}

func NewEnvironment() *Environment {
	return &Environment{}
}

func (this *Environment) LookupEnv(key string) (value string, set bool) {
	return os.LookupEnv(key)
}

// EnvironmentFile appends KEY=value lines to a CI environment file such as
// the one named by $GITHUB_ENV.
type EnvironmentFile struct {
	path string
}

func NewEnvironmentFile(path string) *EnvironmentFile {
	return &EnvironmentFile{path: path}
}

func (this *EnvironmentFile) Append(render func(io.Writer) error) error {
	file, err := os.OpenFile(this.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to open environment file", goerr.V("path", this.path))
	}
	if err = render(file); err != nil {
		_ = file.Close()
		return err
	}
	if err = file.Close(); err != nil {
		return goerr.Wrap(err, "failed to close environment file", goerr.V("path", this.path))
	}
	return nil
}

func (this *EnvironmentFile) String() string {
	return fmt.Sprintf("environment file %q", this.path)
}
