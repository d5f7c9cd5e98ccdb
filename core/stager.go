package core

import (
	"context"
	"crypto/sha256"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/smarty/stager/contracts"
)

const (
	DefaultFetchTimeout = 5 * time.Minute
	progressInterval    = 2 * time.Second
)

type StagerFileSystem interface {
	contracts.FileChecker
	contracts.FileCreator
	contracts.DirectoryCreator
	contracts.TreeCopier
	contracts.TreeDeleter
	contracts.Renamer
	contracts.PathLister
	contracts.Deleter
}

type Stager struct {
	downloader contracts.Downloader
	extractor  contracts.Unarchiver
	disk       StagerFileSystem
	reporter   contracts.Reporter
	logger     *slog.Logger
	filter     ArtifactFilter
	pruner     *Pruner
	postSteps  []contracts.PostStep
	scratch    string
	timeout    time.Duration
	newID      func() string
}

type Option func(*Stager)

func WithLogger(logger *slog.Logger) Option {
	return func(this *Stager) { this.logger = logger }
}

func WithReporter(reporter contracts.Reporter) Option {
	return func(this *Stager) { this.reporter = reporter }
}

func WithFilter(filter ArtifactFilter) Option {
	return func(this *Stager) { this.filter = filter }
}

func WithPostSteps(steps ...contracts.PostStep) Option {
	return func(this *Stager) { this.postSteps = append(this.postSteps, steps...) }
}

// WithScratchRoot sets the directory under which per-archive scratch
// directories are created. Defaults to the OS temp directory.
func WithScratchRoot(path string) Option {
	return func(this *Stager) { this.scratch = path }
}

func WithTimeout(timeout time.Duration) Option {
	return func(this *Stager) { this.timeout = timeout }
}

func NewStager(downloader contracts.Downloader, extractor contracts.Unarchiver, disk StagerFileSystem, options ...Option) *Stager {
	this := &Stager{
		downloader: downloader,
		extractor:  extractor,
		disk:       disk,
		reporter:   nopReporter{},
		logger:     slog.Default(),
		filter:     DynamicArtifacts,
		scratch:    os.TempDir(),
		timeout:    DefaultFetchTimeout,
		newID:      uuid.NewString,
	}
	for _, option := range options {
		option(this)
	}
	this.pruner = NewPruner(disk, this.filter)
	return this
}

// Stage resets destination, then fetches and extracts each artifact in order,
// staging the primary artifact's include/ and every artifact's lib/ into a
// sibling work tree. The work tree is filtered, handed to the post-steps and
// only then moved into destination. On failure destination is left empty.
func (this *Stager) Stage(ctx context.Context, release contracts.ReleaseSpec, artifacts []contracts.PlatformArtifact, destination string) error {
	manifest := contracts.Manifest{Release: release, Artifacts: artifacts}
	if err := manifest.Validate(); err != nil {
		return goerr.Wrap(err, "invalid staging request", goerr.T(contracts.TagConfig))
	}

	destination = filepath.Clean(destination)
	if err := this.reset(destination); err != nil {
		return err
	}

	plans, err := this.plan(release, artifacts)
	if err != nil {
		return err
	}

	holder := filepath.Join(filepath.Dir(destination), "."+filepath.Base(destination)+".stage-"+this.newID())
	defer this.cleanup(holder)
	work := filepath.Join(holder, filepath.Base(destination))
	if err = this.disk.MkdirAll(work); err != nil {
		return goerr.Wrap(err, "failed to create work directory", goerr.T(contracts.TagFilesystem))
	}

	for _, plan := range plans {
		if err = this.stageArtifact(ctx, plan, work); err != nil {
			return err
		}
	}

	removed, err := this.pruner.Prune(work)
	if err != nil {
		return goerr.Wrap(err, "failed to prune dynamic artifacts", goerr.T(contracts.TagFilesystem))
	}
	this.logger.Debug("pruned dynamic artifacts", slog.Any("removed", removed))

	for _, step := range this.postSteps {
		if err = step.Apply(work); err != nil {
			return goerr.Wrap(err, "post-step failed", goerr.T(contracts.TagFilesystem))
		}
	}

	if err = this.disk.DeleteAll(destination); err != nil {
		return goerr.Wrap(err, "failed to clear destination", goerr.T(contracts.TagFilesystem))
	}
	if err = this.disk.Rename(work, destination); err != nil {
		return goerr.Wrap(err, "failed to move staged tree into destination", goerr.T(contracts.TagFilesystem))
	}

	this.logger.Info("staged artifacts",
		slog.String("destination", destination),
		slog.Int("platforms", len(plans)),
		slog.Int("pruned", len(removed)),
	)
	return nil
}

func (this *Stager) reset(destination string) error {
	if err := this.disk.DeleteAll(destination); err != nil {
		return goerr.Wrap(err, "failed to reset destination", goerr.V("destination", destination), goerr.T(contracts.TagFilesystem))
	}
	if err := this.disk.MkdirAll(destination); err != nil {
		return goerr.Wrap(err, "failed to reset destination", goerr.V("destination", destination), goerr.T(contracts.TagFilesystem))
	}
	return nil
}

type stagingPlan struct {
	artifact contracts.PlatformArtifact
	archive  string
	kind     contracts.ArchiveKind
	stem     string
	address  url.URL
	primary  bool
}

// plan resolves every archive kind and url up front so an unsupported or
// malformed entry fails the run before anything is fetched.
func (this *Stager) plan(release contracts.ReleaseSpec, artifacts []contracts.PlatformArtifact) (plans []stagingPlan, err error) {
	for i, artifact := range artifacts {
		archive := artifact.ArchiveName(release)
		kind, stem, err := ParseArchiveName(archive)
		if err != nil {
			return nil, err
		}
		raw := release.URLFor(artifact.Archive)
		address, err := url.Parse(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "malformed download url", goerr.V("url", raw), goerr.T(contracts.TagFetch))
		}
		plans = append(plans, stagingPlan{
			artifact: artifact,
			archive:  archive,
			kind:     kind,
			stem:     stem,
			address:  *address,
			primary:  i == 0,
		})
	}
	return plans, nil
}

func (this *Stager) stageArtifact(ctx context.Context, plan stagingPlan, work string) error {
	this.reporter.Downloading(plan.address.String())
	this.logger.Info("fetching archive",
		slog.String("url", plan.address.String()),
		slog.String("platform", plan.artifact.Platform),
	)

	scratch := filepath.Join(this.scratch, "stager-"+this.newID())
	if err := this.disk.MkdirAll(scratch); err != nil {
		return goerr.Wrap(err, "failed to create scratch directory", goerr.T(contracts.TagFilesystem))
	}
	defer this.cleanup(scratch)

	archivePath := filepath.Join(scratch, plan.archive)
	if err := this.fetch(ctx, plan, archivePath); err != nil {
		return err
	}

	extracted := filepath.Join(scratch, "extracted")
	if err := this.extractor.Unarchive(plan.kind, archivePath, extracted); err != nil {
		return goerr.Wrap(err, "failed to extract archive", goerr.V("archive", plan.archive), goerr.T(contracts.TagExtraction))
	}

	top := filepath.Join(extracted, plan.stem)
	if err := this.requireDirectory(top, plan); err != nil {
		return err
	}
	if plan.primary {
		include := filepath.Join(top, contracts.IncludeDirectory)
		if err := this.relocate(include, filepath.Join(work, contracts.IncludeDirectory), plan); err != nil {
			return err
		}
	}
	library := filepath.Join(top, contracts.LibraryDirectory)
	return this.relocate(library, filepath.Join(work, plan.artifact.Platform), plan)
}

func (this *Stager) fetch(ctx context.Context, plan stagingPlan, path string) error {
	ctx, cancel := context.WithTimeout(ctx, this.timeout)
	defer cancel()

	body, err := this.downloader.Download(ctx, plan.address)
	if err != nil {
		return goerr.Wrap(err, "failed to fetch archive", goerr.V("url", plan.address.String()), goerr.T(contracts.TagFetch))
	}
	defer func() { _ = body.Close() }()

	file, err := this.disk.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create scratch archive", goerr.T(contracts.TagFilesystem))
	}
	digest := NewDigestReader(body, sha256.New())
	progress := newDownloadProgress(progressInterval, func(written string) {
		this.logger.Debug("downloading", slog.String("archive", plan.archive), slog.String("written", written))
	})
	_, err = io.Copy(file, io.TeeReader(digest, progress))
	_ = progress.Close()
	closeErr := file.Close()
	if err != nil {
		return goerr.Wrap(err, "failed to read archive body", goerr.V("url", plan.address.String()), goerr.T(contracts.TagFetch))
	}
	if closeErr != nil {
		return goerr.Wrap(closeErr, "failed to write scratch archive", goerr.V("path", path), goerr.T(contracts.TagFilesystem))
	}

	this.logger.Info("fetched archive",
		slog.String("archive", plan.archive),
		slog.String("size", humanFileSize(float64(digest.Count()))),
		slog.String("sha256", digest.Digest()),
	)
	return nil
}

func (this *Stager) relocate(source, target string, plan stagingPlan) error {
	if err := this.requireDirectory(source, plan); err != nil {
		return err
	}
	if err := this.disk.CopyTree(source, target); err != nil {
		return goerr.Wrap(err, "failed to copy extracted directory", goerr.V("archive", plan.archive), goerr.T(contracts.TagFilesystem))
	}
	return nil
}

func (this *Stager) requireDirectory(path string, plan stagingPlan) error {
	info, err := this.disk.Stat(path)
	if err == nil && info.IsDir() {
		return nil
	}
	return goerr.New("archive is missing an expected directory",
		goerr.V("archive", plan.archive),
		goerr.V("directory", filepath.Base(path)),
		goerr.T(contracts.TagExtraction))
}

func (this *Stager) cleanup(path string) {
	if err := this.disk.DeleteAll(path); err != nil {
		this.logger.Warn("failed to remove temporary directory", slog.String("path", path), slog.Any("error", err))
	}
}

type nopReporter struct{}

func (nopReporter) Downloading(string) {}
