package contracts

import "github.com/m-mizutani/goerr/v2"

var (
	TagFetch               = goerr.NewTag("fetch")
	TagUnsupportedArchive  = goerr.NewTag("unsupported_archive")
	TagExtraction          = goerr.NewTag("extraction")
	TagFilesystem          = goerr.NewTag("filesystem")
	TagUnsupportedPlatform = goerr.NewTag("unsupported_platform")
	TagConfig              = goerr.NewTag("config")
)
