package corpus

import "github.com/goliatone/go-corpus/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrWorkersInvalid          = runtimeconfig.ErrWorkersInvalid
	ErrFileTimeoutInvalid      = runtimeconfig.ErrFileTimeoutInvalid
	ErrDefaultTemplateRequired = runtimeconfig.ErrDefaultTemplateRequired
	ErrStorageDSNRequired      = runtimeconfig.ErrStorageDSNRequired
	ErrStorageDriverUnknown    = runtimeconfig.ErrStorageDriverUnknown
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	ScannerConfig  = runtimeconfig.ScannerConfig
	OrderingConfig = runtimeconfig.OrderingConfig
	StorageConfig  = runtimeconfig.StorageConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
