package file

import "errors"

var (
	ErrInvalidConfig = errors.New("file: invalid storage configuration")
	ErrInvalidPath   = errors.New("file: key escapes the storage root")
	ErrFileNotFound  = errors.New("file: not found")
	ErrIsDirectory   = errors.New("file: key names a directory")

	ErrFailedToReadFile        = errors.New("file: read failed")
	ErrFailedToWriteFile       = errors.New("file: write failed")
	ErrFailedToDeleteFile      = errors.New("file: delete failed")
	ErrFailedToCreateDirectory = errors.New("file: cannot create storage directory")
	ErrFailedToGetAbsolutePath = errors.New("file: cannot resolve storage directory")

	// S3 classification; see classifyS3Error.
	ErrFailedToLoadConfig = errors.New("file: cannot load AWS configuration")
	ErrBucketNotFound     = errors.New("file: bucket not found")
	ErrAccessDenied       = errors.New("file: access denied")
	ErrRequestTimeout     = errors.New("file: S3 request timed out")
	ErrServiceUnavailable = errors.New("file: S3 temporarily unavailable")
	ErrOperationTimeout   = errors.New("file: operation deadline exceeded")
	ErrOperationCanceled  = errors.New("file: operation canceled")
)
