// Package file provides small key/value blob storage backed by the local
// filesystem or Amazon S3 (and S3-compatible services such as MinIO).
//
// Both backends share the same contract: Read returns (nil, nil) when the
// object does not exist, Write replaces the whole object, and keys are
// slash-separated paths that may not escape the configured root.
//
// Local storage writes through a temporary file that is synced and renamed
// into place, so a concurrent reader observes either the old or the new
// content and never a partial write:
//
//	store, err := file.NewLocalStorage("/var/lib/pki2fa")
//	if err != nil {
//		return err
//	}
//	err = store.Write(ctx, "seed.txt", data)
//
// S3 storage loads AWS configuration through the SDK default chain unless
// static credentials are provided. Tests inject a mock client:
//
//	store, err := file.NewS3Storage(ctx, file.S3Config{
//		Bucket: "secrets",
//		Region: "eu-central-1",
//	}, file.WithS3Client(mockClient))
//
// S3 errors are classified into the sentinel errors declared in this package
// (ErrAccessDenied, ErrBucketNotFound, ErrServiceUnavailable and so on).
package file
