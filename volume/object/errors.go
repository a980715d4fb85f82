package object

import (
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"

	"github.com/offlinereader/zimscan/volume"
)

// translateError reduces a MinIO error response to the volume error
// taxonomy. Codes with no mapping pass through unchanged so the store's
// original report is never swallowed.
func translateError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return fmt.Errorf("%w: %w", volume.ErrNotFound, err)
	case "AccessDenied", "AllAccessDisabled", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return fmt.Errorf("%w: %w", volume.ErrPermission, err)
	case "QuotaExceeded":
		return fmt.Errorf("%w: %w", volume.ErrQuotaExceeded, err)
	case "InvalidObjectState", "InvalidBucketState":
		return fmt.Errorf("%w: %w", volume.ErrInvalidState, err)
	}

	// Some gateways report only the HTTP status.
	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", volume.ErrNotFound, err)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %w", volume.ErrPermission, err)
	}

	return err
}
