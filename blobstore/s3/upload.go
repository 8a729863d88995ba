package s3

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
)

// UploadConfig tunes how bundles are written to S3.
type UploadConfig struct {
	// PartSize is the multipart chunk size in bytes.
	PartSize int64
	// Concurrency is the number of parts uploaded in parallel.
	Concurrency int
	// Checksum attaches CRC32C integrity checksums to uploads.
	Checksum bool
}

// DefaultUploadConfig returns the default tuning: 8 MiB parts, five
// parallel parts, checksums enabled.
func DefaultUploadConfig() UploadConfig {
	return UploadConfig{
		PartSize:    8 * 1024 * 1024,
		Concurrency: 5,
		Checksum:    true,
	}
}

func newUploader(client Client, cfg UploadConfig) *manager.Uploader {
	return manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = cfg.PartSize
		u.Concurrency = cfg.Concurrency
		// Failed uploads must not leave billable parts behind.
		u.LeavePartsOnError = false
	})
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// checksumCRC32C returns the base64 encoding S3 expects for the
// big-endian Castagnoli CRC of data.
func checksumCRC32C(data []byte) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], crc32.Checksum(data, castagnoli))
	return base64.StdEncoding.EncodeToString(buf[:])
}
