package output

import "time"

// ManifestFile is one entry of a [Manifest], in transaction insertion
// order.
type ManifestFile struct {
	RelativePath string `json:"relativePath"`
	SizeBytes    int64  `json:"sizeBytes"`
	SHA256       string `json:"sha256"`
}

// Manifest enumerates every committed file's relative path, byte size,
// and SHA-256 digest, produced exactly once per successful transaction.
type Manifest struct {
	TransactionID string         `json:"transactionId"`
	Timestamp     time.Time      `json:"timestamp"`
	Files         []ManifestFile `json:"files"`
}
