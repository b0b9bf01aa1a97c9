package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ReceiptFile is a receipt attached to an expense. Attachments are owned
// exclusively by their expense and are deleted with it.
type ReceiptFile struct {
	Model
	ExpenseID  uint64    `json:"-"`
	Name       string    `json:"name"`       // Original file name
	MIMEType   string    `json:"mimeType"`   // Content type of the payload
	SizeBytes  int64     `json:"sizeBytes"`  // Payload size in bytes
	Payload    []byte    `json:"-"`          // The file contents
	UploadedAt time.Time `json:"uploadedAt"` // Time the file was attached
}

// BeforeSave defaults the upload time and the size.
func (r *ReceiptFile) BeforeSave(_ *gorm.DB) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now().In(time.UTC)
	} else {
		r.UploadedAt = r.UploadedAt.In(time.UTC)
	}

	if r.SizeBytes == 0 {
		r.SizeBytes = int64(len(r.Payload))
	}

	return nil
}

// receiptFileJSON is the interchange representation of a receipt file.
// The payload travels as a self-describing data URI so that a snapshot is
// a single portable file. The alias fields accept documents written by
// older exporters which used "type", "size" and "data".
type receiptFileJSON struct {
	Name       string    `json:"name"`
	MIMEType   string    `json:"mimeType,omitempty"`
	TypeAlias  string    `json:"type,omitempty"`
	SizeBytes  int64     `json:"sizeBytes,omitempty"`
	SizeAlias  int64     `json:"size,omitempty"`
	Payload    string    `json:"payload,omitempty"`
	DataAlias  string    `json:"data,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MarshalJSON implements the json.Marshaler interface.
func (r ReceiptFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(receiptFileJSON{
		Name:       r.Name,
		MIMEType:   r.MIMEType,
		SizeBytes:  r.SizeBytes,
		Payload:    EncodeDataURI(r.MIMEType, r.Payload),
		UploadedAt: r.UploadedAt,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (r *ReceiptFile) UnmarshalJSON(data []byte) error {
	var raw receiptFileJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	mimeType := raw.MIMEType
	if mimeType == "" {
		mimeType = raw.TypeAlias
	}

	uri := raw.Payload
	if uri == "" {
		uri = raw.DataAlias
	}

	payloadType, payload, err := DecodeDataURI(uri)
	if err != nil {
		return err
	}

	// The data URI is self-describing, it wins over the metadata field
	if payloadType != "" {
		mimeType = payloadType
	}

	size := raw.SizeBytes
	if size == 0 {
		size = raw.SizeAlias
	}
	if size == 0 {
		size = int64(len(payload))
	}

	r.Name = raw.Name
	r.MIMEType = mimeType
	r.SizeBytes = size
	r.Payload = payload
	r.UploadedAt = raw.UploadedAt
	return nil
}

// EncodeDataURI encodes a payload as a base64 data URI.
func EncodeDataURI(mimeType string, payload []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(payload))
}

// DecodeDataURI decodes a base64 data URI into its MIME type and payload.
// An empty string decodes to an empty payload.
func DecodeDataURI(uri string) (mimeType string, payload []byte, err error) {
	if uri == "" {
		return "", nil, nil
	}

	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("receipt payload is not a data URI")
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("receipt payload is not a data URI")
	}

	mimeType = strings.TrimSuffix(meta, ";base64")

	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("receipt payload is not valid base64: %w", err)
	}

	return mimeType, payload, nil
}
