package common

import (
	"fmt"
	"strings"
	"time"
)

// ResourceKind separates original resources from supplementary attachments.
type ResourceKind string

const (
	KindOriginal   ResourceKind = "original"
	KindAttachment ResourceKind = "attachment"
)

func ParseResourceKind(s string) (ResourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "original", "resource", "resources":
		return KindOriginal, nil
	case "attachment", "attachments":
		return KindAttachment, nil
	}
	return "", ValidationError{Field: "kind", Message: fmt.Sprintf("unknown resource kind %q", s)}
}

// Resource describes a stored file. The payload itself lives in blob storage
// under FileKey.
type Resource struct {
	ID         int64        `json:"resourceId"`
	DocumentID int64        `json:"documentId"`
	Kind       ResourceKind `json:"kind"`
	FileName   string       `json:"fileName"`
	MimeType   string       `json:"fileType"`
	Size       int64        `json:"size"`
	FileKey    string       `json:"-"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// ResourceFile is one file of an upload batch.
type ResourceFile struct {
	Name     string
	MimeType string
	Data     []byte
}
