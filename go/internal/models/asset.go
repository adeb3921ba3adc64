package models

import "strings"

// AssetType tags what kind of file an asset is
type AssetType string

const (
	AssetTypeImage    AssetType = "image"
	AssetTypeDocument AssetType = "document"
	AssetTypeUnknown  AssetType = "unknown"
)

// Asset is a file held by the asset store, addressed by its logical path
type Asset struct {
	Path     string    `json:"path"`
	Type     AssetType `json:"type"`
	MimeType string    `json:"mime_type"`
	Size     int64     `json:"size"`
}

// IsImage reports whether the asset can be used as a logo
func (a *Asset) IsImage() bool {
	return a != nil && a.Type == AssetTypeImage
}

// AssetTypeFor maps a detected mime type onto an AssetType
func AssetTypeFor(mime string) AssetType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return AssetTypeImage
	case mime == "application/pdf",
		strings.HasPrefix(mime, "text/"),
		strings.HasPrefix(mime, "application/vnd.openxmlformats-officedocument"),
		strings.HasPrefix(mime, "application/vnd.ms-"),
		strings.HasPrefix(mime, "application/vnd.oasis.opendocument"),
		mime == "application/msword":
		return AssetTypeDocument
	default:
		return AssetTypeUnknown
	}
}
