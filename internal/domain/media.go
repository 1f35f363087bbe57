package domain

// MediaCategory is derived purely from a file's extension.
type MediaCategory string

const (
	CategoryImage    MediaCategory = "image"
	CategoryAudio    MediaCategory = "audio"
	CategoryVideo    MediaCategory = "video"
	CategoryDocument MediaCategory = "document"
)

// MediaAsset is one file on disk, created at catalog-scan time and
// immutable afterwards.
type MediaAsset struct {
	Name      string
	Path      string
	Category  MediaCategory
	SizeBytes int64
	Extension string // lowercased, including the dot
}

func (a MediaAsset) SizeMB() float64 {
	return float64(a.SizeBytes) / (1024 * 1024)
}

// ReconciledReference is the join result for one media-bearing message.
// Asset is nil when no catalog entry matched the reference.
type ReconciledReference struct {
	Reference string
	Asset     *MediaAsset
}

func (r ReconciledReference) Found() bool {
	return r.Asset != nil
}
