package batch

import (
	"fmt"

	"github.com/adilgabb/commitgate/models"
)

// Limits bounds one batch. All three values must be positive.
type Limits struct {
	// MaxFiles is the maximum entry count per batch.
	MaxFiles int

	// MaxFileBytes is the maximum decoded size of a single file.
	MaxFileBytes int64

	// MaxTotalBytes is the maximum summed decoded size of the batch.
	MaxTotalBytes int64
}

// Prepare walks the ordered entry list, normalizes each entry, and enforces
// the batch budget. It returns one PreparedFile per input entry, in input
// order, or the first violation found.
//
// Budget checks run incrementally: the size estimate from the encoded payload
// is checked before decoding, and the exact size is re-checked after, so an
// over-budget batch fails on the offending entry rather than after decoding
// everything.
func Prepare(folder string, files []models.FileInput, limits Limits) ([]models.PreparedFile, error) {
	if len(files) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(files) > limits.MaxFiles {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyFiles, len(files), limits.MaxFiles)
	}

	dir, err := NormalizeFolder(folder)
	if err != nil {
		return nil, err
	}

	prepared := make([]models.PreparedFile, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	var total int64

	for i, file := range files {
		name, err := NormalizeName(file.Name)
		if err != nil {
			return nil, entryErr(i, err)
		}

		path := name
		if dir != "" {
			path = dir + "/" + name
		}
		if _, dup := seen[path]; dup {
			return nil, entryErr(i, fmt.Errorf("%w: %q", ErrDuplicatePath, path))
		}
		seen[path] = struct{}{}

		estimate := EstimateDecodedSize(file.ContentBase64)
		if estimate > limits.MaxFileBytes {
			return nil, entryErr(i, fmt.Errorf("%w: ~%d bytes", ErrFileTooLarge, estimate))
		}
		if total+estimate > limits.MaxTotalBytes {
			return nil, entryErr(i, fmt.Errorf("%w: ~%d bytes", ErrBatchTooLarge, total+estimate))
		}

		data, err := DecodeContent(file.ContentBase64)
		if err != nil {
			return nil, entryErr(i, err)
		}

		size := int64(len(data))
		if size == 0 {
			return nil, entryErr(i, ErrEmptyFile)
		}
		if size > limits.MaxFileBytes {
			return nil, entryErr(i, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, size))
		}
		total += size
		if total > limits.MaxTotalBytes {
			return nil, entryErr(i, fmt.Errorf("%w: %d bytes", ErrBatchTooLarge, total))
		}

		prepared = append(prepared, models.PreparedFile{
			Name:     name,
			Folder:   dir,
			Path:     path,
			Data:     data,
			Size:     size,
			MimeType: NormalizeMime(file.MimeType),
			SHA256:   file.SHA256,
			State:    models.FilePrepared,
		})
	}

	return prepared, nil
}
