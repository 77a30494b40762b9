package dto

import (
	"errors"
	"fmt"
	"heritage/shared/failure"
	"io"
	"net/http"
	"path"
)

const sniffLength = 512

// imageExtensions lists the accepted image types by sniffed content type.
var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type UploadImageRequest struct {
	ContentType string
	Body        io.ReadSeeker
}

// NewUploadImageRequest sniffs the content type of an uploaded file. Anything that is not a
// png, jpeg or webp image is rejected.
func NewUploadImageRequest(body io.ReadSeeker) (UploadImageRequest, error) {
	head := make([]byte, sniffLength)

	n, err := io.ReadFull(body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return UploadImageRequest{}, failure.BadRequest(fmt.Errorf("failed to read image: %w", err))
	}

	if _, err = body.Seek(0, io.SeekStart); err != nil {
		return UploadImageRequest{}, failure.BadRequest(fmt.Errorf("failed to rewind image: %w", err))
	}

	contentType := http.DetectContentType(head[:n])
	if _, ok := imageExtensions[contentType]; !ok {
		return UploadImageRequest{}, failure.BadRequestFromString("image must be a png, jpeg or webp file")
	}

	return UploadImageRequest{ContentType: contentType, Body: body}, nil
}

// ObjectKey is where an image of the place is stored.
func (r UploadImageRequest) ObjectKey(placeID, name string) string {
	return path.Join("places", placeID, name+imageExtensions[r.ContentType])
}

type RemoveImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type ImagesResponse struct {
	URL    string   `json:"url,omitempty"`
	Images []string `json:"images"`
}
