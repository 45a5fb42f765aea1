package uploads

import "time"

// PhotoURLRequest is the request body for POST /uploads/photo-url
type PhotoURLRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PhotoURLResponse carries the presigned PUT URL and the address the photo
// will have once uploaded. PhotoURL is what clients store in a campaign.
type PhotoURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	FileKey   string `json:"fileKey"`
	PhotoURL  string `json:"photoUrl"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const (
	MaxFilenameLength = 255
	UploadURLTTL      = 15 * time.Minute
	keyPrefix         = "campaigns/"
)

// AllowedContentTypes lists the image types accepted for campaign photos
var AllowedContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}
