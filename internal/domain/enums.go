package domain

// DocumentType classifies an identity document.
type DocumentType string

const (
	DocumentTypePassport  DocumentType = "passport"
	DocumentTypeLicense   DocumentType = "license"
	DocumentTypeStateID   DocumentType = "state_id"
	DocumentTypeCollegeID DocumentType = "college_id"
	DocumentTypeOther     DocumentType = "other"
	DocumentTypeInvalid   DocumentType = "invalid"
)

// DocumentTypes lists every classification outcome, including invalid.
var DocumentTypes = []DocumentType{
	DocumentTypePassport,
	DocumentTypeLicense,
	DocumentTypeStateID,
	DocumentTypeCollegeID,
	DocumentTypeOther,
	DocumentTypeInvalid,
}

// IsValid reports whether t is a known classification outcome.
func (t DocumentType) IsValid() bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// Extractable reports whether documents of this type go through the
// extraction stage. Invalid classifications short-circuit the pipeline.
func (t DocumentType) Extractable() bool {
	return t.IsValid() && t != DocumentTypeInvalid
}

// Stage identifies a pipeline stage for usage and cost attribution.
type Stage string

const (
	StageClassification Stage = "classification"
	StageExtraction     Stage = "extraction"
)

// ResultStatus is the terminal status of a pipeline run.
type ResultStatus string

const (
	StatusSuccess ResultStatus = "success"
	StatusInvalid ResultStatus = "invalid"
)

// Severity is the blocking level of a validation outcome. Errors invalidate
// the document; warnings flag a concern without invalidating it.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// ImageType represents the allowed image formats for upload.
type ImageType string

const (
	ImageTypeJPEG ImageType = "jpeg"
	ImageTypePNG  ImageType = "png"
	ImageTypeWEBP ImageType = "webp"
	ImageTypeGIF  ImageType = "gif"
	ImageTypeBMP  ImageType = "bmp"
)

// AllowedImageTypes maps ImageType to its MIME content type.
var AllowedImageTypes = map[ImageType]string{
	ImageTypeJPEG: "image/jpeg",
	ImageTypePNG:  "image/png",
	ImageTypeWEBP: "image/webp",
	ImageTypeGIF:  "image/gif",
	ImageTypeBMP:  "image/bmp",
}

// AllowedContentTypes maps MIME content types back to ImageType.
var AllowedContentTypes = map[string]ImageType{
	"image/jpeg": ImageTypeJPEG,
	"image/png":  ImageTypePNG,
	"image/webp": ImageTypeWEBP,
	"image/gif":  ImageTypeGIF,
	"image/bmp":  ImageTypeBMP,
}

// AllowedExtensions maps file extensions (without dot) to ImageType.
var AllowedExtensions = map[string]ImageType{
	"jpg":  ImageTypeJPEG,
	"jpeg": ImageTypeJPEG,
	"png":  ImageTypePNG,
	"webp": ImageTypeWEBP,
	"gif":  ImageTypeGIF,
	"bmp":  ImageTypeBMP,
}

// FieldReviewStatus classifies how much human attention an extracted
// field needs, combining rule outcomes with extraction confidence.
type FieldReviewStatus string

const (
	FieldStatusValid   FieldReviewStatus = "valid"
	FieldStatusUnsure  FieldReviewStatus = "unsure"
	FieldStatusInvalid FieldReviewStatus = "invalid"
)
