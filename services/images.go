package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

const (
	MaxImageSize  = 5 * 1024 * 1024
	WarnImageSize = 2 * 1024 * 1024
)

// ImageFile is one file from an upload request.
type ImageFile struct {
	Name string
	Size int64
	Data []byte
}

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type UploadedImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type FailedImage struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type UploadResult struct {
	Uploaded []UploadedImage `json:"uploaded"`
	Failed   []FailedImage   `json:"failed"`
	Warnings []string        `json:"warnings"`
}

// ImageIntake checks a batch of images and hands the accepted ones to the uploader.
type ImageIntake struct {
	uploader Uploader
	prefix   string
}

func NewImageIntake(uploader Uploader, prefix string) *ImageIntake {
	return &ImageIntake{uploader: uploader, prefix: strings.Trim(prefix, "/")}
}

// SizeWarnings rejects the whole batch when any file is over MaxImageSize and
// otherwise returns a warning for each file over WarnImageSize.
func SizeWarnings(files []ImageFile) ([]string, error) {
	warnings := []string{}
	for _, f := range files {
		if f.Size > MaxImageSize {
			return nil, errs.NewPayloadTooLargeError(f.Name, MaxImageSize/1024/1024)
		}
		if f.Size > WarnImageSize {
			warnings = append(warnings, fmt.Sprintf(
				"File %q is %.1fMB. Consider compressing for better performance.",
				f.Name, float64(f.Size)/1024/1024,
			))
		}
	}
	return warnings, nil
}

// Process validates every file before anything is uploaded. A single upload
// failure is reported in the result and does not stop the rest.
func (i *ImageIntake) Process(ctx context.Context, files []ImageFile) (UploadResult, error) {
	if len(files) == 0 {
		return UploadResult{}, errs.NewMissingRequiredFieldError("files")
	}

	warnings, err := SizeWarnings(files)
	if err != nil {
		return UploadResult{}, err
	}

	types := make([]*mimetype.MIME, len(files))
	for n, f := range files {
		mt := mimetype.Detect(f.Data)
		if !strings.HasPrefix(mt.String(), "image/") {
			return UploadResult{}, errs.NewUnsupportedMediaTypeError(mt.String(), []string{"image/*"})
		}
		types[n] = mt
	}

	result := UploadResult{
		Uploaded: []UploadedImage{},
		Failed:   []FailedImage{},
		Warnings: warnings,
	}
	for n, f := range files {
		key := path.Join(i.prefix, uuid.NewString()+types[n].Extension())
		url, err := i.uploader.Upload(ctx, key, types[n].String(), f.Data)
		if err != nil {
			result.Failed = append(result.Failed, FailedImage{Name: f.Name, Error: err.Error()})
			continue
		}
		result.Uploaded = append(result.Uploaded, UploadedImage{Name: f.Name, URL: url})
	}
	return result, nil
}
