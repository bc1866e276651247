package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"turakBack/internal/models"
	"turakBack/utils"
)

// collectImageFiles gathers uploaded files under the given form keys.
func collectImageFiles(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}

// parseListingPhotos reads string values from a multipart form and decodes
// them into photos. Values may hold a JSON array or a single JSON object.
func parseListingPhotos(form *multipart.Form, keys ...string) ([]models.ListingPhoto, bool, error) {
	if form == nil {
		return nil, false, nil
	}

	var rawValues []string
	for _, key := range keys {
		if values, ok := form.Value[key]; ok {
			rawValues = append(rawValues, values...)
		}
	}
	if len(rawValues) == 0 {
		return nil, false, nil
	}

	var result []models.ListingPhoto
	for _, raw := range rawValues {
		raw = strings.TrimSpace(raw)
		if raw == "" || raw == "null" || raw == "undefined" {
			continue
		}

		if strings.HasPrefix(raw, "[") {
			var arr []models.ListingPhoto
			if err := json.Unmarshal([]byte(raw), &arr); err != nil {
				return nil, false, fmt.Errorf("failed to decode photo array: %w", err)
			}
			result = append(result, arr...)
			continue
		}

		var item models.ListingPhoto
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, false, fmt.Errorf("failed to decode photo: %w", err)
		}
		result = append(result, item)
	}

	return result, true, nil
}

// uploadListingPhotos pushes the files to object storage under the folder and
// returns photo records pointing at the public URLs.
func uploadListingPhotos(files []*multipart.FileHeader, folder string) ([]models.ListingPhoto, error) {
	var photos []models.ListingPhoto
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
		}

		ext := filepath.Ext(header.Filename)
		name := uuid.New().String() + ext
		url, err := utils.UploadFileToS3(data, name, folder)
		if err != nil {
			return nil, err
		}

		photos = append(photos, models.ListingPhoto{
			Name: header.Filename,
			Path: url,
			Type: strings.TrimPrefix(ext, "."),
		})
	}
	return photos, nil
}
