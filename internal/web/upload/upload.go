// Package upload stores a single multipart file per request under the
// public uploads directory and yields the public URL path to record.
package upload

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/memoriam-dev/memoriam/internal/uniuri"
)

// URLPrefix is the public URL path uploaded files are served from.
const URLPrefix = "/uploads"

// Save stores the uploaded file from the given multipart form field under
// publicDir/uploads with a random name, keeping the original extension.
// It returns the public URL path for the stored file. Uploads are optional
// everywhere they are accepted: an absent field (or a plain form-encoded
// body) yields ok=false without an error.
func Save(c *fiber.Ctx, field, publicDir string) (urlPath string, ok bool, err error) {
	fileHeader, err := c.FormFile(field)
	if err != nil || fileHeader == nil {
		return "", false, nil
	}

	name := uniuri.New() + filepath.Ext(fileHeader.Filename)
	dest := filepath.Join(publicDir, "uploads", name)

	if err := c.SaveFile(fileHeader, dest); err != nil {
		return "", false, err
	}

	return URLPrefix + "/" + name, true, nil
}
