package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"uploadapi/internal/http/middleware"
	"uploadapi/internal/model"
	"uploadapi/internal/service"
)

// uploadResponse is returned by POST /api/upload. Exactly one of FilePath and
// FileURL is set, depending on whether the blob went to local disk or a bucket.
type uploadResponse struct {
	Message     string           `json:"message"`
	FilePath    string           `json:"filePath,omitempty"`
	FileURL     string           `json:"fileUrl,omitempty"`
	InsertedID  string           `json:"insertedId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Language    string           `json:"language"`
	Provider    string           `json:"provider"`
	Roles       []string         `json:"roles"`
	File        service.FileInfo `json:"file"`
}

// ListResources godoc
// @Summary List uploaded resources
// @Tags resources
// @Produce json
// @Success 200 {array} model.UploadRecord
// @Failure 500 {object} handler.errorPayload
// @Router /api/resources [get]
func ListResources(svc service.UploadService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := svc.List(c.UserContext())
		if err != nil {
			log.WithField("request_id", middleware.RequestIDFrom(c)).WithError(err).Error("list resources failed")
			return writeError(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Error fetching resources")
		}
		if items == nil {
			items = []model.UploadRecord{}
		}
		return c.JSON(items)
	}
}

// UploadResource godoc
// @Summary Upload a file with its metadata
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Param title formData string false "Title"
// @Param description formData string false "Description"
// @Param category formData string false "Category"
// @Param language formData string false "Language"
// @Param provider formData string false "Provider"
// @Param roles formData []string false "Roles, repeat the field for several values" collectionFormat(multi)
// @Param file formData file true "File to upload"
// @Success 200 {object} handler.uploadResponse
// @Failure 400 {object} handler.errorPayload
// @Failure 500 {object} handler.errorPayload
// @Router /api/upload [post]
func UploadResource(svc service.UploadService, log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := middleware.RequestIDFrom(c)

		var req service.UploadRequest
		// A body that is not multipart carries no file; the service rejects it.
		if form, err := c.MultipartForm(); err == nil {
			req = requestFromForm(form)
			if fhs := form.File["file"]; len(fhs) > 0 {
				fh := fhs[0]
				f, err := fh.Open()
				if err != nil {
					log.WithField("request_id", rid).WithError(err).Error("open uploaded file")
					return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "Error uploading file to storage")
				}
				defer f.Close()
				req.File = &service.FileInput{
					Name:        fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Size:        fh.Size,
					Content:     f,
				}
			}
		}

		res, err := svc.Upload(c.UserContext(), req)
		if err != nil {
			entry := log.WithField("request_id", rid).WithError(err)
			switch {
			case errors.Is(err, service.ErrValidation):
				entry.Info("upload rejected")
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "No file provided")
			case errors.Is(err, service.ErrDatabase):
				entry.Error("upload metadata insert failed")
				return writeError(c, fiber.StatusInternalServerError, "DATABASE_ERROR", "Error inserting data into the database")
			default:
				entry.Error("upload storage failed")
				return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", "Error uploading file to storage")
			}
		}

		out := uploadResponse{
			Message:     "File uploaded and data inserted successfully",
			InsertedID:  res.Record.ID,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Language:    req.Language,
			Provider:    req.Provider,
			Roles:       req.Roles,
			File:        res.File,
		}
		if out.Roles == nil {
			out.Roles = []string{}
		}
		if res.Object.Remote {
			out.FileURL = res.Object.Locator
		} else {
			out.FilePath = res.Object.Locator
		}
		return c.Status(fiber.StatusOK).JSON(out)
	}
}

func requestFromForm(form *multipart.Form) service.UploadRequest {
	return service.UploadRequest{
		Title:       firstValue(form, "title"),
		Description: firstValue(form, "description"),
		Category:    firstValue(form, "category"),
		Language:    firstValue(form, "language"),
		Provider:    firstValue(form, "provider"),
		Roles:       form.Value["roles"],
	}
}

func firstValue(form *multipart.Form, key string) string {
	if v := form.Value[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
