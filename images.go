package folio

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/activity"
	"github.com/eringen/folio/assets"
	"github.com/eringen/folio/fault"
	"github.com/eringen/folio/views"
)

const uploadField = "files"

func (a *App) handleImageList(c echo.Context) error {
	list, err := a.Library.List()
	if err != nil {
		return a.fail(c, err, "Failed to list images")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"images": list,
		"count":  len(list),
	})
}

func (a *App) handleImageUpload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		var he *echo.HTTPError
		switch {
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No files provided"})
		case errors.As(err, &he):
			return err
		}
		return a.fail(c, fault.IO("Failed to upload images", err), "Failed to upload images")
	}
	defer form.RemoveAll()

	headers := form.File[uploadField]
	files := make([]assets.Upload, 0, len(headers))
	for _, fh := range headers {
		files = append(files, fileUpload(fh))
	}

	paths, err := a.Library.Upload(files)
	if err != nil {
		return a.fail(c, err, "Failed to upload images")
	}
	for _, p := range paths {
		a.record(c.Request().Context(), activity.Entry{
			Action: activity.ActionUpload,
			Target: p,
		})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success":  true,
		"uploaded": len(paths),
		"files":    paths,
		"message":  fmt.Sprintf("Successfully uploaded %d image(s)", len(paths)),
	})
}

func fileUpload(fh *multipart.FileHeader) assets.Upload {
	return assets.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

type imageDeleteRequest struct {
	Path string `json:"path" query:"path"`
}

func (a *App) handleImageDelete(c echo.Context) error {
	var req imageDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if err := a.Library.Delete(req.Path); err != nil {
		return a.fail(c, err, "Failed to delete image")
	}
	a.record(c.Request().Context(), activity.Entry{
		Action: activity.ActionDeleteImage,
		Target: req.Path,
	})
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Image deleted successfully",
	})
}

func (a *App) handleImagesPage(c echo.Context) error {
	list, err := a.Library.List()
	if err != nil {
		return err
	}
	return a.Render(c, "Images", views.Images(list))
}
