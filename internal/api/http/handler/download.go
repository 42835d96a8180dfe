package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// DownloadService opens downloadable artifacts.
type DownloadService interface {
	App(ctx context.Context) (model.Download, error)
}

// Download handles the /downloads endpoints.
type Download struct {
	downloadService DownloadService
	logger          *logger.Logger
}

// NewDownload creates a new Download handler.
func NewDownload(downloadService DownloadService, logger *logger.Logger) *Download {
	return &Download{
		downloadService: downloadService,
		logger:          logger,
	}
}

// App handles GET /downloads/app by streaming the installer.
func (h *Download) App(c echo.Context) error {
	d, err := h.downloadService.App(c.Request().Context())
	if err != nil {
		return err
	}
	defer d.Body.Close()

	header := c.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", d.FileName))
	if d.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(d.Size, 10))
	}

	return c.Stream(http.StatusOK, d.ContentType, d.Body)
}
