package service

import (
	"context"
	"errors"
	"path"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

// InstallerContentType is served for the desktop installer regardless of the stored type.
const InstallerContentType = "application/vnd.microsoft.portable-executable"

// Downloads serves the desktop application installer.
type Downloads struct {
	storage   model.Storage
	appObject string
	logger    *logger.Logger
}

func NewDownloads(storage model.Storage, appObject string, logger *logger.Logger) *Downloads {
	return &Downloads{
		storage:   storage,
		appObject: appObject,
		logger:    logger,
	}
}

// App opens the installer. The caller must close Body.
func (s *Downloads) App(ctx context.Context) (model.Download, error) {
	body, info, err := s.storage.Download(ctx, s.appObject)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Warn("Downloads service: installer missing",
				"object", s.appObject)
			return model.Download{}, apierror.New(apierror.KindNotFound, "App file not found")
		}
		s.logger.Error("Downloads service: failed to open installer",
			"object", s.appObject,
			"error", err.Error())
		return model.Download{}, apierror.NewErrInternalServerError(err)
	}

	return model.Download{
		Body:        body,
		FileName:    path.Base(s.appObject),
		ContentType: InstallerContentType,
		Size:        info.Size,
	}, nil
}
