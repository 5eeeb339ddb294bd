package service

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

type SettingsService interface {
	Get() model.Settings
	UpdateStoreName(name string) (model.Settings, error)
}

func NewSettingsService(repo model.SettingsRepository, logger log.FieldLogger) SettingsService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &settingsService{repo: repo, logger: logger}
}

type settingsService struct {
	repo   model.SettingsRepository
	logger log.FieldLogger
}

func (s *settingsService) Get() model.Settings {
	return s.repo.Get()
}

func (s *settingsService) UpdateStoreName(name string) (model.Settings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Settings{}, model.ErrInvalidStoreName
	}
	updated := s.repo.SetStoreName(name)
	s.logger.WithField("storeName", name).Info("store name updated")
	return updated, nil
}
