package model

import "errors"

var ErrInvalidStoreName = errors.New("store name must not be empty")

type Settings struct {
	StoreName string `json:"storeName"`
}

type SettingsRepository interface {
	Get() Settings
	SetStoreName(name string) Settings
}
