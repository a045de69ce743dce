package config

import "path/filepath"

const tokenStorageKeyVar = "TOKEN_STORAGE_KEY"

type StorageConfig interface {
	GetTokenStorageKey() string
	GetStorageFile() string
}

type Storage struct {
	file FileValues
}

var _ StorageConfig = Storage{}

func (s Storage) GetTokenStorageKey() string {
	return GetEnv(tokenStorageKeyVar, orDefault(s.file.TokenStorageKey, "auth_token"))
}

// GetStorageFile is the key/value file backing persisted client state.
func (s Storage) GetStorageFile() string {
	return filepath.Join(EnvVars{file: s.file}.GetDataFolder(), "storage.json")
}
