package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rigzba21/conda-vendor/internal/adapters/config"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	spec, err := loader.Load(filepath.Join("testdata", "minimal_env.yaml"))
	require.NoError(t, err)

	assert.Equal(t, &domain.EnvironmentSpec{
		Name:         "minimal_env",
		Channels:     []string{"main"},
		Dependencies: []domain.Dependency{{Name: "python", Version: "3.9.5"}},
	}, spec)
	assert.Equal(t, []string{"python==3.9.5"}, spec.Specs())
}

func TestLoader_Load_SkipsPip(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).Times(1)

	spec, err := config.NewLoader(log).Load(filepath.Join("testdata", "multi_channel.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "multi_env", spec.Name)
	assert.Equal(t, []string{"main", "conda-forge", "nodefaults"}, spec.Channels)
	assert.Equal(t, []string{"python==3.9.5", "conda-mirror==0.8.2", "pip"}, spec.Specs())
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "defaults channel", file: "defaults_env.yaml", wantErr: domain.ErrUnsupportedChannelConfiguration},
		{name: "missing channels", file: "no_channels.yaml", wantErr: domain.ErrUnsupportedChannelConfiguration},
		{name: "missing name", file: "no_name.yaml", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "missing file", file: "does_not_exist.yaml", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "malformed yaml", content: "name: [unterminated\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "empty document", content: "", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "name is not a string", content: "name: [a, b]\nchannels: [main]\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "name escapes output root", content: "name: ../escaped\nchannels: [main]\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "name with separator", content: "name: a/b\nchannels: [main]\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "name is dot-dot", content: "name: ..\nchannels: [main]\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "build string pin with extra part", content: "name: x\nchannels: [main]\ndependencies: [numpy 1.21 py39_0 x]\n", wantErr: domain.ErrInvalidEnvironmentFile},
		{name: "dependency is a number", content: "name: x\nchannels: [main]\ndependencies: [3]\n", wantErr: domain.ErrInvalidEnvironmentFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join("testdata", tt.file)
			if tt.content != "" || tt.file == "" {
				path = filepath.Join(t.TempDir(), "environment.yaml")
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))
			}

			ctrl := gomock.NewController(t)
			_, err := config.NewLoader(mocks.NewMockLogger(ctrl)).Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
