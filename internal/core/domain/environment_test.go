package domain_test

import (
	"errors"
	"testing"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDependency(t *testing.T) {
	tests := []struct {
		raw      string
		want     domain.Dependency
		wantSpec string
	}{
		{raw: "python", want: domain.Dependency{Name: "python"}, wantSpec: "python"},
		{raw: "python=3.9.5", want: domain.Dependency{Name: "python", Version: "3.9.5"}, wantSpec: "python==3.9.5"},
		{raw: "python==3.9.5", want: domain.Dependency{Name: "python", Version: "3.9.5"}, wantSpec: "python==3.9.5"},
		{raw: "python 3.9.5", want: domain.Dependency{Name: "python", Version: "3.9.5"}, wantSpec: "python==3.9.5"},
		{raw: " conda-mirror=0.8.2 ", want: domain.Dependency{Name: "conda-mirror", Version: "0.8.2"}, wantSpec: "conda-mirror==0.8.2"},
		{raw: "numpy>=1.20", want: domain.Dependency{Name: "numpy", Version: ">=1.20"}, wantSpec: "numpy>=1.20"},
		{raw: "numpy >= 1.20", want: domain.Dependency{Name: "numpy", Version: ">=1.20"}, wantSpec: "numpy>=1.20"},
		{
			raw:      "numpy 1.21 py39_0",
			want:     domain.Dependency{Name: "numpy", Version: "1.21", Build: "py39_0"},
			wantSpec: "numpy 1.21 py39_0",
		},
		{
			raw:      "numpy=1.21=py39_0",
			want:     domain.Dependency{Name: "numpy", Version: "1.21", Build: "py39_0"},
			wantSpec: "numpy 1.21 py39_0",
		},
		{
			raw:      "numpy==1.21=py39_0",
			want:     domain.Dependency{Name: "numpy", Version: "1.21", Build: "py39_0"},
			wantSpec: "numpy 1.21 py39_0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := domain.ParseDependency(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSpec, got.Spec())
		})
	}
}

func TestParseDependency_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "=3.9", "numpy 1.21 py39_0 extra", "numpy=1.21=", "numpy=1.21=py39_0=x"} {
		_, err := domain.ParseDependency(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.Is(err, domain.ErrInvalidEnvironmentFile), raw)
	}
}

func TestValidateEnvironmentName(t *testing.T) {
	require.NoError(t, domain.ValidateEnvironmentName("minimal_env"))
	require.NoError(t, domain.ValidateEnvironmentName("env.v2"))

	for _, name := range []string{"", ".", "..", "../escaped", "a/b", `a\b`, "/abs"} {
		err := domain.ValidateEnvironmentName(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, domain.ErrInvalidEnvironmentFile), name)
	}
}

func TestEnvironmentSpec_Specs(t *testing.T) {
	env := &domain.EnvironmentSpec{
		Name:     "minimal_env",
		Channels: []string{"main", "nodefaults"},
		Dependencies: []domain.Dependency{
			{Name: "python", Version: "3.9.5"},
			{Name: "conda-mirror", Version: "0.8.2"},
			{Name: "pip"},
		},
	}

	assert.Equal(t, []string{"python==3.9.5", "conda-mirror==0.8.2", "pip"}, env.Specs())
	assert.Equal(t, []string{"main"}, env.SolveChannels())
}

func TestValidateChannels(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		wantErr  bool
	}{
		{name: "explicit channels", channels: []string{"main", "conda-forge"}},
		{name: "explicit with nodefaults", channels: []string{"conda-forge", "nodefaults"}},
		{name: "empty", channels: nil, wantErr: true},
		{name: "defaults", channels: []string{"defaults"}, wantErr: true},
		{name: "defaults mixed in", channels: []string{"conda-forge", "defaults"}, wantErr: true},
		{name: "only nodefaults", channels: []string{"nodefaults"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := domain.ValidateChannels(tt.channels)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrUnsupportedChannelConfiguration))
		})
	}
}
