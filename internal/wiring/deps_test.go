package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/rigzba21/conda-vendor/internal/app"
	_ "github.com/rigzba21/conda-vendor/internal/wiring"
	"github.com/stretchr/testify/require"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}

func TestExecuteComponents(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
