package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/stretchr/testify/require"
)

func TestExitCodeFor(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", ErrNamesFileNotFound)
	require.Equal(t, foundry.ExitCode(foundry.ExitFileNotFound), ExitCodeFor(wrapped))
	require.Equal(t, foundry.ExitCode(foundry.ExitFailure), ExitCodeFor(errors.New("if any flags in the group [name list] are set none of the others can be")))
}
