package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each command binds its own --out variable; registering one must not
// clobber the other's default.
func TestOutFlagDefaults(t *testing.T) {
	exportOut := exportCmd.Flags().Lookup("out")
	require.NotNil(t, exportOut)
	assert.Equal(t, "key.pem", exportOut.DefValue)
	assert.Equal(t, "key.pem", flagExportOut)

	signOut := signCmd.Flags().Lookup("out")
	require.NotNil(t, signOut)
	assert.Equal(t, "", signOut.DefValue)
	assert.Equal(t, "", flagSignOut)
}
