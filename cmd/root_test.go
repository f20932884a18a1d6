package cmd

import (
	"testing"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger("DEBUG"))
	assert.True(t, logging.GetLevel("cafesim") == logging.DEBUG)

	assert.NoError(t, InitLogger("warning"))
	assert.True(t, logging.GetLevel("cafesim") == logging.WARNING)

	assert.Error(t, InitLogger("LOUD"))
}

func TestRootFlags(t *testing.T) {
	for _, name := range []string{"seed", "start-date", "end-date", "formats", "log-level"} {
		assert.NotNil(t, rootCmd.Flags().Lookup(name), name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
