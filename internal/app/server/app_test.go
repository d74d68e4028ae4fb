package server

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("config_store.type", "memory")
	viper.Set("config_store.memory.max_entries", 5)
	viper.Set("configurator.preset", "male")
	viper.Set("server.port", 0)

	app, err := NewApp()
	require.NoError(t, err)
	assert.NotNil(t, app.store)
	assert.NotNil(t, app.wsServer)
}

func TestNewAppErrors(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	viper.Set("config_store.type", "memory")
	viper.Set("configurator.preset", "robot")
	_, err := NewApp()
	assert.Error(t, err)

	viper.Set("configurator.preset", "female")
	viper.Set("config_store.type", "sqlite")
	_, err = NewApp()
	assert.Error(t, err)
}
