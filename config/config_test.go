package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/tallybot/tallybot/config"
)

func TestNewWithDefault(t *testing.T) {
	v := config.NewViperWithDefaults()

	assert.Equal(t, false, v.GetBool(config.DebugKey), "%s should be %t", config.DebugKey, false)
	assert.Equal(t, "Local", v.GetString(config.TimeLocationKey), "%s should be %s", config.TimeLocationKey, "Local")
	assert.Equal(t, "leveldb", v.GetString(config.StorageBackendKey), "%s should be %s", config.StorageBackendKey, "leveldb")
	assert.Equal(t, 3000, v.GetInt(config.HTTPPortKey), "%s should be %d", config.HTTPPortKey, 3000)
	assert.Equal(t, 0, v.GetInt(config.UserInfoCacheSizeKey), "%s should be %d", config.UserInfoCacheSizeKey, 0)
	assert.Equal(t, "00:05", v.GetString(config.MaintenanceAtTimeKey), "%s should be %s", config.MaintenanceAtTimeKey, "00:05")
}

func TestLayerConfigWithDefaults(t *testing.T) {
	v := viper.New()

	for key := range config.NewViperWithDefaults().AllSettings() {
		assert.Nil(t, v.Get(key))
	}

	v = config.LayerConfigWithDefaults(v)
	for key, expectedVal := range config.NewViperWithDefaults().AllSettings() {
		assert.Equal(t, expectedVal, v.Get(key), "%s should be %v", key, expectedVal)
	}
}

func TestLayeredConfigWithDefaultsAndOverrides(t *testing.T) {
	v := viper.New()
	v = config.LayerConfigWithDefaults(v)
	v.Set(config.HTTPPortKey, 8080)
	v.Set(config.StorageBackendKey, "datastore")

	v = config.LayerConfigWithDefaults(v)

	assert.Equal(t, 8080, v.GetInt(config.HTTPPortKey), "%s should be %v", config.HTTPPortKey, 8080)
	assert.Equal(t, "datastore", v.GetString(config.StorageBackendKey), "%s should be %v", config.StorageBackendKey, "datastore")
}

func TestGetTimeLocationWithDefault(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "Local")

	timeLoc, err := config.GetTimeLocation(v)

	assert.Nil(t, err)
	if assert.NotNil(t, timeLoc) {
		assert.Conditionf(t, func() bool { return timeLoc.String() == "Local" || timeLoc.String() == "UTC" }, "timeLoc should be either Local or UTC but was %s", timeLoc.String())
	}
}

func TestGetTimeLocationWithTimezoneId(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "America/Los_Angeles")

	timeLoc, err := config.GetTimeLocation(v)

	assert.Nil(t, err)
	if assert.NotNil(t, timeLoc) {
		assert.Equal(t, "America/Los_Angeles", timeLoc.String())
	}
}

func TestGetTimeLocationWithInvalidValue(t *testing.T) {
	v := viper.New()
	v.Set(config.TimeLocationKey, "invalid")

	_, err := config.GetTimeLocation(v)

	if assert.NotNil(t, err) {
		assert.Contains(t, err.Error(), "invalid")
	}
}
