// Package config provides the configuration keys and defaults for a tallybot
// instance along with viper helpers to load them
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Configuration keys
const (
	DebugKey                 = "debug"                 // Debug mode, boolean value
	TimeLocationKey          = "timeLocation"          // Time location used for maintenance scheduling, string value. Defaults to Local
	StoragePathKey           = "storagePath"           // Path to the directory holding the leveldb database, string value
	StorageBackendKey        = "storageBackend"        // Storage backend, one of leveldb or datastore. Defaults to leveldb
	GCloudProjectIDKey       = "gcloudProjectID"       // Google cloud project id, string value. Required with the datastore backend
	GCloudCredentialsFileKey = "gcloudCredentialsFile" // Path to a google cloud credentials file, string value. Optional with the datastore backend
	SigningSecretKey         = "signingSecret"         // Slack signing secret used to verify incoming requests, string value
	ClientIDKey              = "clientID"              // Slack oauth client id, string value
	ClientSecretKey          = "clientSecret"          // Slack oauth client secret, string value
	OAuthRedirectURIKey      = "oauthRedirectURI"      // Redirect uri registered with the slack app, string value
	HTTPPortKey              = "httpPort"              // Port the http server listens on, int value. Defaults to 3000
	UserInfoCacheSizeKey     = "userInfoCacheSize"     // The number of entries to keep in the user info cache, int value. Defaults to no caching
	TeamClientCacheSizeKey   = "teamClientCacheSize"   // The number of per-team slack clients to keep around, int value
	MaintenanceAtTimeKey     = "maintenanceAtTime"     // Time of day the maintenance pass runs, string value in 24h HH:MM format
)

const (
	defaultHTTPPort            = 3000
	defaultStorageBackend      = "leveldb"
	defaultStoragePath         = "~/.tallybot"
	defaultTimeLocation        = "Local"
	defaultUserInfoCacheSize   = 0
	defaultTeamClientCacheSize = 32
	defaultMaintenanceAtTime   = "00:05"
)

// NewViperWithDefaults creates a new viper instance with all defaults set
func NewViperWithDefaults() (v *viper.Viper) {
	v = viper.New()
	v.SetDefault(DebugKey, false)
	v.SetDefault(TimeLocationKey, defaultTimeLocation)
	v.SetDefault(StoragePathKey, defaultStoragePath)
	v.SetDefault(StorageBackendKey, defaultStorageBackend)
	v.SetDefault(HTTPPortKey, defaultHTTPPort)
	v.SetDefault(UserInfoCacheSizeKey, defaultUserInfoCacheSize)
	v.SetDefault(TeamClientCacheSizeKey, defaultTeamClientCacheSize)
	v.SetDefault(MaintenanceAtTimeKey, defaultMaintenanceAtTime)

	return v
}

// LayerConfigWithDefaults layers the input viper instance on top of an
// instance with defaults so that every key resolves to at least its default
// value
func LayerConfigWithDefaults(v *viper.Viper) (layered *viper.Viper) {
	layered = NewViperWithDefaults()

	for key, value := range v.AllSettings() {
		layered.Set(key, value)
	}

	return layered
}

// GetTimeLocation reads the TimeLocationKey value and loads the matching
// time location
func GetTimeLocation(v *viper.Viper) (timeLoc *time.Location, err error) {
	timeLocationID := v.GetString(TimeLocationKey)

	timeLoc, err = time.LoadLocation(timeLocationID)
	if err != nil {
		return nil, fmt.Errorf("Invalid time location value [%s]: %v", timeLocationID, err)
	}

	return timeLoc, nil
}
