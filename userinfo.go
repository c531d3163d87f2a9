package tallybot

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/spf13/viper"
)

const (
	userInfoCacheSizeKey           = "userInfoCacheSize" // The number of entries to keep in the user info cache, int value. Defaults to no caching
	userInfoCacheSizeDisabledValue = 0
)

// UserInfo is the subset of a slack user's profile the bot cares about
type UserInfo struct {
	ID          string
	DisplayName string
	RealName    string
	IsBot       bool
	IsAdmin     bool
}

// Name returns the user's display name, falling back to the real name when
// the profile has no display name set
func (u *UserInfo) Name() (name string) {
	if u.DisplayName != "" {
		return u.DisplayName
	}

	return u.RealName
}

// UserInfoFinder defines the interface for finding a slack user's info within
// a given team
type UserInfoFinder interface {
	GetUserInfo(teamID string, userID string) (user *UserInfo, err error)
}

// cachingUserInfoFinder holds a cache and a loading UserInfoFinder to implement
// the UserInfoFinder loading entries from cache
type cachingUserInfoFinder struct {
	loader        UserInfoFinder
	logger        SLogger
	userInfoCache *lru.ARCCache
}

// NewCachingUserInfoFinder creates a new user info service with caching if
// enabled via UserInfoCacheSizeKey. It requires an implementation of the
// interface that will do the actual loading when not in cache
func NewCachingUserInfoFinder(v *viper.Viper, loader UserInfoFinder, logger SLogger) (uf UserInfoFinder, err error) {
	cuf := new(cachingUserInfoFinder)

	cs := v.GetInt(userInfoCacheSizeKey)

	if cs > userInfoCacheSizeDisabledValue {
		cuf.userInfoCache, err = lru.NewARC(cs)
		if err != nil {
			return nil, err
		}
	}

	cuf.loader = loader
	cuf.logger = logger

	return cuf, nil
}

func userInfoCacheKey(teamID string, userID string) (key string) {
	return teamID + "/" + userID
}

// GetUserInfo gets the user info or returns an error and a nil user if not
// found or an error occurred during retrieval
func (c cachingUserInfoFinder) GetUserInfo(teamID string, userID string) (u *UserInfo, err error) {
	if c.userInfoCache == nil {
		c.logger.Debugf("Cache disabled, loading user info for [%s] in team [%s] from slack instead\n", userID, teamID)

		return c.loader.GetUserInfo(teamID, userID)
	}

	key := userInfoCacheKey(teamID, userID)

	if cached, exists := c.userInfoCache.Get(key); exists {
		c.logger.Debugf("User info in cache [%s] so using that\n", key)

		userInfo, ok := cached.(UserInfo)
		if !ok {
			return nil, fmt.Errorf("Error converting cached value for user id [%s]", key)
		}

		return &userInfo, nil
	}

	c.logger.Debugf("User info for [%s] not found in cache, retrieving from slack and saving\n", key)
	u, err = c.loader.GetUserInfo(teamID, userID)
	if err != nil {
		return nil, err
	}

	c.userInfoCache.Add(key, *u)

	return u, nil
}
