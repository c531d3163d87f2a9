package tallybot_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tallybot/tallybot"
)

type countingLoader struct {
	loads int
}

func (l *countingLoader) GetUserInfo(teamID string, userID string) (user *tallybot.UserInfo, err error) {
	l.loads++
	return &tallybot.UserInfo{ID: userID, DisplayName: "name-" + userID}, nil
}

func TestCachingUserInfoFinderCachesLoads(t *testing.T) {
	v := viper.New()
	v.Set("userInfoCacheSize", 10)

	loader := new(countingLoader)
	uf, err := tallybot.NewCachingUserInfoFinder(v, loader, testLogger())
	require.NoError(t, err)

	first, err := uf.GetUserInfo("T1", "U1")
	require.NoError(t, err)
	second, err := uf.GetUserInfo("T1", "U1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, loader.loads)
}

func TestCachingUserInfoFinderKeysByTeam(t *testing.T) {
	v := viper.New()
	v.Set("userInfoCacheSize", 10)

	loader := new(countingLoader)
	uf, err := tallybot.NewCachingUserInfoFinder(v, loader, testLogger())
	require.NoError(t, err)

	_, err = uf.GetUserInfo("T1", "U1")
	require.NoError(t, err)
	_, err = uf.GetUserInfo("T2", "U1")
	require.NoError(t, err)

	assert.Equal(t, 2, loader.loads)
}

func TestCachingUserInfoFinderDisabledCache(t *testing.T) {
	loader := new(countingLoader)
	uf, err := tallybot.NewCachingUserInfoFinder(viper.New(), loader, testLogger())
	require.NoError(t, err)

	_, err = uf.GetUserInfo("T1", "U1")
	require.NoError(t, err)
	_, err = uf.GetUserInfo("T1", "U1")
	require.NoError(t, err)

	assert.Equal(t, 2, loader.loads)
}

func TestUserInfoNameFallsBackToRealName(t *testing.T) {
	withDisplay := &tallybot.UserInfo{DisplayName: "display", RealName: "Real Name"}
	withoutDisplay := &tallybot.UserInfo{RealName: "Real Name"}

	assert.Equal(t, "display", withDisplay.Name())
	assert.Equal(t, "Real Name", withoutDisplay.Name())
}
