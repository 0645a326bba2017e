package player_registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHMList(t *testing.T) {
	csvContent := `name,desc,orgs
章盟主,顶级游资,"['国泰君安上海江苏路', '中信证券溧阳路']"
孤行者,短线客,"['华泰证券深圳益田路']"
坏行,描述不完整
烂orgs,某游资,not a list
空orgs,观察席,[]
`
	path := writeTempFile(t, "hm_list.csv", csvContent)

	entries, err := LoadHMList(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "章盟主", entries[0].Name)
	assert.Equal(t, []string{"国泰君安上海江苏路", "中信证券溧阳路"}, entries[0].Orgs)
	assert.Equal(t, "孤行者", entries[1].Name)
	assert.Equal(t, "空orgs", entries[2].Name)
	assert.Empty(t, entries[2].Orgs)
}

func TestLoadHMListMissingFile(t *testing.T) {
	_, err := LoadHMList(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParseOrgs(t *testing.T) {
	orgs, err := ParseOrgs("['a', 'b']")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, orgs)

	orgs, err = ParseOrgs(`["标准JSON"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"标准JSON"}, orgs)

	orgs, err = ParseOrgs("")
	require.NoError(t, err)
	assert.Nil(t, orgs)

	orgs, err = ParseOrgs("[]")
	require.NoError(t, err)
	assert.Nil(t, orgs)

	_, err = ParseOrgs("随便写的")
	assert.Error(t, err)
}

func TestLoadStyleProfiles(t *testing.T) {
	md := `# 游资风格画像分析

| 游资名称 | 核心交易档案 | 标的选择偏好 | 盘中操盘密码 | 软实力与市场标签 |
| :--- | :--- | :--- | :--- | :--- |
| **章盟主** | 超大资金 | 高位龙头 | 尾盘扫货 | 带动效应强 |
| 炒股养家 | 情绪派 | 人气股 | - | 市场灯塔 |
| | 空名称行 | x | y | z |
`
	path := writeTempFile(t, "styles.md", md)

	profiles, err := LoadStyleProfiles(path)
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	zhang := profiles["章盟主"]
	assert.Equal(t, "超大资金", zhang.Profile)
	assert.Equal(t, "高位龙头", zhang.Preference)
	assert.Equal(t, "尾盘扫货", zhang.Tactics)
	assert.Equal(t, "带动效应强", zhang.Reputation)

	// "-"占位视为空
	yangjia := profiles["炒股养家"]
	assert.Equal(t, "情绪派", yangjia.Profile)
	assert.Empty(t, yangjia.Tactics)
}

func TestLoadStyleProfilesMissingFile(t *testing.T) {
	_, err := LoadStyleProfiles(filepath.Join(t.TempDir(), "nope.md"))
	assert.Error(t, err)
}
