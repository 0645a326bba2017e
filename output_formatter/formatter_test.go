package output_formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hssqz/dragon-tiger/model"
)

// 中文必须原样写出，不能被转义成\uXXXX
func TestSaveJSONKeepsNonASCII(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "facts.json")
	facts := model.StructuredFacts{
		TsCode: "600519.SH",
		Name:   "贵州茅台",
		BattleFacts: model.BattleFacts{
			Winner: "多方",
		},
	}

	require.NoError(t, SaveJSON(path, facts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "贵州茅台")
	assert.Contains(t, content, "多方")
	assert.NotContains(t, content, `\u`)
	// 两空格缩进
	assert.Contains(t, content, "\n  \"ts_code\"")
}

func TestSaveJSONCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.json")
	require.NoError(t, SaveJSON(path, map[string]string{"k": "v"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posts", "report.md")
	require.NoError(t, WriteMarkdown(path, "# 标题\n\n正文"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# 标题\n\n正文", string(data))
}

func TestGenerateFileNames(t *testing.T) {
	paths := GenerateFileNames("data/output", "贵州茅台", "600519.SH")

	assert.True(t, strings.HasPrefix(paths.StructuredFacts, filepath.Join("data/output", "processed")+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(paths.StructuredFacts, "_structured_facts.json"))
	assert.True(t, strings.HasSuffix(paths.Insights, "_insights.json"))
	assert.True(t, strings.HasPrefix(paths.AnalysisReport, filepath.Join("data/output", "posts")+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(paths.AnalysisReport, "_analysis_report.md"))

	// 代码里的点换成下划线
	assert.Contains(t, paths.StructuredFacts, "600519_SH")
	assert.NotContains(t, filepath.Base(paths.StructuredFacts), "600519.SH")
	// 中文保留
	assert.Contains(t, paths.StructuredFacts, "贵州茅台")
}

// 文件名里的特殊字符剔除，三个阶段共享同一个basename
func TestGenerateFileNamesCleansName(t *testing.T) {
	paths := GenerateFileNames("out", "ST*南方?/", "000001.SZ")

	base := filepath.Base(paths.StructuredFacts)
	assert.NotContains(t, base, "*")
	assert.NotContains(t, base, "?")
	assert.Contains(t, base, "ST南方")

	factsBase := strings.TrimSuffix(filepath.Base(paths.StructuredFacts), "_structured_facts.json")
	insightsBase := strings.TrimSuffix(filepath.Base(paths.Insights), "_insights.json")
	reportBase := strings.TrimSuffix(filepath.Base(paths.AnalysisReport), "_analysis_report.md")
	assert.Equal(t, factsBase, insightsBase)
	assert.Equal(t, factsBase, reportBase)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "短名", truncate("短名", 18))
	long := "国泰君安证券股份有限公司上海江苏路证券营业部"
	got := truncate(long, 18)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 18+3, len([]rune(got)))
}
