package deepseek_reviewer

import (
	"encoding/json"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
)

const postPromptHeader = `# 龙虎榜资金博弈分析报告生成任务

你是一位资深的A股分析师和内容创作专家。现在需要基于结构化事实与洞察数据，创作一篇专业且易读的龙虎榜分析报告（Markdown格式）。

`

const postPromptRules = `
## 报告创作要求

结构：吸引人的标题 -> 核心摘要（3-4句话概括战局本质）-> 多方阵营分析 -> 空方阵营分析 -> 战局评估 -> 操作启示与风险提示。

内容：所有数据必须与输入完全一致；逻辑链条完整；体现专业的游资分析洞察；复杂概念用通俗语言解释；提供具体可操作的建议。

风格：客观理性，基于数据分析；用**加粗**突出关键信息；使用标题、列表、分段增强阅读体验。直接输出Markdown正文，不要附加任何解释。`

// GeneratePost 第三阶段：把事实+洞察转换为用户可读的分析报告
func (r *Reviewer) GeneratePost(facts model.StructuredFacts, insights *FundingBattleInsights) (string, error) {
	factsJSON, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return "", err
	}
	insightsJSON, err := json.MarshalIndent(insights, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := postPromptHeader +
		"## 结构化事实 (StructuredFacts)\n```json\n" + string(factsJSON) + "\n```\n\n" +
		"## 洞察数据 (FundingBattleInsights)\n```json\n" + string(insightsJSON) + "\n```\n" +
		postPromptRules

	common.Log.Infof("请求LLM生成分析报告: %s (%s)", facts.Name, facts.TsCode)
	return r.sendChat([]Message{{Role: "user", Content: prompt}})
}
