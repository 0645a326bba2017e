package deepseek_reviewer

import (
	"encoding/json"
	"fmt"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
)

// --- FundingBattleInsights 洞察层输出 ---

type FundingBattleInsights struct {
	LongSideInsights  SideInsights     `json:"long_side_insights"`
	ShortSideInsights SideInsights     `json:"short_side_insights"`
	BattleAssessment  BattleAssessment `json:"battle_assessment"`
}

type SideInsights struct {
	CorePlayers []CorePlayer `json:"core_players"`
	Summary     SideSummary  `json:"summary"`
}

type CorePlayer struct {
	SeatName   string         `json:"seat_name"`
	PlayerType string         `json:"player_type"`
	RoleTags   []string       `json:"role_tags"`
	Reasons    []string       `json:"reasons"`
	Analysis   PlayerAnalysis `json:"analysis"`
}

type PlayerAnalysis struct {
	Actions       string   `json:"actions"`
	IntentionTags []string `json:"intention_tags"`
	Intention     string   `json:"intention"`
}

type SideSummary struct {
	StyleTags  []string `json:"style_tags"`
	Conclusion string   `json:"conclusion"`
}

type BattleAssessment struct {
	LongStrengthScore  int      `json:"long_strength_score"`
	ShortStrengthScore int      `json:"short_strength_score"`
	BattleTags         []string `json:"battle_tags"`
	KeyTakeaway        string   `json:"key_takeaway"`
}

const insightsPromptHeader = `# 游资博弈专项解读与战局评估任务

你是一位顶级的A股龙虎榜分析师，擅长通过席位操作行为"辨意图"。现有经代码预处理的StructuredFacts，请基于此进行深度分析，只输出纯粹的洞察部分，格式为FundingBattleInsights。

核心使命：穿透数据迷雾，精准锁定并深度解读"知名游资"的核心战术，并对整场战局的性质、走向和关键博弈点做出专业评估。游资是主角，普通席位是背景。

## 战报事实 (StructuredFacts)
`

const insightsPromptRules = `
## 分析框架与输出要求

1. 不要复述或格式化任何输入数据，你的任务是创造新信息（洞察）。
2. 阵营洞察：在各方players中挑选最重要的1-2名核心主力填入core_players，为其打上role_tags并给出reasons；analysis.actions阐述操作行为，intention_tags给出1-3个意图标签，intention结合其净额与风格画像解释战术意图。
3. 意图判断逻辑：大幅净买入->坚决做多；大幅净卖出->坚决做空；买卖均衡->做T套利；"打板"风格+大额净买入->尝试拉升；"砸盘"风格+大额净卖出->派发砸盘。
4. 阵营总结：style_tags提炼该阵营整体风格，conclusion一句话总结战术意图和构成。
5. 战局评估：long_strength_score/short_strength_score给出0-100实力评分，battle_tags体现战局本质，key_takeaway给出最核心的结论。

约束：所有分析必须严格基于StructuredFacts，禁止猜测未给出的信息（如历史K线、技术指标）。
输出必须是严格的、不含任何额外注释的FundingBattleInsights JSON对象，字段结构为：
{"long_side_insights":{"core_players":[{"seat_name":"...","player_type":"...","role_tags":[],"reasons":[],"analysis":{"actions":"...","intention_tags":[],"intention":"..."}}],"summary":{"style_tags":[],"conclusion":"..."}},"short_side_insights":{...同上...},"battle_assessment":{"long_strength_score":0,"short_strength_score":0,"battle_tags":[],"key_takeaway":"..."}}`

// GenerateInsights 第二阶段：把结构化事实交给LLM生成纯洞察
func (r *Reviewer) GenerateInsights(facts model.StructuredFacts) (*FundingBattleInsights, error) {
	factsJSON, err := json.MarshalIndent(facts, "", "  ")
	if err != nil {
		return nil, err
	}

	prompt := insightsPromptHeader + "```json\n" + string(factsJSON) + "\n```\n" + insightsPromptRules

	common.Log.Infof("请求LLM生成洞察: %s (%s)", facts.Name, facts.TsCode)
	raw, err := r.sendChat([]Message{{Role: "user", Content: prompt}})
	if err != nil {
		return nil, err
	}

	var insights FundingBattleInsights
	if err := json.Unmarshal([]byte(cleanJSONString(raw)), &insights); err != nil {
		return nil, fmt.Errorf("洞察JSON解析失败: %w", err)
	}
	return &insights, nil
}
