package player_registry

import (
	"strings"

	"github.com/hssqz/dragon-tiger/model"
)

// 玩家类型
const (
	TypeOrdinary    = "普通席位"
	TypeInstitution = "机构"
	TypeQuant       = "量化"
	TypeFamous      = "知名游资"
)

// InstitutionMarker 席位名称中出现该字样时，即使名人录未命中也判为机构
const InstitutionMarker = "机构专用"

// 量化类型（按名人录名称精确匹配）
var quantNames = []string{
	"量化抢筹",
	"量化打扮",
	"量化基金",
	"竞价抢筹",
}

// 机构类型（按名人录名称精确匹配）
var institutionNames = []string{
	"深股通专用",
	"沪股通专用",
	"机构专用",
	"境外机构",
	"中信总部",
}

// 风格占位
var (
	styleUnknown   = map[string]string{"风格画像": "风格未明"}
	styleNoProfile = map[string]string{"风格画像": "暂无详细信息"}
	descUnknown    = "暂无相关信息"
)

// Registry 游资名人录 + 风格画像表。加载一次后只读，可在多个
// facts_builder 调用间并发共享。
type Registry struct {
	entries []model.HMEntry
	styles  map[string]model.StyleProfile
}

func New(entries []model.HMEntry, styles map[string]model.StyleProfile) *Registry {
	return &Registry{entries: entries, styles: styles}
}

func (r *Registry) EntryCount() int { return len(r.entries) }
func (r *Registry) StyleCount() int { return len(r.styles) }

// Classify 识别席位背后的玩家身份。
// 名人录别名与席位名称做双向子串匹配（容忍不完整的法人名称），
// 首个命中即停止扫描；未命中时按"机构专用"字样兜底判机构，
// 否则为普通席位。
func (r *Registry) Classify(seatName string) model.PlayerProfile {
	for _, entry := range r.entries {
		for _, org := range entry.Orgs {
			if org == "" {
				continue
			}
			if strings.Contains(seatName, org) || strings.Contains(org, seatName) {
				playerType := determinePlayerType(entry.Name)
				return model.PlayerProfile{
					Name:        entry.Name,
					Type:        playerType,
					Description: entry.Desc,
					Style:       r.lookupStyle(entry.Name),
				}
			}
		}
	}

	playerType := TypeOrdinary
	if strings.Contains(seatName, InstitutionMarker) {
		playerType = TypeInstitution
	}
	return model.PlayerProfile{
		Name:        playerType,
		Type:        playerType,
		Description: descUnknown,
		Style:       styleUnknown,
	}
}

// determinePlayerType 名人录命中后的类型判定，优先级：量化 > 机构 > 游资
func determinePlayerType(name string) string {
	for _, q := range quantNames {
		if name == q {
			return TypeQuant
		}
	}
	for _, inst := range institutionNames {
		if name == inst {
			return TypeInstitution
		}
	}
	return TypeFamous
}

// lookupStyle 从风格画像表中取出完整画像，无记录时返回占位
func (r *Registry) lookupStyle(playerName string) map[string]string {
	profile, ok := r.styles[playerName]
	if !ok {
		return styleNoProfile
	}

	style := map[string]string{}
	if profile.Profile != "" {
		style["核心交易档案"] = profile.Profile
	}
	if profile.Preference != "" {
		style["标的选择偏好"] = profile.Preference
	}
	if profile.Tactics != "" {
		style["盘中操盘密码"] = profile.Tactics
	}
	if profile.Reputation != "" {
		style["软实力与市场标签"] = profile.Reputation
	}
	if len(style) == 0 {
		return styleNoProfile
	}
	return style
}
