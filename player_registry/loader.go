package player_registry

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/hssqz/dragon-tiger/common"
	"github.com/hssqz/dragon-tiger/model"
)

// LoadHMList 从CSV文件加载游资名人录（列: name, desc, orgs）。
// orgs 列是tushare返回的类JSON列表（单引号），逐条解析，
// 解析失败的条目跳过，不影响其余条目。
func LoadHMList(path string) ([]model.HMEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开名人录文件失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取名人录CSV失败: %w", err)
	}

	var entries []model.HMEntry
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == "name" {
			continue // 表头
		}
		if len(rec) < 3 {
			common.Log.Debugf("名人录第%d行列数不足，跳过", i+1)
			continue
		}
		orgs, err := ParseOrgs(rec[2])
		if err != nil {
			common.Log.Debugf("名人录条目 %q 的orgs解析失败: %v，跳过", rec[0], err)
			continue
		}
		entries = append(entries, model.HMEntry{
			Name: strings.TrimSpace(rec[0]),
			Desc: strings.TrimSpace(rec[1]),
			Orgs: orgs,
		})
	}

	common.Log.Infof("成功加载%d个游资名人录条目", len(entries))
	return entries, nil
}

// ParseOrgs 解析orgs字段，"['a', 'b']" 或标准JSON列表
func ParseOrgs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" {
		return nil, nil
	}
	normalized := strings.ReplaceAll(raw, "'", `"`)
	var orgs []string
	if err := json.Unmarshal([]byte(normalized), &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// LoadStyleProfiles 从游资风格画像表加载画像数据。
// 文件是竖线分隔的表格（markdown表），列:
// 游资名称 | 核心交易档案 | 标的选择偏好 | 盘中操盘密码 | 软实力与市场标签
func LoadStyleProfiles(path string) (map[string]model.StyleProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("打开风格画像文件失败: %w", err)
	}

	profiles := map[string]model.StyleProfile{}
	inTable := false

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "|") {
			continue
		}
		if strings.Contains(line, "游资名称") {
			inTable = true
			continue
		}
		if strings.Contains(line, ":---") || strings.Contains(line, "---") {
			continue
		}
		if !inTable {
			continue
		}

		cols := splitTableRow(line)
		if len(cols) < 5 {
			continue
		}

		name := strings.TrimSpace(strings.ReplaceAll(cols[0], "**", ""))
		if name == "" {
			continue
		}
		profiles[name] = model.StyleProfile{
			Profile:    cellValue(cols[1]),
			Preference: cellValue(cols[2]),
			Tactics:    cellValue(cols[3]),
			Reputation: cellValue(cols[4]),
		}
	}

	common.Log.Infof("成功加载%d个游资画像", len(profiles))
	return profiles, nil
}

// splitTableRow 拆分"| a | b | c |"形式的行，去掉首尾空元素
func splitTableRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 3 {
		return nil
	}
	cols := parts[1 : len(parts)-1]
	for i := range cols {
		cols[i] = strings.TrimSpace(cols[i])
	}
	return cols
}

// cellValue "-"占位视为空
func cellValue(cell string) string {
	if cell == "-" {
		return ""
	}
	return cell
}
