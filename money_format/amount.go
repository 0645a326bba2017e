package money_format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hssqz/dragon-tiger/common"
)

// 金额单位换算基准
const (
	YuanPerWan = 10000.0
	YuanPerYi  = 100000000.0
	// 元为单位的格式化阈值：>= 1000万元 用亿元显示
	YiDisplayThreshold = 10000000.0
)

// ParseAmountToWan 解析金额字符串为万元数值。
// "0.65亿元" -> 6500.0, "456.11万元" -> 456.11, 纯数字视为万元。
// 解析失败返回 0.0 并记录 warning，不会报错中断。
func ParseAmountToWan(text string) float64 {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0.0
	}
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "元", "")

	// 亿/万 同时出现属于格式错误，走统一的失败路径
	if strings.Contains(clean, "亿") {
		num, err := strconv.ParseFloat(strings.ReplaceAll(clean, "亿", ""), 64)
		if err != nil {
			common.Log.Warnf("金额解析失败: %q, 错误: %v", text, err)
			return 0.0
		}
		return num * YuanPerWan
	}

	if strings.Contains(clean, "万") {
		num, err := strconv.ParseFloat(strings.ReplaceAll(clean, "万", ""), 64)
		if err != nil {
			common.Log.Warnf("金额解析失败: %q, 错误: %v", text, err)
			return 0.0
		}
		return num
	}

	num, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		common.Log.Warnf("金额解析失败: %q, 错误: %v", text, err)
		return 0.0
	}
	return num
}

// ParsePercentage 解析百分比字符串为数值，"4.46%" -> 4.46。
// 解析失败返回 0.0 并记录 warning。
func ParsePercentage(text string) float64 {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return 0.0
	}
	clean = strings.TrimSpace(strings.ReplaceAll(clean, "%", ""))

	num, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		common.Log.Warnf("百分比解析失败: %q, 错误: %v", text, err)
		return 0.0
	}
	return num
}

// FormatAmount 金额单位转换：元 -> 万元/亿元展示字符串。
// < 1000万元 用万元，否则用亿元，保留两位小数。
func FormatAmount(yuan float64) string {
	if math.IsNaN(yuan) || yuan == 0 {
		return "0.00万元"
	}
	if yuan < YiDisplayThreshold {
		return fmt.Sprintf("%.2f万元", yuan/YuanPerWan)
	}
	return fmt.Sprintf("%.2f亿元", yuan/YuanPerYi)
}

// FormatPercentage 百分比格式化，保留两位小数并添加%符号
func FormatPercentage(pct float64) string {
	if math.IsNaN(pct) {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatVolume 成交量格式化：手 -> 万手
func FormatVolume(lots float64) string {
	if math.IsNaN(lots) {
		return "0.00万手"
	}
	return fmt.Sprintf("%.2f万手", lots/10000.0)
}

// FormatPrice 价格保留两位小数
func FormatPrice(price float64) float64 {
	if math.IsNaN(price) {
		return 0.00
	}
	return math.Round(price*100) / 100
}

// FormatDateDisplay 日期格式化：YYYYMMDD -> YYYY-MM-DD
func FormatDateDisplay(date string) string {
	if len(date) != 8 {
		return date
	}
	return date[:4] + "-" + date[4:6] + "-" + date[6:8]
}

// Round1 保留一位小数，集中度与博弈指标的统一精度
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
