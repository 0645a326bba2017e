package deepseek_reviewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	DeepSeekAPIURL = "https://api.deepseek.com/chat/completions"
	ModelName      = "deepseek-chat"
)

// Reviewer DeepSeek聊天接口客户端
type Reviewer struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *http.Client
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ChatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewReviewer(apiKey string) *Reviewer {
	return &Reviewer{
		APIKey:  apiKey,
		BaseURL: DeepSeekAPIURL,
		Model:   ModelName,
		Client:  &http.Client{Timeout: 180 * time.Second},
	}
}

func (r *Reviewer) sendChat(history []Message) (string, error) {
	reqBody := ChatRequest{
		Model:    r.Model,
		Messages: history,
		Stream:   false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest("POST", r.BaseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.APIKey)

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求DeepSeek失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("DeepSeek接口返回%d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("解析DeepSeek响应失败: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("DeepSeek响应中没有内容")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// cleanJSONString 去除模型输出里的Markdown代码块标记
func cleanJSONString(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = content[7:]
	} else if strings.HasPrefix(content, "```") {
		content = content[3:]
	}
	if strings.HasSuffix(content, "```") {
		content = content[:len(content)-3]
	}
	return strings.TrimSpace(content)
}
