// Package polish 调用生成式文本接口润色活动描述、生成拼团成功通知。
// 接口不可用时一律回退到原始文本，调用方无需处理错误。
package polish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http     *resty.Client
	endpoint string
	apiKey   string
	model    string
	log      *slog.Logger
}

func New(http *resty.Client, endpoint, apiKey, model string, log *slog.Logger) *Client {
	return &Client{
		http:     http,
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		model:    model,
		log:      log,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature float64 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Polish 润色活动描述，失败时返回原始描述
func (c *Client) Polish(ctx context.Context, title, raw string) string {
	prompt := fmt.Sprintf(`你是一个专业的社交活动组织者。请帮我润色以下活动内容，使其看起来更专业、更有吸引力。保持亲切的语气，使用适当的Emoji。

活动标题: %s
原始描述: %s

请输出润色后的Markdown格式内容。不要包含多余的解释。`, title, raw)

	text, err := c.generate(ctx, prompt, 0.7)
	if err != nil {
		c.log.Warn("润色活动描述失败，使用原始描述", "error", err, "title", title)
		return raw
	}
	return text
}

// SuccessMessage 生成拼团成功通知，失败时返回固定文案
func (c *Client) SuccessMessage(ctx context.Context, title string) string {
	fallback := fmt.Sprintf("恭喜！您参与的“%s”已拼团成功！", title)
	prompt := fmt.Sprintf("用户刚刚参加了一个名为“%s”的拼团活动并且拼团成功了。请写一条充满喜悦、活泼且温馨的系统通知，通知用户大家已经集齐，活动即将开始。请包含一些相关的Emoji。字数在40字以内。", title)

	text, err := c.generate(ctx, prompt, 0.9)
	if err != nil {
		c.log.Warn("生成拼团通知失败，使用默认文案", "error", err, "title", title)
		return fallback
	}
	return text
}

func (c *Client) generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	if c == nil || c.apiKey == "" {
		return "", fmt.Errorf("未配置 API key")
	}

	var result generateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(generateRequest{
			Contents:         []content{{Parts: []part{{Text: prompt}}}},
			GenerationConfig: generationConfig{Temperature: temperature},
		}).
		SetResult(&result).
		Post(fmt.Sprintf("%s/models/%s:generateContent", c.endpoint, c.model))
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("生成接口返回 %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", fmt.Errorf("生成接口返回空内容")
	}
	var b strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("生成接口返回空内容")
	}
	return text, nil
}
