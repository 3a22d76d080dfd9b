// Package telegram provides a client for sending alerts via Telegram Bot API.
// It formats health-score movements into human-readable messages and handles
// delivery with retry logic for reliability.
//
// The client supports MarkdownV2 formatting and includes error handling for
// common Telegram API issues like rate limiting and network failures.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fedwatch/fedwatch/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendRatingChange alerts that the job-market health rating moved between
// collection cycles.
func (c *Client) SendRatingChange(previous, current models.HealthScore) error {
	return c.send(formatRatingChange(previous, current))
}

// SendError alerts that a collection cycle failed.
func (c *Client) SendError(err error) error {
	message := fmt.Sprintf("⚠️ *Collection cycle failed*\n\n%s", escapeMarkdownV2(err.Error()))
	return c.send(message)
}

// SendRecovery alerts that collection resumed after consecutive failures.
func (c *Client) SendRecovery(failures int) error {
	message := fmt.Sprintf("✅ *Collection recovered* after %d failed cycle\\(s\\)", failures)
	return c.send(message)
}

// send delivers a MarkdownV2 message with linear-backoff retries.
func (c *Client) send(message string) error {
	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatRatingChange formats a rating movement into a Telegram message
func formatRatingChange(previous, current models.HealthScore) string {
	directionEmoji := "📈"
	if current.Score < previous.Score {
		directionEmoji = "📉"
	}

	prevStr := escapeMarkdownV2(fmt.Sprintf("%.1f", previous.Score))
	curStr := escapeMarkdownV2(fmt.Sprintf("%.1f", current.Score))
	dateStr := escapeMarkdownV2(current.Timestamp.Format("2006-01-02 15:04:05"))

	message := fmt.Sprintf("%s *Job Market Rating: %s → %s*\n\n", directionEmoji,
		escapeMarkdownV2(previous.Rating), escapeMarkdownV2(current.Rating))
	message += fmt.Sprintf("Score: *%s* \\(was %s\\)\n", curStr, prevStr)
	message += fmt.Sprintf("📅 As of: %s\n", dateStr)

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	// Characters that need escaping in MarkdownV2:
	// _ * [ ] ( ) ~ ` > # + - = | { } . !
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
