package telegram

import (
	"fmt"
	"net/http"
	"time"

	"github.com/appdotbuilder/tele-vid-downloader/pkg/apperrors"
	apphttp "github.com/appdotbuilder/tele-vid-downloader/pkg/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Client talks to the Telegram Bot API for credential checks and file delivery.
// The endpoint is configurable so self-hosted Bot API servers (and tests) work.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// SendResult is the provider's answer to a successful file upload
type SendResult struct {
	FileID      string
	MessageID   int
	MessageLink string
}

// NewClient creates a Telegram client. An empty endpoint selects the public
// Bot API.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: apphttp.NewClient(timeout),
	}
}

// Validate performs the live identity check (getMe) for a bot credential and
// returns the bot's public handle. A rejected credential yields a
// DependencyError.
func (c *Client) Validate(token string) (string, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, c.endpoint, c.httpClient)
	if err != nil {
		return "", &apperrors.DependencyError{Message: "invalid bot token", Err: err}
	}
	return api.Self.UserName, nil
}

// SendFile uploads a local file as a document to the target chat. When the bot
// has a public handle a permalink to the resulting message is constructed.
func (c *Client) SendFile(token string, chatID int64, filePath string) (*SendResult, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, c.endpoint, c.httpClient)
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "bot authorization failed", Err: err}
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FilePath(filePath))
	msg, err := api.Send(doc)
	if err != nil {
		return nil, &apperrors.DependencyError{Message: "telegram upload failed", Err: err}
	}

	result := &SendResult{MessageID: msg.MessageID}

	// Telegram may store the upload as a document or re-encode it as a video
	switch {
	case msg.Document != nil:
		result.FileID = msg.Document.FileID
	case msg.Video != nil:
		result.FileID = msg.Video.FileID
	default:
		return nil, &apperrors.DependencyError{Message: "no file_id received from Telegram"}
	}

	if api.Self.UserName != "" {
		result.MessageLink = fmt.Sprintf("https://t.me/%s/%d", api.Self.UserName, msg.MessageID)
	}

	return result, nil
}
