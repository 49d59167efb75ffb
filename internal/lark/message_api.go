package lark

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	larkIm "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	"go.uber.org/zap"
)

// Receive id types accepted by the message API
const (
	ReceiveIDChat  = "chat_id"
	ReceiveIDOpen  = "open_id"
	ReceiveIDEmail = "email"
)

// MessageAPI handles Lark messaging operations
type MessageAPI struct {
	client *Client
	logger *zap.Logger
}

// NewMessageAPI creates a new message API handler
func NewMessageAPI(client *Client, logger *zap.Logger) *MessageAPI {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageAPI{
		client: client,
		logger: logger,
	}
}

// SendMessage sends a message to a user or group
func (m *MessageAPI) SendMessage(ctx context.Context, receiveIDType, receiveID, msgType, content string) (string, error) {
	req := larkIm.NewCreateMessageReqBuilder().
		ReceiveIdType(receiveIDType).
		Body(larkIm.NewCreateMessageReqBodyBuilder().
			ReceiveId(receiveID).
			MsgType(msgType).
			Content(content).
			Build()).
		Build()

	resp, err := m.client.client.Im.Message.Create(ctx, req)
	if err != nil {
		m.logger.Error("Failed to send message",
			zap.String("receive_id", receiveID),
			zap.Error(err))
		return "", fmt.Errorf("failed to send message: %w", err)
	}

	if !resp.Success() {
		m.logger.Error("API returned failure",
			zap.String("receive_id", receiveID),
			zap.Int("code", resp.Code),
			zap.String("msg", resp.Msg))
		return "", fmt.Errorf("API error: code=%d, msg=%s", resp.Code, resp.Msg)
	}

	messageID := ""
	if resp.Data != nil && resp.Data.MessageId != nil {
		messageID = *resp.Data.MessageId
	}

	m.logger.Info("Message sent successfully",
		zap.String("message_id", messageID),
		zap.String("receive_id", receiveID))

	return messageID, nil
}

// SendText sends a plain text message
func (m *MessageAPI) SendText(ctx context.Context, receiveIDType, receiveID, text string) error {
	if receiveID == "" {
		return errors.New("receive id cannot be empty")
	}
	content, err := TextContent(text)
	if err != nil {
		return err
	}
	_, err = m.SendMessage(ctx, receiveIDType, receiveID, "text", content)
	return err
}

// TextContent builds the JSON body of a text message
func TextContent(text string) (string, error) {
	if text == "" {
		return "", errors.New("text cannot be empty")
	}
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", fmt.Errorf("failed to encode text message: %w", err)
	}
	return string(body), nil
}
