package notify

import (
	"context"
	"fmt"
	"time"

	"campcrew-funnel/internal/funnel"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Sender is the part of *tgbotapi.BotAPI the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ Sender = (*tgbotapi.BotAPI)(nil)

// Notifier tells operators about new leads over Telegram.
type Notifier struct {
	sender    Sender
	channelID int64
	adminIDs  []int64
	logger    *zap.Logger
}

func New(sender Sender, channelID int64, adminIDs []int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		channelID: channelID,
		adminIDs:  adminIDs,
		logger:    logger,
	}
}

// Connect authorizes the Bot API client for token.
func Connect(token string, logger *zap.Logger) (*tgbotapi.BotAPI, error) {
	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	logger.Info("Bot authorized",
		zap.String("username", botAPI.Self.UserName),
		zap.Int64("id", botAPI.Self.ID))

	return botAPI, nil
}

// NotifyNewLead sends a short note to the channel and the full lead with an
// xlsx sheet to each admin. Delivery failures are logged only.
func (n *Notifier) NotifyNewLead(ctx context.Context, lead funnel.Snapshot, recordID string) {
	if n.channelID == 0 {
		n.logger.Debug("Channel notifications disabled - no channel ID configured")
	} else {
		msg := tgbotapi.NewMessage(n.channelID, formatChannelMessage(lead))
		if _, err := n.sender.Send(msg); err != nil {
			n.logger.Error("Failed to send channel notification",
				zap.Int64("channel_id", n.channelID),
				zap.Error(err))
		}
	}

	for _, adminID := range n.adminIDs {
		if ctx.Err() != nil {
			n.logger.Warn("Admin notifications interrupted", zap.Error(ctx.Err()))
			return
		}
		if adminID == 0 {
			n.logger.Warn("Skipping notification to zero chat ID")
			continue
		}
		n.sendAdminNotification(adminID, lead, recordID)
	}
}

func (n *Notifier) sendAdminNotification(chatID int64, lead funnel.Snapshot, recordID string) {
	msg := tgbotapi.NewMessage(chatID, FormatLeadNotification(lead, recordID))
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error("Failed to send lead notification",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return
	}

	sheet, err := LeadSheet(lead, recordID)
	if err != nil {
		n.logger.Error("Failed to create Excel file for lead",
			zap.String("record_id", recordID),
			zap.Error(err))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("lead_%s.xlsx", time.Now().Format("20060102_1504")),
		Bytes: sheet,
	})
	doc.Caption = fmt.Sprintf("📊 %s 신청서", lead.FormData.AccommodationName)
	if _, err := n.sender.Send(doc); err != nil {
		n.logger.Error("Failed to send Excel file to admin",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}
