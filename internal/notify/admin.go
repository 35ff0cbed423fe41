package notify

import (
	"context"
	"fmt"
	"time"

	"campcrew-funnel/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Updater is the polling side of *tgbotapi.BotAPI.
type Updater interface {
	Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

var _ Updater = (*tgbotapi.BotAPI)(nil)

type LeadArchive interface {
	Export(ctx context.Context) ([]byte, error)
	Stats(ctx context.Context) (storage.Stats, error)
}

var _ LeadArchive = (*storage.Journal)(nil)

// AdminBot answers operator commands about the lead journal.
type AdminBot struct {
	api      Updater
	archive  LeadArchive
	adminIDs map[int64]bool
	logger   *zap.Logger
}

func NewAdminBot(api Updater, archive LeadArchive, adminIDs []int64, logger *zap.Logger) *AdminBot {
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}
	return &AdminBot{
		api:      api,
		archive:  archive,
		adminIDs: admins,
		logger:   logger,
	}
}

func (b *AdminBot) Start(ctx context.Context) error {
	b.logger.Info("Starting admin bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Shutting down admin bot")
			b.api.StopReceivingUpdates()
			return nil

		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil && update.Message.IsCommand() {
				b.handleCommand(ctx, update.Message)
			}
		}
	}
}

func (b *AdminBot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !b.adminIDs[chatID] {
		b.logger.Debug("Ignoring command from non-admin",
			zap.Int64("chat_id", chatID),
			zap.String("command", msg.Command()))
		return
	}

	switch msg.Command() {
	case "start", "help":
		b.send(tgbotapi.NewMessage(chatID, "사용 가능한 명령어\n/leads - 전체 신청 내역 엑셀\n/stats - 신청 통계"))
	case "leads", "export":
		b.handleExport(ctx, chatID)
	case "stats":
		b.handleStats(ctx, chatID)
	default:
		b.sendError(chatID, "알 수 없는 명령어입니다.")
	}
}

func (b *AdminBot) handleExport(ctx context.Context, chatID int64) {
	data, err := b.archive.Export(ctx)
	if err != nil {
		b.logger.Error("Failed to export leads", zap.Error(err))
		b.sendError(chatID, "신청 내역을 내보내지 못했습니다.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("leads_report_%s.xlsx", time.Now().Format("20060102")),
		Bytes: data,
	})
	doc.Caption = "📊 전체 신청 내역"
	b.send(doc)
}

func (b *AdminBot) handleStats(ctx context.Context, chatID int64) {
	stats, err := b.archive.Stats(ctx)
	if err != nil {
		b.logger.Error("Failed to get lead statistics", zap.Error(err))
		b.sendError(chatID, "통계를 불러오지 못했습니다.")
		return
	}

	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf(
		"📊 신청 통계\n\n"+
			"전체: %d\n"+
			"오늘: %d\n"+
			"✅ 접수 완료: %d\n"+
			"❌ 전송 실패: %d",
		stats.Total, stats.Today, stats.Created, stats.Failed,
	)))
}

func (b *AdminBot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Error("Failed to send admin reply", zap.Error(err))
	}
}

func (b *AdminBot) sendError(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, "❌ "+text))
}
