package registration

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/regbot/internal/config"
	"github.com/edgard/regbot/internal/metrics"
	"github.com/edgard/regbot/internal/store"
)

// Callback payloads carried by the inline buttons.
const (
	PayloadPrefix = "reg:"
	PayloadDone   = "done"
)

// startParam is the deep-link parameter of the private chat invitation.
const startParam = "dm"

// Messenger is the outbound side of the chat platform. *bot.Bot satisfies it.
type Messenger interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	EditMessageReplyMarkup(ctx context.Context, params *bot.EditMessageReplyMarkupParams) (*models.Message, error)
}

// Workflow reacts to chat events. It keeps no state of its own: group
// binding, membership and DM readiness all live in the store.
type Workflow struct {
	store       store.Store
	messenger   Messenger
	botUsername string
	texts       config.MessagesConfig
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// New creates a Workflow. botUsername is resolved once at startup and used
// for private chat deep links.
func New(
	st store.Store,
	messenger Messenger,
	botUsername string,
	texts config.MessagesConfig,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Workflow {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Workflow{
		store:       st,
		messenger:   messenger,
		botUsername: botUsername,
		texts:       texts,
		metrics:     m,
		logger:      logger.With("component", "registration"),
	}
}

// RegisterPayload returns the callback payload of the invitation button for userID.
func RegisterPayload(userID int64) string {
	return PayloadPrefix + strconv.FormatInt(userID, 10)
}

// DeepLink returns the t.me link that opens a private chat with the bot.
func (w *Workflow) DeepLink() string {
	return fmt.Sprintf("https://t.me/%s?start=%s", w.botUsername, startParam)
}

// Handle processes one event. The first failing store or chat call aborts
// the remaining steps and its error is returned.
func (w *Workflow) Handle(ctx context.Context, ev Event) error {
	switch e := ev.(type) {
	case GroupMessage:
		w.metrics.Event("group_message")
		return w.handleGroupMessage(ctx, e)
	case ButtonPress:
		w.metrics.Event("button_press")
		return w.handleButtonPress(ctx, e)
	case StartCommand:
		w.metrics.Event("start_command")
		return w.handleStartCommand(ctx, e)
	default:
		return fmt.Errorf("unsupported event type %T", ev)
	}
}

func (w *Workflow) handleGroupMessage(ctx context.Context, e GroupMessage) error {
	if !IsGroupChat(e.ChatType) {
		return nil
	}
	log := w.logger.With("chat_id", e.ChatID)

	groupID, bound, err := w.store.GetGroupID(ctx)
	if err != nil {
		return err
	}
	if !bound {
		created, err := w.store.BindGroup(ctx, e.ChatID)
		if err != nil {
			return err
		}
		if created {
			w.metrics.GroupBound()
			log.InfoContext(ctx, "Bound bot to group")
			groupID = e.ChatID
		} else if groupID, _, err = w.store.GetGroupID(ctx); err != nil {
			return err
		}
	}

	if len(e.NewMembers) == 0 {
		return nil
	}
	if groupID != e.ChatID {
		log.DebugContext(ctx, "Ignoring new members outside the bound group", "group_id", groupID)
		return nil
	}

	for _, member := range e.NewMembers {
		if member.IsBot {
			continue
		}
		if err := w.sendInvitation(ctx, e.ChatID, member); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workflow) sendInvitation(ctx context.Context, chatID int64, member Identity) error {
	_, err := w.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   strings.ReplaceAll(w.texts.Welcome, "{name}", member.Display()),
		ReplyMarkup: singleButton(models.InlineKeyboardButton{
			Text:         w.texts.RegisterButton,
			CallbackData: RegisterPayload(member.ID),
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to send invitation to %d: %w", member.ID, err)
	}

	w.metrics.InvitationSent()
	w.logger.InfoContext(ctx, "Invitation sent", "chat_id", chatID, "user_id", member.ID)
	return nil
}

func (w *Workflow) handleButtonPress(ctx context.Context, e ButtonPress) error {
	log := w.logger.With("user_id", e.From.ID, "payload", e.Payload)

	if e.Payload == PayloadDone {
		w.metrics.Callback(metrics.OutcomeDone)
		return w.answer(ctx, e.CallbackID, w.texts.AlreadyRegistered, false)
	}
	if !strings.HasPrefix(e.Payload, PayloadPrefix) {
		w.metrics.Callback(metrics.OutcomeIgnored)
		log.DebugContext(ctx, "Ignoring unknown callback payload")
		return nil
	}

	if strings.TrimPrefix(e.Payload, PayloadPrefix) != strconv.FormatInt(e.From.ID, 10) {
		w.metrics.Callback(metrics.OutcomeDenied)
		log.InfoContext(ctx, "Rejected press on another user's button")
		return w.answer(ctx, e.CallbackID, w.texts.AccessDenied, true)
	}

	status, err := w.store.MemberStatus(ctx, e.From.ID)
	if err != nil {
		return err
	}
	if status.Registered() {
		w.metrics.Callback(metrics.OutcomeAlreadyRegistered)
		return w.answer(ctx, e.CallbackID, w.texts.AlreadyRegistered, true)
	}

	name, username := e.From.Profile()
	added, err := w.store.SaveMember(ctx, store.Member{ID: e.From.ID, Name: name, Username: username})
	if err != nil {
		return err
	}
	if !added {
		// A concurrent press registered the user first.
		w.metrics.Callback(metrics.OutcomeAlreadyRegistered)
		return w.answer(ctx, e.CallbackID, w.texts.AlreadyRegistered, true)
	}
	w.metrics.Callback(metrics.OutcomeRegistered)
	log.InfoContext(ctx, "User registered", "contactable", e.From.Contactable())

	if e.From.Contactable() {
		text := strings.ReplaceAll(w.texts.Registered, "{name}", e.From.Display())
		if err := w.answer(ctx, e.CallbackID, text, true); err != nil {
			return err
		}
	} else {
		if err := w.answer(ctx, e.CallbackID, w.texts.EnableDMAlert, true); err != nil {
			return err
		}
		if err := w.sendDMPrompt(ctx, e); err != nil {
			return err
		}
	}

	return w.markInvitationDone(ctx, e)
}

func (w *Workflow) sendDMPrompt(ctx context.Context, e ButtonPress) error {
	if e.ChatID == 0 {
		w.logger.WarnContext(ctx, "Cannot send DM prompt, button message is inaccessible", "user_id", e.From.ID)
		return nil
	}

	_, err := w.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: e.ChatID,
		Text:   w.texts.EnableDMPrompt,
		ReplyMarkup: singleButton(models.InlineKeyboardButton{
			Text: w.texts.OpenChatButton,
			URL:  w.DeepLink(),
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to send dm prompt for %d: %w", e.From.ID, err)
	}
	return nil
}

// markInvitationDone replaces the invitation keyboard so later presses hit
// the "done" payload.
func (w *Workflow) markInvitationDone(ctx context.Context, e ButtonPress) error {
	if !e.HasMessage() {
		return nil
	}

	_, err := w.messenger.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:    e.ChatID,
		MessageID: e.MessageID,
		ReplyMarkup: singleButton(models.InlineKeyboardButton{
			Text:         w.texts.RegisteredButton,
			CallbackData: PayloadDone,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to update invitation message %d: %w", e.MessageID, err)
	}
	return nil
}

func (w *Workflow) handleStartCommand(ctx context.Context, e StartCommand) error {
	if e.ChatType != models.ChatTypePrivate {
		return nil
	}

	// No member record check: a user may open the private chat before
	// registering, which leaves a record holding only dm_ready.
	if err := w.store.MarkDMReady(ctx, e.From.ID); err != nil {
		return err
	}
	w.metrics.DMEnabled()

	_, err := w.messenger.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: e.ChatID,
		Text:   w.texts.DMReady,
	})
	if err != nil {
		return fmt.Errorf("failed to send dm confirmation to %d: %w", e.From.ID, err)
	}
	return nil
}

func (w *Workflow) answer(ctx context.Context, callbackID, text string, alert bool) error {
	_, err := w.messenger.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       alert,
	})
	if err != nil {
		return fmt.Errorf("failed to answer callback %s: %w", callbackID, err)
	}
	return nil
}

func singleButton(b models.InlineKeyboardButton) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{b}},
	}
}
