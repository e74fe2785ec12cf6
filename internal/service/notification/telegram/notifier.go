// Package telegram 점검 세션의 로그와 상태 변화를 텔레그램 채팅방으로 전달합니다.
//
// Notifier는 probe.Sink를 구현합니다. 버튼 처리 한 번(Refresh 단위)에 쌓인 로그를 하나의 메시지로
// 묶어 내부 큐에 넣고, 별도의 Sender 고루틴이 속도 제한을 지키며 텔레그램 API로 전송합니다.
package telegram

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/push-probe/internal/config"
	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

const component = "notification.telegram"

const (
	// messageMaxLength 텔레그램 Bot API 제한(4096자)에 HTML 태그 여유분을 둔 값입니다.
	messageMaxLength = 3900

	// bufferSize 전송 대기 메시지 수. 가득 차면 새 메시지는 버려집니다.
	bufferSize = 30

	defaultRateLimit   = 1
	defaultRateBurst   = 5
	defaultRetryDelay  = 1 * time.Second
	httpClientTimeout  = 30 * time.Second
	sendTimeout        = 30 * time.Second
	shutdownTimeout    = 30 * time.Second
	maxLinesPerMessage = 200
)

// client 텔레그램 봇 API 중 이 패키지가 사용하는 부분입니다.
type client interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier 세션 로그를 텔레그램으로 미러링하는 Sink입니다.
type Notifier struct {
	chatID int64
	client client

	limiter    *rate.Limiter
	retryDelay time.Duration

	mu      sync.Mutex
	lines   []string
	status  *probe.StatusView
	closed  bool
	dropped int

	messageC chan string
	done     chan struct{}
}

var _ probe.Sink = (*Notifier)(nil)

// New 봇 토큰으로 텔레그램 API 클라이언트를 초기화합니다. 토큰 확인을 위해 getMe를 호출합니다.
func New(cfg config.TelegramConfig, debug bool) (*Notifier, error) {
	applog.WithComponentAndFields(component, applog.Fields{
		"bot_token": strutil.MaskSensitiveData(cfg.BotToken),
		"chat_id":   cfg.ChatID,
	}).Debug("텔레그램 봇 클라이언트 초기화")

	httpClient := &http.Client{Timeout: httpClientTimeout}

	botAPI, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint, httpClient)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "텔레그램 봇 API 클라이언트 초기화에 실패했습니다. bot_token이 올바른지 확인해주세요")
	}
	botAPI.Debug = debug

	applog.WithComponentAndFields(component, applog.Fields{
		"bot_username": botAPI.Self.UserName,
	}).Info("텔레그램 봇 연결 완료")

	return newNotifier(botAPI, cfg.ChatID), nil
}

func newNotifier(c client, chatID int64) *Notifier {
	return &Notifier{
		chatID: chatID,
		client: c,

		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), defaultRateBurst),
		retryDelay: defaultRetryDelay,

		messageC: make(chan string, bufferSize),
		done:     make(chan struct{}),
	}
}

// AppendLog 로그 한 줄을 현재 메시지 묶음에 추가합니다.
func (n *Notifier) AppendLog(entry probe.LogEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || len(n.lines) >= maxLinesPerMessage {
		return
	}
	n.lines = append(n.lines, entry.String())
}

// SetStatus 묶음의 마지막 상태를 기록합니다. 전송은 Refresh에서 이루어집니다.
func (n *Notifier) SetStatus(view probe.StatusView) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.status = &view
}

// Refresh 지금까지 쌓인 로그와 상태를 한 메시지로 만들어 전송 큐에 넣습니다. 큐가 가득 차 있으면 버립니다.
func (n *Notifier) Refresh() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.closed || (len(n.lines) == 0 && n.status == nil) {
		return
	}

	message := buildMessage(n.status, n.lines)
	n.lines = nil
	n.status = nil

	select {
	case n.messageC <- message:
	default:
		n.dropped++

		applog.WithComponentAndFields(component, applog.Fields{
			"chat_id": n.chatID,
			"dropped": n.dropped,
		}).Warn("텔레그램 전송 큐가 가득 차 메시지를 버렸습니다")
	}
}

// Start Sender 고루틴을 시작합니다. serviceStopCtx가 취소되면 큐에 남은 메시지를 전송한 뒤 종료합니다.
func (n *Notifier) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	go func() {
		defer serviceStopWG.Done()
		defer close(n.done)

		n.runSender(serviceStopCtx)
	}()

	applog.WithComponentAndFields(component, applog.Fields{
		"chat_id": n.chatID,
	}).Info("서비스 시작 완료: 텔레그램 Notifier가 정상적으로 초기화되었습니다")

	return nil
}

// Done Sender 고루틴이 종료되면 닫히는 채널입니다.
func (n *Notifier) Done() <-chan struct{} {
	return n.done
}
