package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/darkkaiser/push-probe/internal/service/probe"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runSender 큐의 메시지를 순서대로 전송합니다. 종료 신호를 받으면 남은 메시지를 shutdownTimeout 안에서 최대한 전송합니다.
func (n *Notifier) runSender(serviceStopCtx context.Context) {
	for {
		select {
		case message := <-n.messageC:
			n.sendSafely(serviceStopCtx, message)

		case <-serviceStopCtx.Done():
			n.mu.Lock()
			n.closed = true
			n.mu.Unlock()

			n.drain()
			return
		}
	}
}

func (n *Notifier) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sent := 0
	for {
		select {
		case message := <-n.messageC:
			n.sendSafely(ctx, message)
			sent++

		default:
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id":       n.chatID,
				"drained_count": sent,
			}).Info("텔레그램 Notifier 종료 완료")
			return
		}
	}
}

// sendSafely 메시지 하나를 전송합니다. 전송 중 발생한 panic은 해당 메시지만 버립니다.
func (n *Notifier) sendSafely(ctx context.Context, message string) {
	defer func() {
		if r := recover(); r != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": n.chatID,
				"panic":   r,
			}).Error("메시지 처리 실패: 발송 중 panic 발생 (해당 건 스킵)")
		}
	}()

	for _, chunk := range splitMessage(message, messageMaxLength) {
		if err := n.sendChunk(ctx, chunk); err != nil {
			return
		}
	}
}

// sendChunk 속도 제한을 지키며 전송하고, 실패하면 retryDelay 후 한 번 더 시도합니다.
func (n *Notifier) sendChunk(ctx context.Context, chunk string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	var lastErr error
	for attempt := 1; attempt <= 2; attempt++ {
		if n.limiter != nil {
			if err := n.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		msg := tgbotapi.NewMessage(n.chatID, chunk)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true

		if _, err := n.client.Send(msg); err != nil {
			lastErr = err

			applog.WithComponentAndFields(component, applog.Fields{
				"chat_id": n.chatID,
				"attempt": attempt,
				"error":   err,
			}).Warn("텔레그램 메시지 전송 실패")

			if attempt < 2 {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(n.retryDelay):
				}
			}
			continue
		}

		return nil
	}

	return lastErr
}

// buildMessage 상태 줄과 로그 줄을 HTML 메시지로 만듭니다.
func buildMessage(status *probe.StatusView, lines []string) string {
	var sb strings.Builder

	sb.WriteString("<b>[push-probe]</b>")
	if status != nil {
		fmt.Fprintf(&sb, " %s <code>%s</code>", html.EscapeString(status.Text), status.Status.Key())
	}

	if len(lines) > 0 {
		sb.WriteString("\n<pre>")
		for i, line := range lines {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(html.EscapeString(line))
		}
		sb.WriteString("</pre>")
	}

	return sb.String()
}

// splitMessage 줄 단위로 max 이하의 조각으로 나눕니다. 한 줄이 max보다 길면 rune 경계에서 자릅니다.
// 조각마다 열린 <pre> 태그가 닫히도록 보정합니다.
func splitMessage(message string, max int) []string {
	if len(message) <= max {
		return []string{message}
	}

	var chunks []string
	var sb strings.Builder

	flush := func() {
		if sb.Len() == 0 {
			return
		}
		chunks = append(chunks, sb.String())
		sb.Reset()
	}

	for _, line := range strings.Split(message, "\n") {
		for len(line) > max {
			flush()
			cut := runeBoundary(line, max)
			chunks = append(chunks, line[:cut])
			line = line[cut:]
		}

		if sb.Len() > 0 && sb.Len()+1+len(line) > max {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)
	}
	flush()

	return balancePre(chunks)
}

func runeBoundary(s string, max int) int {
	cut := max
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return max
	}
	return cut
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// balancePre 조각 경계에서 잘린 <pre> 블록을 각 조각 안에서 열고 닫습니다.
func balancePre(chunks []string) []string {
	open := false
	for i, c := range chunks {
		prefix := ""
		if open {
			prefix = "<pre>"
		}

		opens := strings.Count(c, "<pre>")
		closes := strings.Count(c, "</pre>")
		if open {
			opens++
		}
		open = opens > closes

		suffix := ""
		if open {
			suffix = "</pre>"
		}
		chunks[i] = prefix + c + suffix
	}
	return chunks
}
