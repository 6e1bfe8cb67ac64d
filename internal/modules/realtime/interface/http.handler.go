package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"mesaYaCore/internal/modules/realtime/domain"
	"mesaYaCore/internal/modules/realtime/infrastructure"
	sessions "mesaYaCore/internal/modules/users/application/usecase"
	"mesaYaCore/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// NewNotificationsHandler exposes /ws/notifications/:token. The token resolves
// the acting user; clients then receive their own reservation and review events,
// or, as managers, the full stream. Optional ?topics=a,b narrows subscriptions.
func NewNotificationsHandler(hub *infrastructure.Hub, sessions *sessions.SessionUseCase, sendBuffer int) func(echo.Context) error {
	return func(c echo.Context) error {
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			token = strings.TrimSpace(c.QueryParam("token"))
		}
		user, err := sessions.Resolve(token)
		if err != nil {
			slog.Warn("ws notifications rejected", slog.Any("error", err))
			return httputil.Fail(c, err)
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Warn("ws upgrade failed", slog.Int("userId", user.ID), slog.Any("error", err))
			return err
		}

		sessionID := strconv.FormatInt(time.Now().UnixNano(), 10)
		client := infrastructure.NewClient(hub, conn, strconv.Itoa(user.ID), sessionID, sendBuffer)

		topics := make([]string, 0)
		if raw := strings.TrimSpace(c.QueryParam("topics")); raw != "" {
			topics = strings.Split(raw, ",")
		}
		// Clients default to the lifecycle topics; managers stay global so the
		// receive-all exemption sees every event.
		if len(topics) == 0 && !user.IsManager() {
			topics = []string{
				domain.CreatedTopic(domain.EntityReservations),
				domain.CancelledTopic(domain.EntityReservations),
				domain.CreatedTopic(domain.EntityReviews),
			}
		}
		hub.AttachClient(client, topics)
		if user.IsManager() {
			hub.EnableReceiveAll(client)
		}

		client.SendDomainMessage(&domain.Message{
			Topic:     domain.TopicSystemConnected,
			Entity:    domain.SystemEntity,
			Action:    domain.ActionConnected,
			Metadata:  map[string]string{"userId": strconv.Itoa(user.ID)},
			Timestamp: time.Now().UTC(),
		})

		go client.WritePump()
		go client.ReadPump()
		return nil
	}
}
