package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campuscare/PSC-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для отправки событий в NotificationService
//
// Доставка уведомлений не входит в транзакцию бронирования: события
// отправляются fire-and-forget после коммита, ошибки логируются и
// не влияют на ответ пользователю. При disabled=true клиент
// превращается в no-op
type Client struct {
	baseURL    string
	enabled    bool
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotificationService
func NewClient(baseURL string, enabled bool, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// AppointmentCreated отправляет событие о создании записи
func (c *Client) AppointmentCreated(ctx context.Context, appt *domain.Appointment) {
	c.publish(ctx, EventAppointmentCreated, appt)
}

// AppointmentCancelled отправляет событие об отмене записи
func (c *Client) AppointmentCancelled(ctx context.Context, appt *domain.Appointment) {
	c.publish(ctx, EventAppointmentCancelled, appt)
}

// AppointmentCompleted отправляет событие о завершении записи
func (c *Client) AppointmentCompleted(ctx context.Context, appt *domain.Appointment) {
	c.publish(ctx, EventAppointmentCompleted, appt)
}

// AppointmentRescheduled отправляет событие о переносе записи
func (c *Client) AppointmentRescheduled(ctx context.Context, appt *domain.Appointment) {
	c.publish(ctx, EventAppointmentRescheduled, appt)
}

// publish собирает событие и отправляет его, логируя ошибки
func (c *Client) publish(ctx context.Context, eventType string, appt *domain.Appointment) {
	if !c.enabled {
		return
	}

	event := c.buildEvent(eventType, appt)

	if err := c.send(ctx, event); err != nil {
		c.log.Error("notifier: failed to publish %s for appointment_id=%d: %v",
			eventType, appt.ID, err)
		return
	}

	c.log.Info("notifier: published %s for appointment_id=%d, event_id=%s",
		eventType, appt.ID, event.EventID)
}

func (c *Client) buildEvent(eventType string, appt *domain.Appointment) *Event {
	event := &Event{
		EventID:         uuid.NewString(),
		EventType:       eventType,
		OccurredAt:      time.Now().UTC(),
		AppointmentID:   appt.ID,
		StudentID:       appt.StudentID,
		ProviderID:      appt.ProviderID,
		StartAt:         appt.StartAt,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
	}

	if appt.CancelledBy != nil {
		role := string(*appt.CancelledBy)
		event.CancelledBy = &role
	}
	event.CancellationReason = appt.CancellationReason

	return event
}

func (c *Client) send(ctx context.Context, event *Event) error {
	url := fmt.Sprintf("%s/internal/events", c.baseURL)

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal event: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusCreated:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
