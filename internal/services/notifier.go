package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"construtora/internal/logging"
	"construtora/internal/metrics"
	"construtora/internal/models"
)

// Notifier tells a user that a task was handed to them.
type Notifier interface {
	TaskAssigned(ctx context.Context, assignee *models.User, task *models.Task) error
}

// Notice is the channel-neutral content of a message. Values are plain
// text; each channel renders and escapes them for its own markup.
type Notice struct {
	Subject string
	Heading string
	Title   string
	Fields  []NoticeField
}

type NoticeField struct {
	Label string
	Value string
}

// Channel delivers a Notice over one transport. Channels return nil when
// the recipient has no address for them.
type Channel interface {
	Name() string
	Send(ctx context.Context, to *models.User, n Notice) error
}

type breakerChannel struct {
	Channel
	cb *gobreaker.CircuitBreaker
}

// AssignmentNotifier fans a notice out to every configured channel. Each
// channel sits behind its own circuit breaker.
type AssignmentNotifier struct {
	channels []breakerChannel
	metrics  *metrics.Metrics
}

func NewAssignmentNotifier(m *metrics.Metrics, channels ...Channel) *AssignmentNotifier {
	n := &AssignmentNotifier{metrics: m}
	for _, ch := range channels {
		if ch == nil {
			continue
		}
		n.channels = append(n.channels, breakerChannel{
			Channel: ch,
			cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
				Name:        ch.Name() + "-notifications-cb",
				MaxRequests: 1,
				Timeout:     30 * time.Second,
				ReadyToTrip: func(counts gobreaker.Counts) bool {
					return counts.ConsecutiveFailures > 3
				},
				OnStateChange: func(name string, from, to gobreaker.State) {
					logging.Logger.Warnf("[notify][breaker] %s changed from %s to %s", name, from.String(), to.String())
				},
			}),
		})
	}
	return n
}

func (n *AssignmentNotifier) TaskAssigned(ctx context.Context, assignee *models.User, task *models.Task) error {
	if n == nil || assignee == nil || task == nil {
		return nil
	}
	notice := taskNotice("Nova tarefa atribuída", task)
	var errs []error
	for _, ch := range n.channels {
		_, err := ch.cb.Execute(func() (interface{}, error) {
			return nil, ch.Send(ctx, assignee, notice)
		})
		n.metrics.NotificationSent(ch.Name(), err)
		if err != nil {
			logging.Logger.Warnf("[notify][%s][err] task=%d user=%d: %v", ch.Name(), task.ID, assignee.ID, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func taskNotice(heading string, t *models.Task) Notice {
	due := "—"
	if t.DueDate != nil {
		due = t.DueDate.Format("02/01/2006")
	}
	projeto := "—"
	if t.Projeto != nil {
		projeto = t.Projeto.Title
	}
	return Notice{
		Subject: heading + ": " + t.Title,
		Heading: heading,
		Title:   t.Title,
		Fields: []NoticeField{
			{Label: "Status", Value: string(t.Status)},
			{Label: "Prioridade", Value: strconv.Itoa(t.Priority)},
			{Label: "Prazo", Value: due},
			{Label: "Projeto", Value: projeto},
		},
	}
}
