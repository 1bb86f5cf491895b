package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

// DefaultDuration — время жизни уведомления по умолчанию, мс
const DefaultDuration = 3000

// Notification — эфемерное пользовательское уведомление.
// Duration в миллисекундах; 0 означает «не скрывать автоматически».
type Notification struct {
	ID       string `json:"id"`
	Message  string `json:"message"`
	Type     Type   `json:"type"`
	Duration int    `json:"duration"`
}

// EventKind описывает изменение очереди для подписчика
type EventKind string

const (
	EventAdded   EventKind = "notification"
	EventRemoved EventKind = "notification_removed"
	EventCleared EventKind = "notifications_cleared"
)

// Event передаётся слушателю очереди при каждом изменении
type Event struct {
	Kind         EventKind
	Notification *Notification // nil для EventCleared
}

// Queue хранит уведомления в порядке добавления. Каждое уведомление с
// ненулевой длительностью получает собственный одноразовый таймер,
// который удаляет ровно это уведомление по id. Таймер, сработавший после
// явного удаления, ничего не делает.
type Queue struct {
	mu       sync.Mutex
	items    []*Notification
	timers   map[string]*time.Timer
	listener func(Event)
}

func NewQueue() *Queue {
	return &Queue{
		timers: make(map[string]*time.Timer),
	}
}

// SetListener регистрирует слушателя изменений (например, realtime hub).
// Слушатель вызывается вне блокировки очереди.
func (q *Queue) SetListener(fn func(Event)) {
	q.mu.Lock()
	q.listener = fn
	q.mu.Unlock()
}

// Add добавляет уведомление в конец очереди и возвращает его id.
// При duration > 0 планируется автоудаление через duration миллисекунд.
func (q *Queue) Add(message string, typ Type, duration int) string {
	n := &Notification{
		ID:       uuid.NewString(),
		Message:  message,
		Type:     typ,
		Duration: duration,
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	if duration > 0 {
		id := n.ID
		q.timers[id] = time.AfterFunc(time.Duration(duration)*time.Millisecond, func() {
			q.Remove(id)
		})
	}
	listener := q.listener
	q.mu.Unlock()

	if listener != nil {
		listener(Event{Kind: EventAdded, Notification: n})
	}
	return n.ID
}

// Remove удаляет уведомление по id; отсутствующий id — не ошибка.
// Ожидающий таймер отменяется, чтобы не держать лишние таймеры.
func (q *Queue) Remove(id string) {
	q.mu.Lock()
	var removed *Notification
	for i, n := range q.items {
		if n.ID == id {
			removed = n
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}
	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}
	listener := q.listener
	q.mu.Unlock()

	if removed != nil && listener != nil {
		listener(Event{Kind: EventRemoved, Notification: removed})
	}
}

// Clear опустошает очередь и отменяет все ожидающие таймеры.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.items = nil
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	listener := q.listener
	q.mu.Unlock()

	if listener != nil {
		listener(Event{Kind: EventCleared})
	}
}

// List возвращает копию очереди в порядке добавления.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, 0, len(q.items))
	for _, n := range q.items {
		out = append(out, *n)
	}
	return out
}
