package settings

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

const (
	DbName = "./raceboard-bot.db"

	Finish     = "Finish"
	FastestLap = "FastestLap"
)

type TelegramUser struct {
	ID     string
	Name   string
	ChatID string
}

// Notifications holds which race alerts a user wants pushed.
type Notifications map[string]bool

func AllEnabled() Notifications {
	return Notifications{
		Finish:     true,
		FastestLap: true,
	}
}

func AllDisabled() Notifications {
	return Notifications{
		Finish:     false,
		FastestLap: false,
	}
}

func (n Notifications) FinishSymbol() string {
	return symbolStatus(n[Finish])
}

func (n Notifications) FastestLapSymbol() string {
	return symbolStatus(n[FastestLap])
}

func (n Notifications) FinishEnabledInt() int {
	if n[Finish] {
		return 1
	}
	return 0
}

func (n Notifications) FastestLapEnabledInt() int {
	if n[FastestLap] {
		return 1
	}
	return 0
}

func (n Notifications) String() string {
	status := []string{}
	status = append(status, fmt.Sprintf("%s Notificación de final de carrera", symbolStatus(n[Finish])))
	status = append(status, fmt.Sprintf("%s Notificación de vuelta rápida", symbolStatus(n[FastestLap])))
	return strings.Join(status, "\n")
}

func symbolStatus(enabled bool) string {
	if enabled {
		return "🔔"
	}
	return "🔕"
}

func (n *Notifications) setAlertEnabledFlag(alertType string, enabled bool) {
	(*n)[alertType] = enabled
}

type Manager struct {
	db *sql.DB
	mu sync.Mutex
}

func NewManager() (*Manager, error) {
	db, err := sql.Open("sqlite3", DbName)
	if err != nil {
		log.Printf("error opening database: %s\n", err)
		return nil, err
	}

	initTableStmt := buildCreateNotificationsTable()

	_, err = db.Exec(initTableStmt)
	if err != nil {
		log.Printf("error init database: %s\n", err)
		return nil, err
	}

	return &Manager{
		db: db,
		mu: sync.Mutex{},
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

func (m *Manager) ToggleNotificationForAlert(userID, chatID, alertType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	n, err := m.listNotificationsForUser(userID)
	if err != nil {
		return err
	}

	n.setAlertEnabledFlag(alertType, !n[alertType])
	stmt, args := buildUpdateUserCommand(userID, chatID, n)
	_, err = m.db.Exec(stmt, args...)
	if err != nil {
		log.Printf("error updating database: %s\n", err)
		return err
	}
	return nil
}

func (m *Manager) ListNotifications(userID string) (Notifications, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.listNotificationsForUser(userID)
}

func (m *Manager) ListUsersForAlert(alertType string) ([]TelegramUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []TelegramUser{}
	sql, read := buildSelectAlertCommand(alertType)
	rows, err := m.db.Query(sql)
	if err != nil {
		return users, err
	}
	return read(rows)
}

func (m *Manager) listNotificationsForUser(userID string) (Notifications, error) {
	n := AllDisabled()

	sql, read := buildSelectUserCommand()
	rows, err := m.db.Query(sql, userID)
	if err != nil {
		return n, err
	}
	return read(rows)
}
