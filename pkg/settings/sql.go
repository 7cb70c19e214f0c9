package settings

import (
	"database/sql"
	"fmt"
)

func buildCreateNotificationsTable() string {
	return `CREATE TABLE IF NOT EXISTS notifications (
		userid TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		chatid TEXT NOT NULL,
		finish INTEGER,
		fastestlap INTEGER);`
}

func alertColumn(alertType string) string {
	if alertType == FastestLap {
		return "fastestlap"
	}
	return "finish"
}

func buildSelectUserCommand() (string, func(*sql.Rows) (Notifications, error)) {
	fields := "finish, fastestlap"
	return fmt.Sprintf(`SELECT %s FROM notifications WHERE userid = ?`, fields), processSelectUserRows
}

func processSelectUserRows(rows *sql.Rows) (Notifications, error) {
	defer rows.Close()

	n := AllDisabled()
	// only can be one row
	if rows.Next() {
		var finish int
		var fastestlap int
		err := rows.Scan(&finish, &fastestlap)
		if err != nil {
			return n, err
		}
		n.setAlertEnabledFlag(Finish, finish == 1)
		n.setAlertEnabledFlag(FastestLap, fastestlap == 1)
		return n, nil
	}
	err := rows.Err()
	if err != nil {
		return n, err
	}
	return n, err
}

func buildSelectAlertCommand(alertType string) (string, func(rows *sql.Rows) ([]TelegramUser, error)) {
	fields := "userid, name, chatid"
	return fmt.Sprintf(`SELECT %s FROM notifications WHERE %s = 1`, fields, alertColumn(alertType)), processSelectAlertRows
}

func processSelectAlertRows(rows *sql.Rows) ([]TelegramUser, error) {
	defer rows.Close()

	users := make([]TelegramUser, 0)
	for rows.Next() {
		var id string
		var name string
		var chatid string
		err := rows.Scan(&id, &name, &chatid)
		if err != nil {
			return users, err
		}
		users = append(users, TelegramUser{
			ID:     id,
			Name:   name,
			ChatID: chatid,
		})
	}
	err := rows.Err()
	if err != nil {
		return users, err
	}
	return users, err
}

// buildUpdateUserCommand returns the upsert statement with placeholders and
// the arguments to bind. User ids come straight from Telegram callbacks, so
// they are never interpolated into the statement text.
func buildUpdateUserCommand(userID, chatID string, n Notifications) (string, []any) {
	fields := "userid, name, chatid, finish, fastestlap"
	stmt := fmt.Sprintf(`INSERT OR REPLACE INTO notifications (%s) VALUES (?, ?, ?, ?, ?)`, fields)
	return stmt, []any{userID, userID, chatID, n.FinishEnabledInt(), n.FastestLapEnabledInt()}
}
