package models

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	StatusPending   = "pending"
	StatusCompleted = "completed"

	RoleAdmin = "admin"
	RoleUser  = "user"

	HistoryLogin  = "LOGIN"
	HistoryCreate = "CREATE"
	HistoryUpdate = "UPDATE"
	HistoryDelete = "DELETE"
)

type Person struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Transaction.Date is a plain calendar day ("YYYY-MM-DD"), not a timestamp.
// DayOfWeek is derived from Date on every write and stored redundantly.
type Transaction struct {
	ID          string    `db:"id" json:"id"`
	Date        string    `db:"date" json:"date"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	Amount      int64     `db:"amount" json:"amount"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	PersonID    string    `db:"person_id" json:"person_id"`
	PersonName  string    `db:"person_name" json:"person_name"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Account struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CodePerson   string    `db:"code_person" json:"code_person"`
	PersonName   string    `db:"person_name" json:"person_name"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Action struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Session is a half-day slot linked to an Action category. Unrelated to the
// authentication session.
type Session struct {
	ID       string `db:"id" json:"id"`
	Number   int    `db:"number" json:"number"`
	ActionID string `db:"action_id" json:"action_id"`
}

type Diary struct {
	ID                 string    `db:"id" json:"id"`
	Date               time.Time `db:"date" json:"date"`
	MorningSessionID   string    `db:"morning_session_id" json:"morning_session_id"`
	AfternoonSessionID string    `db:"afternoon_session_id" json:"afternoon_session_id"`
	Username           string    `db:"username" json:"username"`
}

type History struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Type      string    `db:"type" json:"type"`
	Content   string    `db:"content" json:"content"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
