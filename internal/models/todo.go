// Package modelsはTodoとUserを定義します。
package models

import "time"

// Todoのstatusの値。DB上はTINYINT(0/1)で保存されます。
const (
	StatusIncomplete = 0 // 未完了
	StatusComplete   = 1 // 完了
)

// DueDateLayout はdue_dateの標準フォーマットです。
// 入力はこの形式でなくても受け付けて、そのまま保存します。
const DueDateLayout = "2006-01-02"

// Todo はユーザーが所有するタスクのデータベース構造体を表します。
type Todo struct {
	ID      int    `json:"id,omitempty"`
	UserID  int    `json:"user_id"`                    // 所有者のユーザーID（必須）
	Content string `json:"content" binding:"required"` // タスクの内容（必須）
	// DueDate は入力された文字列をそのまま保持します。
	// バリデーションはせず、不正な日付もそのまま保存・表示します。
	DueDate   string    `json:"due_date"`
	Status    int       `json:"status"` // 0: 未完了, 1: 完了
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// DeadlineState はdue_dateと今日の日付から導出される期限の状態です。
// DBには保存されません。
type DeadlineState int

const (
	// DeadlineWithin は期限内（due_dateが今日以降）を表します。
	DeadlineWithin DeadlineState = iota
	// DeadlineOverdue は期限切れ（due_dateが昨日以前）を表します。
	DeadlineOverdue
)

// EvaluateDeadline はdue_dateと評価日から期限の状態を判定する純粋関数です。
// due_date == today は期限内です。パースできないdue_dateは期限内として扱います
// （不正な入力を理由にシェアを促さない）。
func EvaluateDeadline(dueDate string, today time.Time) DeadlineState {
	d, err := time.Parse(DueDateLayout, dueDate)
	if err != nil {
		return DeadlineWithin
	}
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(t) {
		return DeadlineOverdue
	}
	return DeadlineWithin
}

// Deadline はこのTodoの期限の状態を返します。
func (t *Todo) Deadline(today time.Time) DeadlineState {
	return EvaluateDeadline(t.DueDate, today)
}

// Overdue は期限切れかどうかを返します。statusとは独立です。
// 完了済みかつ期限切れのTodoも存在しえます。
func (t *Todo) Overdue(today time.Time) bool {
	return t.Deadline(today) == DeadlineOverdue
}

// Completed は完了済みかどうかを返します。
func (t *Todo) Completed() bool {
	return t.Status == StatusComplete
}

// NearDue は「期日が明日まで」かどうかを返します。
// due_dateが評価日の翌日と一致し、かつ未完了の場合のみtrueです。
func (t *Todo) NearDue(today time.Time) bool {
	if t.Status != StatusIncomplete {
		return false
	}
	return t.DueDate == today.AddDate(0, 0, 1).Format(DueDateLayout)
}
