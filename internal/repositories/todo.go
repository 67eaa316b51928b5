package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"go-todo-share/server/internal/models"
)

// ErrTodoNotFound はTodoが見つからない場合のエラーです。
var ErrTodoNotFound = errors.New("todo not found")

// TodoRepository はtodosテーブルの操作を行うための構造体です。
type TodoRepository struct {
	DB *sql.DB
}

// NewTodoRepository は新しいTodoRepositoryインスタンスを作成します。
func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{DB: db}
}

// Create は新しいTodoをデータベースに挿入します。
// due_dateは入力された文字列をそのまま保存します。
func (r *TodoRepository) Create(t *models.Todo) (*models.Todo, error) {
	now := time.Now()
	query := "INSERT INTO todos (user_id, content, due_date, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)"
	result, err := r.DB.Exec(query, t.UserID, t.Content, t.DueDate, t.Status, now, now)
	if err != nil {
		log.Printf("Failed to insert todo: %v", err)
		return nil, fmt.Errorf("could not insert todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("could not get last insert ID: %w", err)
	}
	t.ID = int(id)
	t.CreatedAt = now
	t.UpdatedAt = now

	return t, nil
}

// FindByID は指定されたIDのTodoをデータベースから取得します。
func (r *TodoRepository) FindByID(id int) (*models.Todo, error) {
	query := "SELECT id, user_id, content, due_date, status, created_at, updated_at FROM todos WHERE id = ?"

	var t models.Todo
	err := r.DB.QueryRow(query, id).Scan(&t.ID, &t.UserID, &t.Content, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		log.Printf("Failed to query todo by ID: %v", err)
		return nil, fmt.Errorf("could not query todo: %w", err)
	}

	return &t, nil
}

// FindByUser はユーザーが所有するTodoを取得します。
// onlyIncompleteがtrueの場合は未完了のTodoのみに絞り込みます。
func (r *TodoRepository) FindByUser(userID int, onlyIncomplete bool) ([]*models.Todo, error) {
	query := "SELECT id, user_id, content, due_date, status, created_at, updated_at FROM todos WHERE user_id = ?"
	args := []interface{}{userID}
	if onlyIncomplete {
		query += " AND status = ?"
		args = append(args, models.StatusIncomplete)
	}
	query += " ORDER BY id"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		log.Printf("Failed to query todos: %v", err)
		return nil, fmt.Errorf("could not query todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Content, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			log.Printf("Failed to scan todo: %v", err)
			return nil, fmt.Errorf("could not scan todo: %w", err)
		}
		todos = append(todos, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// UpdateStatus は指定されたIDのTodoのstatusのみを更新します。
// contentとdue_dateは変更しません。
func (r *TodoRepository) UpdateStatus(id, status int) error {
	// 同値更新はMySQLがRowsAffected=0を返すため行数チェックはしない。
	// 存在チェックはサービス層のFindByIDで済んでいる。
	_, err := r.DB.Exec("UPDATE todos SET status = ?, updated_at = ? WHERE id = ?", status, time.Now(), id)
	if err != nil {
		log.Printf("Failed to update todo status: %v", err)
		return fmt.Errorf("could not update todo: %w", err)
	}
	return nil
}

// Delete は指定されたIDのTodoを削除します。物理削除です。
func (r *TodoRepository) Delete(id int) error {
	result, err := r.DB.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		log.Printf("Failed to delete todo: %v", err)
		return fmt.Errorf("could not delete todo: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// DeleteCompleted はユーザーの完了済みTodoを一括削除し、削除件数を返します。
// 未完了のTodoはdue_dateに関係なく残します。
func (r *TodoRepository) DeleteCompleted(userID int) (int, error) {
	result, err := r.DB.Exec("DELETE FROM todos WHERE user_id = ? AND status = ?", userID, models.StatusComplete)
	if err != nil {
		log.Printf("Failed to bulk delete todos: %v", err)
		return 0, fmt.Errorf("could not bulk delete todos: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not get rows affected: %w", err)
	}
	return int(rowsAffected), nil
}

// CountNearDue は指定のdue_dateを持つ未完了Todoの件数を返します。
// due_dateの算出（明日の日付）はサービス層が行います。
func (r *TodoRepository) CountNearDue(userID int, dueDate string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM todos WHERE user_id = ? AND due_date = ? AND status = ?"
	err := r.DB.QueryRow(query, userID, dueDate, models.StatusIncomplete).Scan(&count)
	if err != nil {
		log.Printf("Failed to count near-due todos: %v", err)
		return 0, fmt.Errorf("could not count todos: %w", err)
	}
	return count, nil
}

// CountByUser はユーザーが所有するTodoの総数を返します。
func (r *TodoRepository) CountByUser(userID int) (int, error) {
	var count int
	err := r.DB.QueryRow("SELECT COUNT(*) FROM todos WHERE user_id = ?", userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("could not count todos: %w", err)
	}
	return count, nil
}
