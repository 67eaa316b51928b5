// Package services はビジネスロジックを扱います。
package services

import (
	"errors"
	"time"

	"go-todo-share/server/internal/models"
	"go-todo-share/server/internal/repositories"
)

var (
	// ErrTodoForbidden は所有者以外がTodoを変更しようとした場合のエラーです。
	ErrTodoForbidden = errors.New("todo forbidden")
	// ErrContentRequired はcontentが空の場合のエラーです。
	ErrContentRequired = errors.New("content is required")
	// ErrInvalidStatus はstatusが0/1以外の場合のエラーです。
	ErrInvalidStatus = errors.New("invalid status")
)

// TodoService はTodo関連のビジネスロジックを扱います。
// nowは期限判定に使う現在時刻で、テストから差し替えられます。
type TodoService struct {
	todoRepo *repositories.TodoRepository
	now      func() time.Time
}

// NewTodoService は新しいTodoServiceを作成します。nowがnilの場合はtime.Nowを使います。
func NewTodoService(todoRepo *repositories.TodoRepository, now func() time.Time) *TodoService {
	if now == nil {
		now = time.Now
	}
	return &TodoService{todoRepo: todoRepo, now: now}
}

// Today は期限判定の基準日を返します。
func (s *TodoService) Today() time.Time {
	return s.now()
}

// Create は新しいTodoを未完了の状態で作成します。
// contentは必須です。due_dateはバリデーションせずそのまま保存します。
func (s *TodoService) Create(userID int, content, dueDate string) (*models.Todo, error) {
	if content == "" {
		return nil, ErrContentRequired
	}
	todo := &models.Todo{
		UserID:  userID,
		Content: content,
		DueDate: dueDate,
		Status:  models.StatusIncomplete,
	}
	return s.todoRepo.Create(todo)
}

// Get は指定IDのTodoを取得します。個別ページとOGP画像は公開なので認可チェックはありません。
func (s *TodoService) Get(id int) (*models.Todo, error) {
	return s.todoRepo.FindByID(id)
}

// List はユーザーが所有するTodoを取得します。onlyIncompleteで未完了のみに絞り込めます。
func (s *TodoService) List(userID int, onlyIncomplete bool) ([]*models.Todo, error) {
	return s.todoRepo.FindByUser(userID, onlyIncomplete)
}

// UpdateStatus はTodoのstatusを更新します。変更できるのは所有者のみです。
// 0→1と1→0の両方向の遷移を許可します。
func (s *TodoService) UpdateStatus(id, callerID, status int) (*models.Todo, error) {
	if status != models.StatusIncomplete && status != models.StatusComplete {
		return nil, ErrInvalidStatus
	}
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != callerID {
		return nil, ErrTodoForbidden
	}
	if err := s.todoRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	todo.Status = status
	return todo, nil
}

// Delete はTodoを削除します。削除できるのは所有者のみです。
func (s *TodoService) Delete(id, callerID int) error {
	todo, err := s.todoRepo.FindByID(id)
	if err != nil {
		return err
	}
	if todo.UserID != callerID {
		return ErrTodoForbidden
	}
	return s.todoRepo.Delete(id)
}

// DeleteCompleted は呼び出したユーザーの完了済みTodoを一括削除します。
func (s *TodoService) DeleteCompleted(callerID int) (int, error) {
	return s.todoRepo.DeleteCompleted(callerID)
}

// CountNearDue は期日が明日までの未完了Todoの件数を返します。
// ホーム画面の「期日が明日までのTodoがN件あります」に使います。
func (s *TodoService) CountNearDue(userID int) (int, error) {
	tomorrow := s.now().AddDate(0, 0, 1).Format(models.DueDateLayout)
	return s.todoRepo.CountNearDue(userID, tomorrow)
}
