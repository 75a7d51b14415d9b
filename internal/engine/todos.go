package engine

import (
	"strings"

	"github.com/julianstephens/arise/internal/models"
)

func (e *Engine) Todos() []models.Todo {
	out := make([]models.Todo, len(e.todos))
	copy(out, e.todos)
	return out
}

func (e *Engine) AddTodo(text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, ErrEmptyText
	}
	t := models.Todo{ID: e.newID(), Text: text}
	e.todos = append(e.todos, t)
	e.saveTodos()
	return t, nil
}

func (e *Engine) findTodo(id string) int {
	for i, t := range e.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) ToggleTodo(id string) (models.Todo, error) {
	i := e.findTodo(id)
	if i < 0 {
		return models.Todo{}, ErrTodoNotFound
	}
	e.todos[i].Completed = !e.todos[i].Completed
	e.saveTodos()
	return e.todos[i], nil
}

func (e *Engine) EditTodo(id, text string) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, ErrEmptyText
	}
	i := e.findTodo(id)
	if i < 0 {
		return models.Todo{}, ErrTodoNotFound
	}
	e.todos[i].Text = text
	e.saveTodos()
	return e.todos[i], nil
}

func (e *Engine) DeleteTodo(id string) error {
	i := e.findTodo(id)
	if i < 0 {
		return ErrTodoNotFound
	}
	e.todos = append(e.todos[:i:i], e.todos[i+1:]...)
	e.saveTodos()
	return nil
}
