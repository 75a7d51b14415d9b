package engine

import (
	"errors"
	"testing"
)

func TestTodoLifecycle(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.AddTodo("   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("AddTodo(blank) error = %v, want ErrEmptyText", err)
	}

	todo, err := e.AddTodo("  clear the dungeon  ")
	if err != nil {
		t.Fatalf("AddTodo() error = %v", err)
	}
	if todo.Text != "clear the dungeon" || todo.ID == "" || todo.Completed {
		t.Errorf("todo = %+v", todo)
	}

	toggled, err := e.ToggleTodo(todo.ID)
	if err != nil || !toggled.Completed {
		t.Errorf("ToggleTodo() = %+v, %v", toggled, err)
	}
	toggled, _ = e.ToggleTodo(todo.ID)
	if toggled.Completed {
		t.Error("second toggle should clear completion")
	}

	edited, err := e.EditTodo(todo.ID, "clear two dungeons")
	if err != nil || edited.Text != "clear two dungeons" {
		t.Errorf("EditTodo() = %+v, %v", edited, err)
	}
	if _, err := e.EditTodo(todo.ID, ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("EditTodo(empty) error = %v, want ErrEmptyText", err)
	}

	if err := e.DeleteTodo(todo.ID); err != nil {
		t.Fatalf("DeleteTodo() error = %v", err)
	}
	if len(e.Todos()) != 0 {
		t.Errorf("Todos() = %+v, want empty", e.Todos())
	}
}

func TestTodoNotFound(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if _, err := e.ToggleTodo("missing"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("ToggleTodo() error = %v", err)
	}
	if _, err := e.EditTodo("missing", "x"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("EditTodo() error = %v", err)
	}
	if err := e.DeleteTodo("missing"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("DeleteTodo() error = %v", err)
	}
}

func TestProfile(t *testing.T) {
	h := newHarness(t)
	e := h.engine(t)

	if !e.NeedsAcceptance() {
		t.Error("new player should need acceptance")
	}
	e.Accept()
	if e.NeedsAcceptance() {
		t.Error("Accept() did not stick")
	}
	if err := e.SetUsername(" "); !errors.Is(err, ErrEmptyText) {
		t.Errorf("SetUsername(blank) error = %v", err)
	}

	e.SetProfilePicture("/tmp/me.png")
	if e.Profile().ProfilePicture != "/tmp/me.png" {
		t.Errorf("ProfilePicture = %q", e.Profile().ProfilePicture)
	}
	e.SetProfilePicture("")
	if e.Profile().ProfilePicture != "" {
		t.Error("empty ref should clear the picture")
	}
	if _, ok, _ := h.store.Get("productivityProfilePic"); ok {
		t.Error("cleared picture should be deleted from the store")
	}
}
