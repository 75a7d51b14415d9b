package todos

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/arise/internal/cli/clitest"
	"github.com/julianstephens/arise/internal/engine"
)

func TestTodoLifecycle(t *testing.T) {
	env := clitest.New(t)

	if err := (&TodoListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, "No todos yet.") {
		t.Errorf("output = %q", out)
	}

	for _, text := range [][]string{{"read", "chapter", "3"}, {"flashcards"}} {
		if err := (&TodoAddCmd{Text: text}).Run(env.Ctx); err != nil {
			t.Fatal(err)
		}
	}
	if out := env.Output(); !strings.Contains(out, `Added todo "read chapter 3"`) {
		t.Errorf("output = %q", out)
	}

	if err := (&TodoToggleCmd{Ref: "1"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, `Completed "read chapter 3"`) {
		t.Errorf("output = %q", out)
	}

	if err := (&TodoEditCmd{Ref: "id-2", Text: []string{"50", "flashcards"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&TodoListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Output()
	for _, want := range []string{"[x]", "read chapter 3", "[ ]", "50 flashcards", "1 of 2 done"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := (&TodoToggleCmd{Ref: "1"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if out := env.Output(); !strings.Contains(out, `Reopened "read chapter 3"`) {
		t.Errorf("output = %q", out)
	}

	if err := (&TodoDeleteCmd{Ref: "1"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	todos := env.Engine(t).Todos()
	if len(todos) != 1 || todos[0].Text != "50 flashcards" {
		t.Errorf("todos = %+v, want only the edited one", todos)
	}
}

func TestTodoErrors(t *testing.T) {
	tests := []struct {
		name    string
		run     func(env *clitest.Env) error
		wantErr error
	}{
		{
			name:    "blank add",
			run:     func(env *clitest.Env) error { return (&TodoAddCmd{Text: []string{"  "}}).Run(env.Ctx) },
			wantErr: engine.ErrEmptyText,
		},
		{
			name:    "toggle out of range",
			run:     func(env *clitest.Env) error { return (&TodoToggleCmd{Ref: "5"}).Run(env.Ctx) },
			wantErr: engine.ErrTodoNotFound,
		},
		{
			name:    "edit unknown id",
			run:     func(env *clitest.Env) error { return (&TodoEditCmd{Ref: "nope", Text: []string{"x"}}).Run(env.Ctx) },
			wantErr: engine.ErrTodoNotFound,
		},
		{
			name:    "edit to blank",
			run:     func(env *clitest.Env) error { return (&TodoEditCmd{Ref: "1", Text: []string{""}}).Run(env.Ctx) },
			wantErr: engine.ErrEmptyText,
		},
		{
			name:    "delete position zero",
			run:     func(env *clitest.Env) error { return (&TodoDeleteCmd{Ref: "0"}).Run(env.Ctx) },
			wantErr: engine.ErrTodoNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := clitest.New(t)
			if _, err := env.Engine(t).AddTodo("existing"); err != nil {
				t.Fatal(err)
			}
			if err := tt.run(env); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if todos := env.Engine(t).Todos(); len(todos) != 1 || todos[0].Text != "existing" {
				t.Errorf("todos changed: %+v", todos)
			}
		})
	}
}
