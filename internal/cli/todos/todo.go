package todos

import (
	"strconv"
	"strings"

	"github.com/julianstephens/arise/internal/cli"
	"github.com/julianstephens/arise/internal/engine"
	"github.com/julianstephens/arise/internal/models"
)

type TodoCmd struct {
	List   TodoListCmd   `cmd:"" help:"List todos." default:"1"`
	Add    TodoAddCmd    `cmd:"" help:"Add a todo."`
	Toggle TodoToggleCmd `cmd:"" help:"Mark a todo done or not done."`
	Edit   TodoEditCmd   `cmd:"" help:"Change a todo's text."`
	Delete TodoDeleteCmd `cmd:"" help:"Delete a todo."`
}

// resolve accepts a 1-based list position or a todo id.
func resolve(e *engine.Engine, ref string) (models.Todo, error) {
	todos := e.Todos()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(todos) {
			return models.Todo{}, engine.ErrTodoNotFound
		}
		return todos[n-1], nil
	}
	for _, t := range todos {
		if t.ID == ref {
			return t, nil
		}
	}
	return models.Todo{}, engine.ErrTodoNotFound
}

type TodoListCmd struct{}

func (c *TodoListCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	todos := e.Todos()
	if len(todos) == 0 {
		ctx.Println("No todos yet. Add one with 'arise todo add <text>'.")
		return nil
	}

	table := ctx.Table("#", "DONE", "TODO", "ID")
	done := 0
	for i, t := range todos {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
			done++
		}
		table.AddRow(i+1, mark, t.Text, t.ID)
	}
	ctx.PrintTable(table)
	ctx.Printf("\n%d of %d done\n", done, len(todos))
	return nil
}

type TodoAddCmd struct {
	Text []string `arg:"" help:"Todo text."`
}

func (c *TodoAddCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	t, err := e.AddTodo(strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Success("Added todo %q", t.Text)
	return nil
}

type TodoToggleCmd struct {
	Ref string `arg:"" help:"Todo position or ID."`
}

func (c *TodoToggleCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	t, err := resolve(e, c.Ref)
	if err != nil {
		return err
	}
	t, err = e.ToggleTodo(t.ID)
	if err != nil {
		return err
	}
	if t.Completed {
		ctx.Success("Completed %q", t.Text)
	} else {
		ctx.Printf("Reopened %q\n", t.Text)
	}
	return nil
}

type TodoEditCmd struct {
	Ref  string   `arg:"" help:"Todo position or ID."`
	Text []string `arg:"" help:"New text."`
}

func (c *TodoEditCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	t, err := resolve(e, c.Ref)
	if err != nil {
		return err
	}
	t, err = e.EditTodo(t.ID, strings.Join(c.Text, " "))
	if err != nil {
		return err
	}
	ctx.Success("Updated todo to %q", t.Text)
	return nil
}

type TodoDeleteCmd struct {
	Ref string `arg:"" help:"Todo position or ID."`
}

func (c *TodoDeleteCmd) Run(ctx *cli.Context) error {
	e, err := ctx.Engine()
	if err != nil {
		return err
	}
	t, err := resolve(e, c.Ref)
	if err != nil {
		return err
	}
	if err := e.DeleteTodo(t.ID); err != nil {
		return err
	}
	ctx.Success("Deleted %q", t.Text)
	return nil
}
