package commands

import (
	"context"
	"fmt"
	"html"
	"strings"

	"VaultKeeper/internal/cli/api"
	"VaultKeeper/internal/config"
)

func printItems(items []api.Item) {
	if len(items) == 0 {
		fmt.Fprintln(Out, "Нет записей")
		return
	}
	for _, it := range items {
		owner := ""
		if it.OwnerEmail != "" {
			owner = "  owner=" + it.OwnerEmail
		}
		fmt.Fprintf(Out, "- %d  name=%s%s\n", it.ID, it.Name, owner)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(items))
}

func printItem(it *api.Item) {
	fmt.Fprintf(Out, "id:      %d\n", it.ID)
	fmt.Fprintf(Out, "owner:   %d\n", it.OwnerID)
	fmt.Fprintf(Out, "name:    %s\n", it.Name)
	// сервер хранит заметку в HTML-экранированном виде
	fmt.Fprintf(Out, "note:    %s\n", html.UnescapeString(it.Note))
	fmt.Fprintf(Out, "created: %s\n", it.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(Out, "updated: %s\n", it.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать свои записи (--all: все, только admin)" }
func (itemsCmd) Usage() string       { return "items [--all]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	all := false
	switch {
	case len(args) == 1 && args[0] == "--all":
		all = true
	case len(args) != 0:
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	items, err := c.ListItems(ctx, all)
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Показать запись по id" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.GetItem(ctx, id)
	if err != nil {
		return err
	}
	printItem(it)
	return nil
}

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Добавить запись" }
func (itemAddCmd) Usage() string       { return "item-add <name> [note...]" }

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.CreateItem(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	printItem(it)
	return nil
}

type itemEditCmd struct{}

func (itemEditCmd) Name() string        { return "item-edit" }
func (itemEditCmd) Description() string { return "Изменить имя и заметку записи" }
func (itemEditCmd) Usage() string       { return "item-edit <id> <name> [note...]" }

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	it, err := c.UpdateItem(ctx, id, args[1], strings.Join(args[2:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Updated:")
	printItem(it)
	return nil
}

type itemDeleteCmd struct{}

func (itemDeleteCmd) Name() string        { return "item-delete" }
func (itemDeleteCmd) Description() string { return "Удалить запись по id" }
func (itemDeleteCmd) Usage() string       { return "item-delete <id>" }

func (itemDeleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	if err := c.DeleteItem(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %d\n", id)
	return nil
}

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Искать по имени и заметке своих записей" }
func (searchCmd) Usage() string       { return "search <query...>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	items, err := c.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

func init() {
	RegisterCmd(itemsCmd{})
	RegisterCmd(itemGetCmd{})
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemDeleteCmd{})
	RegisterCmd(searchCmd{})
}
