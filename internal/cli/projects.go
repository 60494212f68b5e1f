package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) projectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "List and manage projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List projects, newest first",
		Args:  cobra.NoArgs,
		RunE:  a.protected(a.listProjects),
	}
	list.Flags().Int("page", 1, "Page number")
	list.Flags().Int("size", 10, "Page size")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a project and its todos",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, todos, err := a.store.LoadProject(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(a.out(), renderProject(p, todos))
			return nil
		}),
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: a.protected(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			p, err := a.store.CreateProject(ctx, name, optional(cmd, "description"))
			if err != nil {
				return err
			}
			printSuccess(a.out(), "created project #%d %s", p.ID, p.Name)
			return nil
		}),
	}
	create.Flags().StringP("name", "n", "", "Project name")
	create.Flags().StringP("description", "d", "", "Project description")
	_ = create.MarkFlagRequired("name")

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rename a project or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			cur, _, err := a.store.LoadProject(ctx, id)
			if err != nil {
				return err
			}

			name := cur.Name
			if cmd.Flags().Changed("name") {
				name, _ = cmd.Flags().GetString("name")
			}
			desc := cur.Description
			if cmd.Flags().Changed("description") {
				desc = optional(cmd, "description")
			}

			p, err := a.store.UpdateProject(ctx, id, name, desc)
			if err != nil {
				return err
			}
			printSuccess(a.out(), "updated project #%d %s", p.ID, p.Name)
			return nil
		}),
	}
	update.Flags().StringP("name", "n", "", "New name")
	update.Flags().StringP("description", "d", "", "New description")

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a project and all of its todos",
		Args:    cobra.ExactArgs(1),
		RunE: a.protected(func(ctx context.Context, _ *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.store.DeleteProject(ctx, id); err != nil {
				return err
			}
			printSuccess(a.out(), "deleted project #%d", id)
			return nil
		}),
	}

	cmd.AddCommand(list, show, create, update, del)
	return cmd
}

func (a *app) listProjects(ctx context.Context, cmd *cobra.Command, _ []string) error {
	page, _ := cmd.Flags().GetInt("page")
	size, _ := cmd.Flags().GetInt("size")
	return a.showProjects(ctx, page, size)
}

func (a *app) showProjects(ctx context.Context, page, size int) error {
	res, err := a.store.LoadProjects(ctx, page, size)
	if err != nil {
		return err
	}
	fmt.Fprint(a.out(), renderProjects(res))
	return nil
}
