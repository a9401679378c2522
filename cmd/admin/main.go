// Package main provides content management commands for yatube.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"yatube/cmd/app"
	"yatube/internal/config"
	"yatube/internal/logging"
	"yatube/internal/models"
)

const usage = `Usage:
  go run ./cmd/admin create-group <title> <slug> [description]  - Create a group
  go run ./cmd/admin list-groups                                - List all groups
  go run ./cmd/admin delete-group <slug>                        - Delete a group, its posts stay ungrouped
  go run ./cmd/admin delete-post <post_id>                      - Delete a post with its comments
  go run ./cmd/admin delete-user <username>                     - Delete a user with everything they wrote`

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code. Connections
// are closed before it returns.
func run(args []string) int {
	if len(args) < 1 {
		fmt.Println(usage)
		return 1
	}

	command, args := args[0], args[1:]
	if !known(command) {
		fmt.Printf("Unknown command: %s\n\n%s\n", command, usage)
		return 1
	}
	if len(args) < minArgs[command] {
		fmt.Printf("Usage: go run ./cmd/admin %s\n", commandUsage[command])
		return 1
	}

	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	ctx := context.Background()

	application, err := app.App(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to start")
		return 1
	}
	defer application.Close()

	switch command {
	case "create-group":
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		var group *models.Group
		group, err = application.Services.Group.Create(ctx, args[0], args[1], description)
		if err == nil {
			fmt.Printf("Group %q created at /group/%s/\n", group.Title, group.Slug)
		}

	case "list-groups":
		err = listGroups(ctx, application)

	case "delete-group":
		err = application.Services.Group.Delete(ctx, args[0])
		if err == nil {
			fmt.Printf("Group %s deleted\n", args[0])
		}

	case "delete-post":
		err = application.Services.Post.DeletePost(ctx, args[0])
		if err == nil {
			fmt.Printf("Post %s deleted\n", args[0])
		}

	case "delete-user":
		err = application.Services.User.DeleteUser(ctx, args[0])
		if err == nil {
			fmt.Printf("User %s deleted\n", args[0])
		}
	}

	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			fmt.Printf("Not found: %v\n", err)
			return 1
		}
		log.WithError(err).Errorf("%s failed", command)
		return 1
	}

	// listings change after every write
	if command != "list-groups" {
		if err := application.Cache.Clear(ctx); err != nil {
			log.WithError(err).Warn("failed to clear page cache")
		}
	}
	return 0
}

var commandUsage = map[string]string{
	"create-group": "create-group <title> <slug> [description]",
	"list-groups":  "list-groups",
	"delete-group": "delete-group <slug>",
	"delete-post":  "delete-post <post_id>",
	"delete-user":  "delete-user <username>",
}

var minArgs = map[string]int{
	"create-group": 2,
	"delete-group": 1,
	"delete-post":  1,
	"delete-user":  1,
}

func known(command string) bool {
	_, ok := commandUsage[command]
	return ok
}

func listGroups(ctx context.Context, application *app.Application) error {
	groups, err := application.Services.Group.List(ctx)
	if err != nil {
		return err
	}

	if len(groups) == 0 {
		fmt.Println("No groups")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tTITLE\tDESCRIPTION")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", g.Slug, g.Title, g.Description)
	}
	return w.Flush()
}
