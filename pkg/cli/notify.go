package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
	"github.com/m-mizutani/herald/pkg/domain/model"
	"github.com/m-mizutani/herald/pkg/infra/webhook"
	"github.com/urfave/cli/v3"
)

func cmdNotify() *cli.Command {
	var (
		pipelineCfg pipelineConfig
		input       string
		dryRun      bool
	)

	flags := append([]cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Issue update JSON file, '-' for stdin",
			Value:       "-",
			Destination: &input,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the payload instead of posting it",
			Destination: &dryRun,
		},
	}, pipelineCfg.Flags()...)

	return &cli.Command{
		Name:    "notify",
		Aliases: []string{"n"},
		Usage:   "Process a single issue update and report its changes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := pipelineCfg.load(c, nil); err != nil {
				return err
			}

			update, err := readUpdate(input, os.Stdin)
			if err != nil {
				return err
			}

			var dispatcher interfaces.Dispatcher
			if dryRun {
				dispatcher = webhook.NewWriter(os.Stdout)
			} else {
				dispatcher, err = pipelineCfg.webhook.NewDispatcher()
				if err != nil {
					return goerr.Wrap(err, "failed to create webhook dispatcher")
				}
			}

			notifyUC, err := pipelineCfg.newNotify(dispatcher)
			if err != nil {
				return err
			}

			payload, delivery, err := notifyUC.ProcessUpdate(ctx, update)
			if err != nil {
				return err
			}

			printSummary(os.Stderr, payload, delivery)
			return nil
		},
	}
}

func readUpdate(path string, stdin io.Reader) (*model.IssueUpdate, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input", goerr.V("path", path))
		}
		defer f.Close()
		r = f
	}

	var update model.IssueUpdate
	if err := json.NewDecoder(r).Decode(&update); err != nil {
		return nil, goerr.Wrap(err, "failed to parse issue update", goerr.V("path", path))
	}
	return &update, nil
}

var (
	fieldColor = color.New(color.FgCyan, color.Bold)
	oldColor   = color.New(color.FgRed)
	newColor   = color.New(color.FgGreen)
	noteColor  = color.New(color.FgYellow)
)

func printSummary(w io.Writer, payload *model.EventPayload, delivery *model.Delivery) {
	if payload == nil || !payload.HasChanges() {
		noteColor.Fprintln(w, "no changes")
		return
	}

	for _, change := range payload.Changes {
		fieldColor.Fprintf(w, "%-9s ", change.Field)
		if change.Field == model.FieldComment {
			newColor.Fprintln(w, describe(change.NewValue))
			continue
		}
		oldColor.Fprint(w, describe(change.OldValue))
		fmt.Fprint(w, " -> ")
		newColor.Fprintln(w, describe(change.NewValue))
	}

	if delivery != nil {
		fmt.Fprintf(w, "delivery: %s", delivery.Outcome)
		if delivery.StatusCode != 0 {
			fmt.Fprintf(w, " (%d)", delivery.StatusCode)
		}
		fmt.Fprintln(w)
	}
}

func describe(v any) string {
	switch v := v.(type) {
	case *model.FieldSnapshot:
		if v != nil && v.Presentation != nil {
			return *v.Presentation
		}
		if name := v.NameOrEmpty(); name != "" {
			return name
		}
	case *model.UserRef:
		if v != nil && v.FullName != nil {
			return *v.FullName
		}
		if login := v.LoginOrEmpty(); login != "" {
			return login
		}
	case *model.CommentValue:
		if v != nil {
			return fmt.Sprintf("%q (%d mentioned)", v.Text, len(v.MentionedUsers))
		}
	}
	return "(none)"
}

