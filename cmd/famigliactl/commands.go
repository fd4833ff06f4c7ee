package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"famigliapp/internal/service/reminder"
	"famigliapp/internal/storage"
	"famigliapp/internal/validate"
)

var readPasswordFunc = term.ReadPassword // mockable

var errEmptyPassword = errors.New("empty password")

type UserCreator interface {
	CreateUser(ctx context.Context, nu storage.NewUser) (storage.User, error)
}

type Reminder interface {
	Run(ctx context.Context, now time.Time) (reminder.Summary, error)
}

type ShiftValidator interface {
	Validate(ctx context.Context, from, to storage.Date) ([]storage.Violation, error)
}

type services struct {
	Users    UserCreator
	Reminder Reminder
	Shifts   ShiftValidator
	Close    func() error
}

type opener func(ctx context.Context, configPath string) (*services, error)

func newRootCmd(open opener) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "famigliactl",
		Short:         "Famigliapp admin tool",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default $CONFIG_PATH or ./config/local.yaml)")

	// withServices открывает хранилище на время одной команды.
	withServices := func(cmd *cobra.Command, fn func(ctx context.Context, svc *services) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		svc, err := open(ctx, configPath)
		if err != nil {
			return err
		}
		defer func() {
			if svc.Close != nil {
				_ = svc.Close()
			}
		}()
		return fn(ctx, svc)
	}

	root.AddCommand(
		newUseraddCmd(withServices),
		newRemindCmd(withServices),
		newValidateShiftsCmd(withServices),
		newVersionCmd(),
	)

	return root
}

type runner func(cmd *cobra.Command, fn func(ctx context.Context, svc *services) error) error

func newUseraddCmd(run runner) *cobra.Command {
	var (
		nu    storage.NewUser
		attrs []string
	)

	cmd := &cobra.Command{
		Use:   "useradd <username>",
		Short: "Create a user (password is prompted unless --password is set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nu.Username = strings.TrimSpace(args[0])
			if nu.Name == "" {
				nu.Name = nu.Username
			}
			for _, a := range attrs {
				if a = strings.TrimSpace(a); a != "" && !slices.Contains(nu.Attributes, a) {
					nu.Attributes = append(nu.Attributes, a)
				}
			}

			if nu.Password == "" {
				pwd, err := promptPassword(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				nu.Password = pwd
			}

			if err := validate.Struct(nu); err != nil {
				return fmt.Errorf("invalid user: %w", err)
			}

			return run(cmd, func(ctx context.Context, svc *services) error {
				usr, err := svc.Users.CreateUser(ctx, nu)
				if err != nil {
					return err
				}
				role := "member"
				if usr.Admin {
					role = "admin"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", usr.Username, role)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&nu.Name, "name", "", "display name (defaults to username)")
	cmd.Flags().StringVar(&nu.Email, "email", "", "email address for reminders")
	cmd.Flags().BoolVar(&nu.Admin, "admin", false, "grant admin role")
	cmd.Flags().StringSliceVar(&attrs, "attr", nil, "user attribute, repeatable")
	cmd.Flags().StringVar(&nu.Password, "password", "", "password (prompted when empty)")

	return cmd
}

func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	if len(pwd) == 0 {
		return "", errEmptyPassword
	}
	return string(pwd), nil
}

func newRemindCmd(run runner) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Send today's reminders once and close expired polls",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if date != "" {
				d, err := storage.ParseDate(date)
				if err != nil {
					return fmt.Errorf("--date: %w", err)
				}
				now = d.Time()
			}

			return run(cmd, func(ctx context.Context, svc *services) error {
				summary, err := svc.Reminder.Run(ctx, now)
				printSummary(cmd.OutOrStdout(), summary)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "run as if today were YYYY-MM-DD")

	return cmd
}

func printSummary(w io.Writer, summary reminder.Summary) {
	jobs := make([]string, 0, len(summary))
	for job := range summary {
		jobs = append(jobs, job)
	}
	slices.Sort(jobs)
	for _, job := range jobs {
		fmt.Fprintf(w, "%-8s %d\n", job, summary[job])
	}
}

func newValidateShiftsCmd(run runner) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "validate-shifts",
		Short: "Check saved shifts against the rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := storage.ParseDate(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			t, err := storage.ParseDate(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			return run(cmd, func(ctx context.Context, svc *services) error {
				violations, err := svc.Shifts.Validate(ctx, f, t)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(violations) == 0 {
					fmt.Fprintln(out, "no violations")
					return nil
				}
				for _, v := range violations {
					fmt.Fprintf(out, "%s  %-16s %s\n", v.Date, v.Rule, v.Message)
				}
				return fmt.Errorf("%d violations", len(violations))
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
