package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"studyquest/internal/bootstrap"
	entitlementdomain "studyquest/internal/modules/entitlement/domain"
	entitlementdto "studyquest/internal/modules/entitlement/dto"
	progressdto "studyquest/internal/modules/progress/dto"
	"studyquest/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir    string
	configPath string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "studyquest",
		Short:         "Gamified reading and study tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", defaultDataDir(), "directory for the database, logs and identity")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (defaults to <data-dir>/config.yaml)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newBookCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newNoteCmd(flags))
	root.AddCommand(newGoalsCmd(flags))
	root.AddCommand(newAchievementsCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newHeatmapCmd(flags))
	root.AddCommand(newSettingsCmd(flags))
	root.AddCommand(newAccountCmd(flags))
	root.AddCommand(newEntitlementCmd(flags))
	return root
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".studyquest"
	}
	return filepath.Join(dir, "studyquest")
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataDir, flags.configPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

// withApp builds the app, runs fn and flushes pending progress afterwards.
func withApp(flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	ctx := context.Background()
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	runErr := fn(ctx, app)
	if err := app.Close(ctx); err != nil && runErr == nil {
		return err
	}
	return runErr
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newBookCmd(flags *rootFlags) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Book library commands"}

	book.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List books with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				books, err := app.ProgressCLI.ListBooks(ctx)
				if err != nil {
					return err
				}
				if len(books) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no books")
					return nil
				}
				for _, b := range books {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s %s\t%s\t%d%%\tsessions=%d\n", b.ID, b.Icon, b.Title, b.Subject, b.Progress, b.SessionsCompleted)
				}
				return nil
			})
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom book",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.ProgressCLI.AddBook(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", b.Title, b.ID)
				return nil
			})
		},
	})

	book.AddCommand(&cobra.Command{
		Use:   "import <path>",
		Short: "Add a book from a PDF or markdown file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				b, err := app.ProgressCLI.ImportBook(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s)\n", b.Title, b.ID)
				return nil
			})
		},
	})
	return book
}

var errSessionLimit = errors.New("session limit reached: sign in or upgrade to start another session")

type sessionGate interface {
	Check(ctx context.Context) (entitlementdto.StartOutput, error)
	EndSession(ctx context.Context) (entitlementdto.EndOutput, error)
}

type sessionRecorder interface {
	CompleteSession(ctx context.Context, bookID string, rating int) (progressdto.CompleteSessionOutput, error)
}

// recordGatedSession records a session only when the entitlement gate lets it
// start, then charges it against the quota.
func recordGatedSession(ctx context.Context, gate sessionGate, rec sessionRecorder, bookID string, rating int) (progressdto.CompleteSessionOutput, entitlementdto.EndOutput, error) {
	start, err := gate.Check(ctx)
	if err != nil {
		return progressdto.CompleteSessionOutput{}, entitlementdto.EndOutput{}, err
	}
	if start.Decision != string(entitlementdomain.DecisionAllow) {
		return progressdto.CompleteSessionOutput{}, entitlementdto.EndOutput{}, fmt.Errorf("%w (tier=%s)", errSessionLimit, start.Status.Tier)
	}
	out, err := rec.CompleteSession(ctx, bookID, rating)
	if err != nil {
		return progressdto.CompleteSessionOutput{}, entitlementdto.EndOutput{}, err
	}
	end, err := gate.EndSession(ctx)
	if err != nil {
		return out, entitlementdto.EndOutput{}, fmt.Errorf("charge session: %w", err)
	}
	return out, end, nil
}

func newSessionCmd(flags *rootFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Study session commands"}

	var bookID string
	var rating int
	complete := &cobra.Command{
		Use:   "complete --book <id>",
		Short: "Record a finished focus session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(bookID) == "" {
				return fmt.Errorf("--book is required")
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, end, err := recordGatedSession(ctx, app.EntitlementCLI, app.ProgressCLI, bookID, rating)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "session %s book=%s +%d XP progress=%d%% streak=%d\n", out.Session.ID, out.Book.Title, out.XPGained, out.Book.Progress, out.Stats.Streak)
				if out.LevelUp != nil {
					_, _ = fmt.Fprintf(w, "level up: %s %s -> %s %s\n", out.LevelUp.From.Emoji, out.LevelUp.From.Name, out.LevelUp.To.Emoji, out.LevelUp.To.Name)
				}
				for _, g := range out.ReadyGoals {
					_, _ = fmt.Fprintf(w, "goal ready to claim: %s (%s)\n", g.Title, g.ID)
				}
				if end.CreditUsed {
					_, _ = fmt.Fprintln(w, "used 1 session credit")
				}
				if end.GuestQuotaExhausted {
					_, _ = fmt.Fprintln(w, "guest sessions used up: sign in to keep going")
				}
				return nil
			})
		},
	}
	complete.Flags().StringVar(&bookID, "book", "", "book id")
	complete.Flags().IntVar(&rating, "rating", 0, "focus rating 1..5 (0 leaves it unrated)")

	var sessionID string
	rate := &cobra.Command{
		Use:   "rate --id <session-id> --rating <1..5>",
		Short: "Attach a focus rating to a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(sessionID) == "" {
				return fmt.Errorf("--id is required")
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ProgressCLI.RateSession(ctx, sessionID, rating); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "rated %s: %d\n", sessionID, rating)
				return nil
			})
		},
	}
	rate.Flags().StringVar(&sessionID, "id", "", "session id")
	rate.Flags().IntVar(&rating, "rating", 0, "focus rating 1..5")

	session.AddCommand(complete, rate)
	return session
}

func newNoteCmd(flags *rootFlags) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Book note commands"}

	note.AddCommand(&cobra.Command{
		Use:   "list <book-id>",
		Short: "List notes for a book, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.BookNotes(ctx, args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "%s: %d/%d notes\n", out.Book.Title, len(out.Notes), out.Limit)
				for _, n := range out.Notes {
					_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", n.ID, n.Date, firstNonEmpty(n.Reflection.Understood, n.Reflection.Important, n.Reflection.Remember))
					if n.Synthesis != nil {
						_, _ = fmt.Fprintf(w, "\t%s\n", n.Synthesis.KeyTakeaway)
					}
				}
				return nil
			})
		},
	})

	note.AddCommand(&cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.ProgressCLI.DeleteNote(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})

	note.AddCommand(&cobra.Command{
		Use:   "export <dir>",
		Short: "Write every book's notes as markdown files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.ExportNotes(ctx, args[0])
				if err != nil {
					return err
				}
				for _, p := range out.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			})
		},
	})
	return note
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func newGoalsCmd(flags *rootFlags) *cobra.Command {
	goals := &cobra.Command{Use: "goals", Short: "Weekly goal commands"}

	goals.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List this week's goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				list, err := app.ProgressCLI.ListGoals(ctx)
				if err != nil {
					return err
				}
				for _, g := range list {
					state := "open"
					switch {
					case g.Completed:
						state = "claimed"
					case g.Ready:
						state = "ready"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d/%d\t%s\n", g.ID, g.Title, g.Current, g.Target, state)
				}
				return nil
			})
		},
	})

	goals.AddCommand(&cobra.Command{
		Use:   "claim <goal-id>",
		Short: "Claim the reward for a finished goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ProgressCLI.ClaimGoal(ctx, args[0])
				if err != nil {
					return err
				}
				if !out.Granted {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to claim")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "+%d XP (total %d)\n", out.XP.XPGained, out.XP.Stats.TotalXP)
				return nil
			})
		},
	})
	return goals
}

func newAchievementsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				list, err := app.ProgressCLI.Achievements(ctx)
				if err != nil {
					return err
				}
				for _, a := range list {
					mark := " "
					if a.Unlocked {
						mark = "x"
					}
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\t%s\n", mark, a.Icon, a.Title, a.Description)
				}
				return nil
			})
		},
	}
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show level, XP and streak",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.ProgressCLI.Stats(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "level: %d %s %s\nxp: %d (%d to next)\nsessions: %d\nminutes: %d\nstreak: %d\nlast session: %s\n",
					s.Level, s.Avatar.Emoji, s.Avatar.Name, s.TotalXP, s.XPToNextLevel, s.TotalSessions, s.TotalMinutes, s.Streak, s.LastSessionDate)
				return nil
			})
		},
	}
}

func newHeatmapCmd(flags *rootFlags) *cobra.Command {
	var rangeName string
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Print session counts per day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				cells, err := app.ProgressCLI.Heatmap(ctx, rangeName)
				if err != nil {
					return err
				}
				for _, c := range cells {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d\n", c.Date, c.Weekday, c.Count)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeName, "range", "month", "month|year")
	return cmd
}

func newSettingsCmd(flags *rootFlags) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "App settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.ProgressCLI.Settings(ctx)
				if err != nil {
					return err
				}
				printSettings(cmd, s)
				return nil
			})
		},
	})

	var notes, rating, reduce bool
	var theme string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change settings; only given flags are applied",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch progressdto.SettingsPatchInput
			f := cmd.Flags()
			if f.Changed("notes") {
				patch.NotesEnabled = &notes
			}
			if f.Changed("rating") {
				patch.FocusRatingEnabled = &rating
			}
			if f.Changed("reduce-animations") {
				patch.ReduceAnimations = &reduce
			}
			if f.Changed("theme") {
				patch.Theme = &theme
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.ProgressCLI.UpdateSettings(ctx, patch)
				if err != nil {
					return err
				}
				printSettings(cmd, s)
				return nil
			})
		},
	}
	set.Flags().BoolVar(&notes, "notes", true, "enable reflection notes")
	set.Flags().BoolVar(&rating, "rating", true, "ask for a focus rating after each session")
	set.Flags().BoolVar(&reduce, "reduce-animations", false, "suppress level-up celebrations")
	set.Flags().StringVar(&theme, "theme", "", "dark|ocean|forest|sunset")

	settings.AddCommand(set)
	return settings
}

func printSettings(cmd *cobra.Command, s progressdto.SettingsOutput) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notes: %t\nfocus rating: %t\nreduce animations: %t\ntheme: %s\n",
		s.NotesEnabled, s.FocusRatingEnabled, s.ReduceAnimations, s.Theme)
}

func newAccountCmd(flags *rootFlags) *cobra.Command {
	account := &cobra.Command{Use: "account", Short: "Sign in to keep progress across devices"}

	var email, password string
	credentials := func(c *cobra.Command) {
		c.Flags().StringVar(&email, "email", "", "account email")
		c.Flags().StringVar(&password, "password", "", "account password (or STUDYQUEST_PASSWORD)")
	}
	resolvePassword := func() string {
		if password != "" {
			return password
		}
		return os.Getenv("STUDYQUEST_PASSWORD")
	}

	signup := &cobra.Command{
		Use:   "signup --email <email>",
		Short: "Create an account and upload current progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.IdentityCLI.SignUp(ctx, email, resolvePassword())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed up as %s (%s)\n", out.Email, out.UserID)
				return nil
			})
		},
	}
	credentials(signup)

	signin := &cobra.Command{
		Use:   "signin --email <email>",
		Short: "Sign in and load stored progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.IdentityCLI.SignIn(ctx, email, resolvePassword())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s progress_loaded=%t\n", out.Email, out.ProgressLoaded)
				return nil
			})
		},
	}
	credentials(signin)

	signout := &cobra.Command{
		Use:   "signout",
		Short: "Sign out and return to guest progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.IdentityCLI.SignOut(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.IdentityCLI.Status(ctx)
				if err != nil {
					return err
				}
				if !out.SignedIn {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "guest")
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", out.Email, out.UserID)
				return nil
			})
		},
	}

	account.AddCommand(signup, signin, signout, status)
	return account
}

func newEntitlementCmd(flags *rootFlags) *cobra.Command {
	ent := &cobra.Command{Use: "entitlement", Short: "Premium access and session quota"}

	ent.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show tier, credits and remaining guest sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.EntitlementCLI.Status(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tier: %s\ncredits: %d\nremaining: %d/%d\npurchased: %s\n", s.Tier, s.Credits, s.Remaining, s.GuestQuota, s.PurchaseDate)
				return nil
			})
		},
	})

	ent.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report whether a session may start now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.EntitlementCLI.Check(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (tier=%s remaining=%d)\n", out.Decision, out.Status.Tier, out.Status.Remaining)
				return nil
			})
		},
	})

	ent.AddCommand(&cobra.Command{
		Use:   "grant",
		Short: "Record a premium purchase for the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.EntitlementCLI.Grant(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "tier: %s purchased: %s\n", s.Tier, s.PurchaseDate)
				return nil
			})
		},
	})
	return ent
}
