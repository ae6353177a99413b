// Command hippo is the terminal client for Hippo Exchange.
//
// Usage:
//
//	hippo [-config path]          run the TUI
//	hippo [-config path] login    store a session token
//	hippo [-config path] logout   forget the session token
//	hippo [-config path] init     write the effective config to disk
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/joho/godotenv"

	"github.com/GportDev/the-hippo-exchange-sub000/internal/api"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/app"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/cache"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/credential"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/identity"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/logging"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/model"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/prefs"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/service"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/store"
	"github.com/GportDev/the-hippo-exchange-sub000/internal/sync"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "hippo:", err)
		os.Exit(1)
	}
}

// deps is everything the subcommands share.
type deps struct {
	cfg      *model.AppConfig
	logger   *slog.Logger
	store    *store.SQLiteStore
	prefs    *prefs.Preferences
	provider *identity.KeyringProvider
}

func run(args []string) error {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("hippo", flag.ContinueOnError)
	configPath := fs.String("config", model.DefaultConfigPath(), "path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if fs.Arg(0) == "init" {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Println("Wrote", *configPath)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, logFile, err := logging.Open(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening local store: %w", err)
	}
	defer s.Close()

	creds, err := credential.Open(model.ConfigDir())
	if err != nil {
		return fmt.Errorf("opening keyring: %w", err)
	}

	d := deps{
		cfg:      cfg,
		logger:   logger,
		store:    s,
		prefs:    prefs.New(s, logger),
		provider: identity.NewKeyringProvider(creds, time.Now, logger),
	}

	switch sub := fs.Arg(0); sub {
	case "":
		return runTUI(d)
	case "login":
		return login(d)
	case "logout":
		if err := d.provider.SignOut(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	default:
		return fmt.Errorf("unknown command %q (want init, login or logout)", sub)
	}
}

func runTUI(d deps) error {
	opts := api.Options{
		BaseURL:         d.cfg.API.BaseURL,
		Timeout:         time.Duration(d.cfg.API.TimeoutSec) * time.Second,
		RateLimitPerSec: d.cfg.API.RateLimitPerSec,
		RateBurst:       d.cfg.API.RateBurst,
		Logger:          d.logger,
	}
	headerKey := api.NewClient(opts, api.HeaderKeyAuth{APIKey: d.cfg.API.Key, Users: d.provider})
	bearer := headerKey.WithAuth(api.BearerAuth{Tokens: d.provider})

	c := cache.New(time.Duration(d.cfg.API.CacheTTLSec) * time.Second)
	svc := app.Services{
		Assets:      service.NewAssetService(assetClient{Client: headerKey, uploads: bearer}, c, d.logger),
		Maintenance: service.NewMaintenanceService(headerKey, c, time.Now, d.logger, d.prefs),
		Borrow:      service.NewBorrowService(bearer, c, d.logger),
		Session:     d.provider,
		Prefs:       d.prefs,
		Cache:       c,
		Logger:      d.logger,
		Now:         time.Now,
	}
	if d.cfg.API.RefreshSec > 0 {
		svc.Poller = sync.New(time.Duration(d.cfg.API.RefreshSec)*time.Second, time.Now)
		defer svc.Poller.Stop()
	}

	d.logger.Info("starting", slog.String("api", d.cfg.API.BaseURL))
	p := tea.NewProgram(app.New(svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// assetClient sends asset calls with the header key but image uploads
// with the bearer session.
type assetClient struct {
	*api.Client
	uploads *api.Client
}

func (a assetClient) UploadImage(ctx context.Context, filename string, content io.Reader) (string, error) {
	return a.uploads.UploadImage(ctx, filename, content)
}

// login asks for the token issued by the identity provider. The profile
// fields are kept as a draft so an abandoned login resumes where it left
// off.
func login(d deps) error {
	ctx := context.Background()
	draft, _ := d.prefs.SignupDraft(ctx)
	var token string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&draft.Email).
				Validate(func(s string) error {
					if !strings.Contains(s, "@") {
						return errors.New("enter an email address")
					}
					return nil
				}),
			huh.NewInput().Title("First name").Value(&draft.FirstName),
			huh.NewInput().Title("Last name").Value(&draft.LastName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Session token").
				Description("Paste the token from the Hippo Exchange sign-in page.").
				EchoMode(huh.EchoModePassword).
				Value(&token).
				Validate(func(s string) error {
					_, err := identity.Decode(strings.TrimSpace(s))
					return err
				}),
		),
	)

	err := form.Run()
	if saveErr := d.prefs.SetSignupDraft(ctx, draft); saveErr != nil {
		d.logger.Error("saving sign-up draft", slog.Any("error", saveErr))
	}
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	sess, err := d.provider.SignIn(token)
	if err != nil {
		return err
	}
	if err := d.prefs.ClearSignupDraft(ctx); err != nil {
		d.logger.Error("clearing sign-up draft", slog.Any("error", err))
	}
	fmt.Printf("Signed in as %s.\n", sess.UserID)
	return nil
}
