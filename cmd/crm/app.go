package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spachava753/crm/config"
	"github.com/spachava753/crm/contacts"
	"github.com/spachava753/crm/logger"
	"github.com/spachava753/crm/mail"
	"github.com/spachava753/crm/storage/redis"
	"github.com/spachava753/crm/storage/sqlite"
)

type closableStore interface {
	contacts.Store
	Close() error
}

type app struct {
	configPath string
	dbPath     string

	cfg    config.Config
	log    *zap.Logger
	store  closableStore
	repo   *contacts.Repository
	mailer *mail.Simulator
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if strings.TrimSpace(a.dbPath) != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.SQLite.Path = a.dbPath
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.log = log

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	a.store = store

	stderr := cmd.ErrOrStderr()
	a.repo = contacts.New(store,
		contacts.WithNamespace(cfg.Storage.Namespace),
		contacts.WithLogger(log.Named("contacts")),
		contacts.WithPersistErrorHandler(func(err error) {
			fmt.Fprintf(stderr, "warning: change kept for this session but not saved: %v\n", err)
		}),
	)
	if err := a.repo.Load(ctx); err != nil {
		return err
	}
	a.mailer = mail.NewSimulator(log.Named("mail"), cfg.Mail.From)
	return nil
}

// close releases the store and flushes the logger. It is safe to call more
// than once and after a partial open.
func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
		a.log = nil
	}
	return err
}

func openStore(ctx context.Context, cfg config.Config) (closableStore, error) {
	if strings.ToLower(cfg.Storage.Driver) == config.DriverRedis {
		store, err := redis.Open(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := sqlite.Open(ctx, cfg.SQLite.Path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

func printContact(w io.Writer, c contacts.Contact) {
	fmt.Fprintf(w, "ID:         %s\n", c.ID)
	fmt.Fprintf(w, "First name: %s\n", c.FirstName)
	fmt.Fprintf(w, "Last name:  %s\n", c.LastName)
	fmt.Fprintf(w, "Email:      %s\n", c.Email)
	fmt.Fprintf(w, "Tags:       %s\n", contacts.FormatTags(c.Tags))
	fmt.Fprintf(w, "Created:    %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"))
}
