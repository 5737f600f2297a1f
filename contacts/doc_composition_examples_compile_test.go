package contacts_test

import (
	"context"
	"fmt"

	"github.com/spachava753/crm/contacts"
)

func composeCreateAndQueryByTag(ctx context.Context, store contacts.Store) ([]contacts.Contact, error) {
	repo := contacts.New(store)
	if err := repo.Load(ctx); err != nil {
		return nil, err
	}

	_, err := repo.Create(ctx, contacts.Draft{
		FirstName: "Max",
		Email:     "max@x.com",
		Tags:      contacts.ParseTags("vip, lead"),
	})
	if err != nil {
		return nil, err
	}
	return repo.ContactsByTag("vip")
}

func composeRetagOrReport(ctx context.Context, repo *contacts.Repository, id string) error {
	tags := []string{"customer"}
	_, err := repo.Update(ctx, id, contacts.Changes{Tags: &tags})
	if contacts.IsNotFound(err) {
		return fmt.Errorf("contact %s was deleted meanwhile", id)
	}
	if err != nil {
		return err
	}
	if perr := repo.PersistErr(); perr != nil {
		return fmt.Errorf("saved for this session only: %w", perr)
	}
	return nil
}

var (
	_ = composeCreateAndQueryByTag
	_ = composeRetagOrReport
)
