package application

import (
	"context"
	"errors"
	"time"

	"github.com/storeatlas/api/internal/directory/domain"
)

// storeCommandService implements StoreCommandService.
type storeCommandService struct {
	stores StoreRepository
}

// NewStoreCommandService creates the write-side store service.
func NewStoreCommandService(stores StoreRepository) StoreCommandService {
	return &storeCommandService{stores: stores}
}

func (s *storeCommandService) Create(ctx context.Context, cmd CreateStoreCommand) (*domain.Store, error) {
	now := time.Now().UTC()
	store := &domain.Store{
		Name:        cmd.Name,
		Description: cmd.Description,
		Tags:        append([]string{}, cmd.Tags...),
		Location:    cmd.Location,
		Photo:       cmd.Photo,
		AuthorID:    cmd.AuthorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	store.Normalize()
	if err := store.Validate(); err != nil {
		return nil, err
	}

	if err := s.assignSlug(ctx, store); err != nil {
		return nil, err
	}
	if err := s.insertWithRetry(ctx, store); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeCommandService) Update(ctx context.Context, id, actorID string, patch UpdateStorePatch) (*domain.Store, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if store.AuthorID != actorID {
		return nil, domain.NewAuthorizationError("You must own a store in order to edit it")
	}

	nameChanged := false
	if patch.Name != nil && *patch.Name != store.Name {
		store.Name = *patch.Name
		nameChanged = true
	}
	if patch.Description != nil {
		store.Description = *patch.Description
	}
	if patch.Tags != nil {
		store.Tags = append([]string{}, patch.Tags...)
	}
	if patch.Location != nil {
		store.Location = *patch.Location
	}
	if patch.Photo != nil {
		store.Photo = *patch.Photo
	}

	store.Normalize()
	if err := store.Validate(); err != nil {
		return nil, err
	}
	if nameChanged {
		if err := s.assignSlug(ctx, store); err != nil {
			return nil, err
		}
	}
	store.UpdatedAt = time.Now().UTC()

	if err := s.updateWithRetry(ctx, store, nameChanged); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *storeCommandService) assignSlug(ctx context.Context, store *domain.Store) error {
	slug, err := domain.UniqueSlug(ctx, store.Name, s.stores.CountSlugMatches)
	if err != nil {
		return err
	}
	store.Slug = slug
	return nil
}

// insertWithRetry persists the store, recomputing the slug once if a
// concurrent create took it between the pre-check and the insert. The
// unique index is the source of truth, not the count.
func (s *storeCommandService) insertWithRetry(ctx context.Context, store *domain.Store) error {
	err := s.stores.Insert(ctx, store)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		return err
	}
	if err := s.assignSlug(ctx, store); err != nil {
		return err
	}
	return s.stores.Insert(ctx, store)
}

func (s *storeCommandService) updateWithRetry(ctx context.Context, store *domain.Store, nameChanged bool) error {
	err := s.stores.Update(ctx, store)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) || !nameChanged {
		return err
	}
	if err := s.assignSlug(ctx, store); err != nil {
		return err
	}
	return s.stores.Update(ctx, store)
}
