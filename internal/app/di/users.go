package di

import (
	"context"
	"errors"

	authdomain "devconnector/internal/feature/auth/domain"
	authentity "devconnector/internal/feature/auth/domain/entity"
	postdomain "devconnector/internal/feature/post/domain"
	postentity "devconnector/internal/feature/post/domain/entity"
	postusecase "devconnector/internal/feature/post/usecase"
	profileentity "devconnector/internal/feature/profile/domain/entity"
	profileusecase "devconnector/internal/feature/profile/usecase"
)

// userStore is the part of the credential store the other features reach.
type userStore interface {
	FindByID(ctx context.Context, id string) (*authentity.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*authentity.User, error)
	Delete(ctx context.Context, id string) error
}

// profileUsers exposes accounts to the profile feature.
type profileUsers struct {
	users userStore
}

var _ profileusecase.UserDirectory = profileUsers{}

func (p profileUsers) Owners(ctx context.Context, ids []string) (map[string]profileentity.Owner, error) {
	found, err := p.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]profileentity.Owner, len(found))
	for id, u := range found {
		out[id] = profileentity.Owner{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
	return out, nil
}

func (p profileUsers) Delete(ctx context.Context, userID string) error {
	return p.users.Delete(ctx, userID)
}

// postAuthors exposes accounts to the post feature as author snapshots.
type postAuthors struct {
	users userStore
}

var _ postusecase.AuthorLookup = postAuthors{}

func (p postAuthors) Author(ctx context.Context, userID string) (postentity.Author, error) {
	u, err := p.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, authdomain.ErrUserNotFound) {
			return postentity.Author{}, postdomain.ErrAuthorNotFound
		}
		return postentity.Author{}, err
	}
	return postentity.Author{ID: u.ID, Name: u.Name, Avatar: u.Avatar}, nil
}
