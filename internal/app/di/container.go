// Package di wires repositories, usecases and handlers together.
package di

import (
	"gorm.io/gorm"

	authadapters "devconnector/internal/feature/auth/adapters"
	authentity "devconnector/internal/feature/auth/domain/entity"
	authhandler "devconnector/internal/feature/auth/transport/handler"
	authusecase "devconnector/internal/feature/auth/usecase"
	postadapters "devconnector/internal/feature/post/adapters"
	postentity "devconnector/internal/feature/post/domain/entity"
	posthandler "devconnector/internal/feature/post/transport/handler"
	postusecase "devconnector/internal/feature/post/usecase"
	profileadapters "devconnector/internal/feature/profile/adapters"
	profileentity "devconnector/internal/feature/profile/domain/entity"
	profilehandler "devconnector/internal/feature/profile/transport/handler"
	profileusecase "devconnector/internal/feature/profile/usecase"
	"devconnector/internal/platform/gravatar"
	jwtmw "devconnector/internal/platform/jwt"
)

// Models lists every table the server owns, in migration order.
func Models() []any {
	return []any{&authentity.User{}, &profileentity.Profile{}, &postentity.Post{}}
}

// Container holds the HTTP-facing components built from one database handle.
type Container struct {
	Tokens  *jwtmw.Service
	Auth    *authhandler.AuthHandler
	Profile *profilehandler.ProfileHandler
	Post    *posthandler.PostHandler
}

// NewContainer builds all features on top of db, signing tokens with tokens.
func NewContainer(db *gorm.DB, tokens *jwtmw.Service) *Container {
	// Repository
	userRepo := authadapters.NewUserRepository(db)
	profileRepo := profileadapters.NewProfileRepository(db)
	postRepo := postadapters.NewPostRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens, gravatar.URL)
	profileUC := profileusecase.NewProfileUsecase(profileRepo, profileUsers{users: userRepo}, nil)
	postUC := postusecase.NewPostUsecase(postRepo, postAuthors{users: userRepo})

	// Handler
	return &Container{
		Tokens:  tokens,
		Auth:    authhandler.NewAuthHandler(authUC),
		Profile: profilehandler.NewProfileHandler(profileUC),
		Post:    posthandler.NewPostHandler(postUC),
	}
}
