package router

import (
	listingapp "github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/internal/container"
	pginfra "github.com/bookbridge/bookbridge/internal/infrastructure/postgres"
	handlers "github.com/bookbridge/bookbridge/internal/interface/http"
	"github.com/bookbridge/bookbridge/internal/router/modules"
)

func buildUserModule(users *pginfra.UserRepository) *modules.UserModule {
	cfg := container.GetConfig()

	service := listingapp.NewUserService(
		users,
		container.GetSessions(),
		container.GetLogger(),
		container.GetRabbitPub(),
		cfg.AppName,
	)

	handler := handlers.NewUserHandler(
		service,
		container.GetLogger(),
		cfg.CookieDomain,
		cfg.CookieSecure,
	)

	return modules.NewUserModule(handler)
}

func buildListingModule(users *pginfra.UserRepository) *modules.ListingModule {
	cfg := container.GetConfig()
	repo := pginfra.NewListingRepository(container.GetPGPool())

	service := listingapp.NewListingService(
		repo,
		users,
		container.GetUploader(),
		container.GetLogger(),
		container.GetES(),
		cfg.ESListingsIndex,
		container.GetRabbitPub(),
	)

	listings := handlers.NewListingHandler(service, container.GetLogger())
	search := handlers.NewSearchHandler(service, container.GetLogger())

	return modules.NewListingModule(listings, search)
}

// InitModules builds every application module and adds it to the registry.
// Call once during startup, after the container has been populated.
func InitModules(r *Registry) {
	users := pginfra.NewUserRepository(container.GetPGPool())

	r.Add(buildUserModule(users))
	r.Add(buildListingModule(users))

	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
