package main

import (
	"context"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/gogotex/useradmin/internal/admin"
	"github.com/gogotex/useradmin/internal/config"
	"github.com/gogotex/useradmin/internal/database"
	"github.com/gogotex/useradmin/internal/identity"
	"github.com/gogotex/useradmin/internal/profiles"
	"github.com/gogotex/useradmin/pkg/logger"
)

var (
	app      = kingpin.New("bootstrap-admin", "Grant the admin claim to a user directly on the identity store.")
	email    = app.Flag("email", "Email of the user to promote.").Required().String()
	password = app.Flag("password", "Create the user with this password when it does not exist.").Envar("BOOTSTRAP_ADMIN_PASSWORD").String()
	name     = app.Flag("name", "Display name for a newly created user.").Default("Administrator").String()
)

func main() {
	kingpin.MustParse(app.Parse(os.Args[1:]))
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	kingpin.FatalIfError(err, "Unable to load config")
	if cfg.MongoDB.URI == "" {
		kingpin.Fatalf("MONGODB_URI is required")
	}

	ctx := context.Background()
	m, err := database.ConnectMongo(ctx, cfg.MongoDB)
	kingpin.FatalIfError(err, "Unable to connect to MongoDB")
	defer func() { _ = m.Close(context.Background()) }()

	ids := identity.NewMongoProvider(ctx, m.Collection(cfg.Collections.Identities))
	profs := profiles.NewMongoRepository(m.Collection(cfg.Collections.Profiles))

	uid, created, err := admin.Bootstrap(ctx, ids, profs, admin.BootstrapRequest{Email: *email, Password: *password, Name: *name})
	kingpin.FatalIfError(err, "Unable to grant admin role")
	logger.Infow("admin role granted", "email", *email, "uid", uid, "created", created)
}
