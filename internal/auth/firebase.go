package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/launchpad-labs/project-starter/config"
)

var ErrNoCredentials = errors.New("firebase: no service account credentials configured")

// OpenFirebase builds the session-cookie provider from a service account file.
// The project id is optional and only overrides the one in the credentials.
func OpenFirebase(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseProvider, error) {
	if cfg.CredentialsPath == "" {
		return nil, ErrNoCredentials
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return NewFirebaseProvider(client), nil
}
