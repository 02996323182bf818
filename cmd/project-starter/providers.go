package main

import (
	"context"
	"fmt"

	"github.com/launchpad-labs/project-starter/internal/auth"
	"github.com/launchpad-labs/project-starter/internal/generation"
)

func newGenerator(ctx context.Context) (generation.Generator, error) {
	g := cfg.Generator
	switch g.Provider {
	case "genai":
		return generation.NewGenAIGenerator(ctx, g.GenAIAPIKey, g.GenAIModel)
	case "http":
		return generation.NewHTTPGenerator(generation.HTTPConfig{
			BaseURL:      g.BaseURL,
			Timeout:      g.Timeout,
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			TokenURL:     g.TokenURL,
		}), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", g.Provider)
	}
}

func newIdentityProvider(ctx context.Context) (auth.IdentityProvider, error) {
	if cfg.DevAuth() {
		logger.Warn("FIREBASE_CREDENTIALS_PATH not set, using development sign-in")
		return auth.DevProvider{}, nil
	}

	provider, err := auth.OpenFirebase(ctx, cfg.Firebase)
	if err != nil {
		return nil, err
	}
	return provider, nil
}
