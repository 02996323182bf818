package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/launchpad-labs/project-starter/config"
)

func TestOpenFirebase(t *testing.T) {
	_, err := OpenFirebase(context.Background(), config.FirebaseConfig{})
	assert.ErrorIs(t, err, ErrNoCredentials)

	missing := filepath.Join(t.TempDir(), "service-account.json")
	_, err = OpenFirebase(context.Background(), config.FirebaseConfig{CredentialsPath: missing, ProjectID: "demo"})
	assert.Error(t, err)
}
