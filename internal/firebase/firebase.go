package firebase

import (
	"context"
	"os"

	"brainhints/backend/internal/config"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp builds the Firebase app.
// Credentials come from FIREBASE_SERVICE_ACCOUNT_JSON (raw json), GOOGLE_APPLICATION_CREDENTIALS
// (file path) or Application Default Credentials, in that order.
func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	appCfg := &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}
	return firebase.NewApp(ctx, appCfg, credentialOptions()...)
}

func credentialOptions() []option.ClientOption {
	opts := []option.ClientOption{}
	if json := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); json != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(json)))
	} else if cred := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}
	return opts
}
