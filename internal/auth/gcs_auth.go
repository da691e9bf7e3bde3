package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// storageScope is the read-write scope for Cloud Storage objects.
const storageScope = "https://www.googleapis.com/auth/devstorage.read_write"

// StorageClientOptions builds the client options for the object store. With
// no credentials file it returns nothing and the client falls back to
// Application Default Credentials.
func StorageClientOptions(ctx context.Context, credentialsFile string) ([]option.ClientOption, error) {
	if credentialsFile == "" {
		return nil, nil
	}

	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, storageScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	return []option.ClientOption{option.WithCredentials(creds)}, nil
}
