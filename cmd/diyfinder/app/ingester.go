package app

import (
	"context"
	"errors"

	"diyfinder/internal/api"
	"diyfinder/internal/imaging"
	"diyfinder/internal/session"
)

// Ingester turns files from the drop folder into inventory items through
// the same add-item path the UI uses. It refuses work while nobody is
// signed in rather than queueing files for later.
type Ingester struct {
	client   *api.Client
	sessions *session.Store
}

func NewIngester(client *api.Client, sessions *session.Store) *Ingester {
	return &Ingester{client: client, sessions: sessions}
}

// ErrNoSession is returned for files dropped while signed out.
var ErrNoSession = errors.New("no user signed in")

func (in *Ingester) Ingest(ctx context.Context, path string) error {
	username := in.sessions.Username()
	if username == "" {
		return ErrNoSession
	}

	uri, err := imaging.EncodeFile(path)
	if err != nil {
		return err
	}

	resp, err := in.client.AddItem(ctx, defaultAddItem(uri, username))
	if err != nil {
		return err
	}
	if !resp.Success {
		if resp.Error != "" {
			return errors.New(resp.Error)
		}
		return errors.New("failed to add item")
	}
	return nil
}
