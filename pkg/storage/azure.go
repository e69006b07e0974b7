package storage

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// AzureStore uploads audio into a blob container and returns the blob URL.
// The container is created lazily on the first Save after a restart;
// "already exists" is not an error.
type AzureStore struct {
	client    *azblob.Client
	container string
}

func NewAzureStore(connectionString string, container string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, errors.Wrap(err, "cannot build blob client from connection string")
	}
	return &AzureStore{client: client, container: container}, nil
}

func (s *AzureStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if _, err := s.client.CreateContainer(ctx, s.container, nil); err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return "", errors.Wrapf(err, "cannot ensure container %s", s.container)
		}
	}

	if _, err := s.client.UploadBuffer(ctx, s.container, name, data, nil); err != nil {
		return "", errors.Wrapf(err, "cannot upload blob %s", name)
	}

	url := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(name).URL()
	log.Debug().Str("container", s.container).Str("blob", name).Int("byte_size", len(data)).Msg("stored audio in blob container")
	return url, nil
}
