package config

import (
	"fmt"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
)

// InitPinecone creates the process-wide Pinecone client. It does not touch the
// network; index resolution happens in the repository.
func InitPinecone(apiKey string) (*pinecone.Client, error) {
	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey:    apiKey,
		SourceTag: "procedures_search_backend",
	})
	if err != nil {
		return nil, fmt.Errorf("initializing pinecone client: %w", err)
	}
	return client, nil
}
