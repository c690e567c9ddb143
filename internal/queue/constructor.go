package queue

import (
	"github.com/maheshrc27/dreamwall/internal/service"
)

// Queue runs background media tasks against the object store.
type Queue struct {
	store service.ObjectStore
}

func NewQueue(store service.ObjectStore) *Queue {
	return &Queue{
		store: store,
	}
}

const TaskTypeDeleteMedia = "media:delete"

type DeleteMediaPayload struct {
	PublicIDs []string `json:"public_ids"`
}
