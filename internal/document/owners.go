package document

import (
	"sync"

	"fleet-backend/internal/database"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Owner describes a record type documents can hang off and how its URL key
// is looked up.
type Owner struct {
	Type     models.OwnerType
	NewModel func() any
	Column   string
}

var (
	ownersMu sync.RWMutex
	owners   = map[string]Owner{}
)

// RegisterOwner makes /<segment>/:key/documents available.
func RegisterOwner(segment string, o Owner) {
	ownersMu.Lock()
	defer ownersMu.Unlock()
	owners[segment] = o
}

func ownerFor(segment string) (Owner, error) {
	ownersMu.RLock()
	defer ownersMu.RUnlock()
	o, ok := owners[segment]
	if !ok {
		return Owner{}, fiber.NewError(fiber.StatusNotFound, "Unknown document owner: "+segment)
	}
	return o, nil
}

func (o Owner) exists(key string) (bool, error) {
	var n int64
	err := database.DB.Model(o.NewModel()).Where(o.Column+" = ?", key).Count(&n).Error
	return n > 0, err
}
