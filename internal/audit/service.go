package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"sort"
	"sync"
	"time"

	"fleet-backend/internal/database"
	"fleet-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUnknownEntity = errors.New("unknown entity type")
	ErrAlreadyUndone = errors.New("this change was already undone")
	ErrNotUndoable   = errors.New("this action cannot be undone")
)

var (
	mu       sync.RWMutex
	registry = map[string]func() any{}
)

// Register makes entityType undoable. newModel returns a pointer to a zero
// model whose ID field is the primary key.
func Register(entityType string, newModel func() any) {
	mu.Lock()
	defer mu.Unlock()
	registry[entityType] = newModel
}

// EntityTypes lists the registered names.
func EntityTypes() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(entityType string) (func() any, error) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := registry[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entityType)
	}
	return fn, nil
}

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	EntityKey   string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func snapshot(v any) datatypes.JSON {
	if v == nil {
		return datatypes.JSON("null")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("null")
	}
	return datatypes.JSON(b)
}

func WriteLog(opts LogOptions) error {
	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		EntityKey:   opts.EntityKey,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  snapshot(opts.Before),
		AfterData:   snapshot(opts.After),
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log could not be written: %w", err)
	}
	return nil
}

// Record writes a log entry and only logs a failure.
func Record(opts LogOptions) {
	if err := WriteLog(opts); err != nil {
		log.Printf("[WARN] %v (%s %s #%d)", err, opts.Action, opts.EntityType, opts.EntityID)
	}
}

// UndoLog reverts one logged change: a create is deleted, an update is
// restored from its before image and a delete is recreated with its old ID.
func UndoLog(logID uint, userID uint, userName string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.AuditLog
		if err := tx.First(&entry, "id = ?", logID).Error; err != nil {
			return fmt.Errorf("log not found: %w", err)
		}
		if entry.IsUndone {
			return ErrAlreadyUndone
		}

		newModel, err := lookup(entry.EntityType)
		if err != nil {
			return err
		}

		switch entry.Action {
		case models.AuditActionCreate:
			err = tx.Delete(newModel(), "id = ?", entry.EntityID).Error
		case models.AuditActionUpdate:
			err = restore(tx, newModel(), entry.EntityID, entry.BeforeData)
		case models.AuditActionDelete:
			err = recreate(tx, newModel(), entry.EntityID, entry.BeforeData)
		default:
			return ErrNotUndoable
		}
		if err != nil {
			return fmt.Errorf("undo %s %s: %w", entry.Action, entry.EntityType, err)
		}

		now := time.Now()
		entry.IsUndone = true
		entry.UndoneBy = &userID
		entry.UndoneAt = &now
		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("log could not be updated: %w", err)
		}

		undo := models.AuditLog{
			UserID:      userID,
			UserName:    userName,
			EntityType:  entry.EntityType,
			EntityID:    entry.EntityID,
			EntityKey:   entry.EntityKey,
			Action:      models.AuditActionUndo,
			Description: fmt.Sprintf("Undone: %s", entry.Description),
			BeforeData:  entry.AfterData,
			AfterData:   entry.BeforeData,
			Undone:      true,
		}
		return tx.Create(&undo).Error
	})
}

func restore(tx *gorm.DB, model any, id uint, data datatypes.JSON) error {
	if err := decodeWithID(model, id, data); err != nil {
		return err
	}
	return tx.Model(model).Select("*").Omit("created_at").Updates(model).Error
}

func recreate(tx *gorm.DB, model any, id uint, data datatypes.JSON) error {
	if err := decodeWithID(model, id, data); err != nil {
		return err
	}
	return tx.Create(model).Error
}

// decodeWithID fills model from data and forces its ID, since several
// models hide the surrogate key from JSON.
func decodeWithID(model any, id uint, data datatypes.JSON) error {
	if len(data) == 0 || string(data) == "null" {
		return errors.New("no snapshot stored")
	}
	if err := json.Unmarshal(data, model); err != nil {
		return err
	}
	return setID(model, id)
}

func setID(model any, id uint) error {
	v := reflect.ValueOf(model)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("model %T must be a struct pointer", model)
	}
	f := v.Elem().FieldByName("ID")
	if !f.IsValid() || !f.CanSet() || f.Kind() != reflect.Uint {
		return fmt.Errorf("model %T has no uint ID field", model)
	}
	f.SetUint(uint64(id))
	return nil
}
