// Package resource builds the CRUD handlers every list screen talks to:
// list (with filters, sort and spreadsheet export), get, create, update
// and delete by natural key or id, each change written to the audit log.
package resource

import (
	"errors"
	"fmt"
	"log"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/audit"
	"fleet-backend/internal/auth"
	"fleet-backend/internal/database"
	"fleet-backend/internal/document"
	"fleet-backend/internal/export"
	"fleet-backend/internal/listview"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CodeSpec assigns display codes like F001 on create.
type CodeSpec[T any] struct {
	Prefix string
	Column string
	Set    func(*T, string)
}

type ExportSpec[T any] struct {
	File    string
	Sheet   string
	Columns []export.Column[T]
}

type Config[T any] struct {
	// Entity is the human name used in messages, e.g. "Truck".
	Entity string
	// AuditType is the audit log entity type, e.g. "truck".
	AuditType string

	// KeyParam is the route parameter and KeyColumn the column it matches.
	// With NumericKey the parameter is parsed as a positive integer.
	KeyParam   string
	KeyColumn  string
	NumericKey bool

	Rules apiutil.Rules
	Order string

	// ID and Key read the surrogate ID and the human key of a record.
	ID  func(*T) uint
	Key func(*T) string

	// Prepare derives computed fields and validates a decoded record. old
	// is nil on create.
	Prepare func(c *fiber.Ctx, rec *T, old *T) error

	// Query narrows the list query from request parameters (e.g. ?country).
	Query func(c *fiber.Ctx, q *gorm.DB) *gorm.DB

	// Schema filters and sorts the fetched list by the remaining query
	// parameters.
	Schema *listview.Schema[T]

	Code *CodeSpec[T]

	// Documents is the owner type of the documents filed under KeyOf. They
	// follow a key change and are removed with the record.
	Documents models.OwnerType

	Export  *ExportSpec[T]
	Summary func(records []T) any
}

type Resource[T any] struct {
	cfg Config[T]
}

func New[T any](cfg Config[T]) *Resource[T] {
	if cfg.Order == "" {
		cfg.Order = "id asc"
	}
	if cfg.KeyColumn == "" {
		cfg.KeyColumn = "id"
	}
	if cfg.KeyParam == "" {
		cfg.KeyParam = "id"
	}
	audit.Register(cfg.AuditType, func() any { return new(T) })
	return &Resource[T]{cfg: cfg}
}

func (r *Resource[T]) Config() Config[T] { return r.cfg }

// Mount wires the standard routes under path. write guards mutations.
func (r *Resource[T]) Mount(router fiber.Router, path string, write ...fiber.Handler) {
	key := path + "/:" + r.cfg.KeyParam

	router.Get(path, r.List())
	if r.cfg.Summary != nil {
		router.Get(path+"/summary", r.SummaryHandler())
	}
	if r.cfg.Export != nil {
		router.Get(path+"/export", r.ExportHandler())
	}
	router.Get(key, r.Get())
	router.Post(path, append(write, r.Create())...)
	router.Put(key, append(write, r.Update())...)
	router.Delete(key, append(write, r.Delete())...)
}

// -------------------------
// Loading
// -------------------------

// View loads the list for c: query narrowing, then filters and sort.
func (r *Resource[T]) View(c *fiber.Ctx) ([]T, error) {
	q := database.DB.Model(new(T))
	if r.cfg.Query != nil {
		q = r.cfg.Query(c, q)
	}

	recs := []T{}
	if err := q.Order(r.cfg.Order).Find(&recs).Error; err != nil {
		log.Printf("list %s: %v", r.cfg.AuditType, err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity+" records")
	}

	if r.cfg.Schema == nil {
		return recs, nil
	}
	filters, spec, err := ListParams(c, r.cfg.Schema)
	if err != nil {
		return nil, err
	}
	return r.cfg.Schema.View(recs, filters, spec), nil
}

func (r *Resource[T]) All() ([]T, error) {
	recs := []T{}
	if err := database.DB.Order(r.cfg.Order).Find(&recs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity+" records")
	}
	return recs, nil
}

// Find loads the record addressed by the route key.
func (r *Resource[T]) Find(c *fiber.Ctx) (*T, error) {
	var key any
	if r.cfg.NumericKey {
		id, err := apiutil.ParamID(c, r.cfg.KeyParam)
		if err != nil {
			return nil, err
		}
		key = id
	} else {
		k, err := apiutil.NaturalKey(c, r.cfg.KeyParam)
		if err != nil {
			return nil, err
		}
		key = k
	}
	return r.FindBy(r.cfg.KeyColumn, key)
}

func (r *Resource[T]) FindBy(column string, value any) (*T, error) {
	rec := new(T)
	err := database.DB.Where(column+" = ?", value).First(rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiutil.NotFound(r.cfg.Entity)
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch "+r.cfg.Entity)
	}
	return rec, nil
}

// -------------------------
// Handlers
// -------------------------

func (r *Resource[T]) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := r.View(c)
		if err != nil {
			return err
		}
		return c.JSON(recs)
	}
}

func (r *Resource[T]) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := r.Find(c)
		if err != nil {
			return err
		}
		return c.JSON(rec)
	}
}

func (r *Resource[T]) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := new(T)
		if _, err := apiutil.Decode(c, rec, r.cfg.Rules); err != nil {
			return err
		}
		if r.cfg.Prepare != nil {
			if err := r.cfg.Prepare(c, rec, nil); err != nil {
				return err
			}
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if r.cfg.Code != nil {
				if err := r.assignCode(tx, rec); err != nil {
					return err
				}
			}
			return tx.Create(rec).Error
		})
		if err != nil {
			return r.writeError(err, "created")
		}

		r.audit(c, models.AuditActionCreate, rec, nil, rec, "added")
		return apiutil.Created(c, r.cfg.Entity+" added successfully", rec)
	}
}

func (r *Resource[T]) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		old, err := r.Find(c)
		if err != nil {
			return err
		}

		rec := new(T)
		if _, err := apiutil.Decode(c, rec, r.cfg.Rules); err != nil {
			return err
		}
		if r.cfg.Prepare != nil {
			if err := r.cfg.Prepare(c, rec, old); err != nil {
				return err
			}
		}

		// Updates writes the assigned values back into old.
		before := *old
		oldKey := r.KeyOf(old)

		omit := []string{"id", "created_at"}
		if r.cfg.Code != nil {
			omit = append(omit, r.cfg.Code.Column)
		}
		updated := new(T)
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(old).Select("*").Omit(omit...).Updates(rec).Error; err != nil {
				return err
			}
			if err := tx.First(updated, r.cfg.ID(old)).Error; err != nil {
				return err
			}
			if newKey := r.KeyOf(updated); r.cfg.Documents != "" && newKey != oldKey {
				return document.RekeyOwner(tx, r.cfg.Documents, oldKey, newKey)
			}
			return nil
		})
		if err != nil {
			return r.writeError(err, "updated")
		}

		r.audit(c, models.AuditActionUpdate, updated, &before, updated, "updated")
		return c.JSON(fiber.Map{
			"message": r.cfg.Entity + " updated successfully",
			"record":  updated,
		})
	}
}

func (r *Resource[T]) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := r.Find(c)
		if err != nil {
			return err
		}

		var files []string
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if r.cfg.Documents != "" {
				paths, err := document.DeleteForOwner(tx, r.cfg.Documents, r.KeyOf(rec))
				if err != nil {
					return err
				}
				files = paths
			}
			return tx.Delete(rec).Error
		})
		if err != nil {
			log.Printf("delete %s %s: %v", r.cfg.AuditType, r.KeyOf(rec), err)
			return fiber.NewError(fiber.StatusInternalServerError, r.cfg.Entity+" could not be deleted")
		}
		document.RemoveFiles(files)

		r.audit(c, models.AuditActionDelete, rec, rec, nil, "deleted")
		return apiutil.Message(c, fmt.Sprintf("%s '%s' deleted successfully", r.cfg.Entity, r.KeyOf(rec)))
	}
}

// GET /api/<resource>/export honours the list filters.
func (r *Resource[T]) ExportHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := r.View(c)
		if err != nil {
			return err
		}
		spec := r.cfg.Export
		data, err := export.CurrentView(spec.Sheet, recs, spec.Columns)
		if err != nil {
			log.Printf("export %s: %v", r.cfg.AuditType, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Export failed")
		}
		return export.Send(c, spec.File, data)
	}
}

// MasterExportHandler writes the whole collection with relabeled,
// fixed-width columns.
func (r *Resource[T]) MasterExportHandler(file, sheet string, cols []export.Column[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := r.All()
		if err != nil {
			return err
		}
		data, err := export.MasterData(sheet, recs, cols)
		if err != nil {
			log.Printf("master export %s: %v", r.cfg.AuditType, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Export failed")
		}
		return export.Send(c, file, data)
	}
}

// GET /api/<resource>/summary aggregates the full collection.
func (r *Resource[T]) SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := r.All()
		if err != nil {
			return err
		}
		return c.JSON(r.cfg.Summary(recs))
	}
}

// -------------------------
// Helpers
// -------------------------

func (r *Resource[T]) assignCode(tx *gorm.DB, rec *T) error {
	var codes []string
	if err := tx.Model(new(T)).Pluck(r.cfg.Code.Column, &codes).Error; err != nil {
		return err
	}
	r.cfg.Code.Set(rec, apiutil.NextCode(r.cfg.Code.Prefix, codes))
	return nil
}

func (r *Resource[T]) writeError(err error, verb string) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fiber.NewError(fiber.StatusConflict, r.cfg.Entity+" already exists")
	}
	log.Printf("%s %s: %v", verb, r.cfg.AuditType, err)
	return fiber.NewError(fiber.StatusInternalServerError, r.cfg.Entity+" could not be "+verb)
}

// KeyOf is the key rec is addressed by in URLs and the audit log.
func (r *Resource[T]) KeyOf(rec *T) string {
	if r.cfg.Key != nil {
		return r.cfg.Key(rec)
	}
	return fmt.Sprint(r.cfg.ID(rec))
}

func (r *Resource[T]) audit(c *fiber.Ctx, action models.AuditAction, rec, before, after *T, verb string) {
	userID, userName := auth.Actor(c)
	opts := audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  r.cfg.AuditType,
		EntityID:    r.cfg.ID(rec),
		EntityKey:   r.KeyOf(rec),
		Action:      action,
		Description: fmt.Sprintf("%s %s %s", r.cfg.Entity, r.KeyOf(rec), verb),
	}
	if before != nil {
		opts.Before = before
	}
	if after != nil {
		opts.After = after
	}
	audit.Record(opts)
}
