package document

import (
	"errors"
	"fmt"
	"io"
	"log"

	"fleet-backend/internal/apiutil"
	"fleet-backend/internal/database"
	"fleet-backend/internal/dates"
	"fleet-backend/internal/metrics"
	"fleet-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Mount wires the document routes. write guards upload and delete.
func Mount(router fiber.Router, write ...fiber.Handler) {
	router.Get("/:owner/:key/documents", ListHandler())
	router.Get("/:owner/:key/documents/:type", DownloadHandler())
	router.Delete("/:owner/:key/documents/:type", append(write, DeleteHandler())...)
	router.Post("/:owner/:key/documents/:type/upload", append(write, UploadHandler())...)
}

type target struct {
	owner Owner
	key   string
}

func resolve(c *fiber.Ctx) (target, error) {
	owner, err := ownerFor(c.Params("owner"))
	if err != nil {
		return target{}, err
	}
	key, err := apiutil.NaturalKey(c, "key")
	if err != nil {
		return target{}, err
	}
	return target{owner: owner, key: key}, nil
}

func findDocument(t target, docType string) (*models.Document, error) {
	var doc models.Document
	err := database.DB.
		Where("owner_type = ? AND owner_key = ? AND type = ?", t.owner.Type, t.key, docType).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apiutil.NotFound("Document")
	}
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch document")
	}
	return &doc, nil
}

// GET /api/:owner/:key/documents
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := resolve(c)
		if err != nil {
			return err
		}

		var docs []models.Document
		if err := database.DB.
			Where("owner_type = ? AND owner_key = ?", t.owner.Type, t.key).
			Order("type asc").
			Find(&docs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch documents")
		}
		return c.JSON(docs)
	}
}

// GET /api/:owner/:key/documents/:type
func DownloadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := resolve(c)
		if err != nil {
			return err
		}
		docType, err := apiutil.NaturalKey(c, "type")
		if err != nil {
			return err
		}
		doc, err := findDocument(t, docType)
		if err != nil {
			return err
		}

		data, err := store.Read(doc.StoredPath)
		if err != nil {
			log.Printf("read document %d: %v", doc.ID, err)
			return fiber.NewError(fiber.StatusNotFound, "Document file is missing")
		}
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", doc.FileName))
		return c.Send(data)
	}
}

// DELETE /api/:owner/:key/documents/:type
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := resolve(c)
		if err != nil {
			return err
		}
		docType, err := apiutil.NaturalKey(c, "type")
		if err != nil {
			return err
		}
		doc, err := findDocument(t, docType)
		if err != nil {
			return err
		}

		if err := remove(database.DB, doc); err != nil {
			log.Printf("delete document %d: %v", doc.ID, err)
			return fiber.NewError(fiber.StatusInternalServerError, "Document could not be deleted")
		}
		return apiutil.Message(c, "Document deleted successfully")
	}
}

// POST /api/:owner/:key/documents/:type/upload
//
// An existing document of the same type is deleted before the new one is
// written.
func UploadHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		t, err := resolve(c)
		if err != nil {
			return err
		}
		docType, err := apiutil.NaturalKey(c, "type")
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
		}
		if fh.Size > store.MaxBytes {
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, ErrTooLarge.Error())
		}
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Uploaded file could not be read")
		}
		data, err := io.ReadAll(io.LimitReader(f, store.MaxBytes+1))
		f.Close()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Uploaded file could not be read")
		}

		contentType, err := store.Check(data)
		switch {
		case errors.Is(err, ErrTooLarge):
			return fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ok, err := t.owner.exists(t.key)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to look up owner")
		}
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s %s not found", t.owner.Type, t.key))
		}

		if old, err := findDocument(t, docType); err == nil {
			if err := remove(database.DB, old); err != nil {
				log.Printf("replace document %d: %v", old.ID, err)
				return fiber.NewError(fiber.StatusInternalServerError, "Existing document could not be replaced")
			}
		}

		path, err := store.Save(string(t.owner.Type), contentType, data)
		if err != nil {
			log.Printf("save document: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Document could not be stored")
		}

		doc := models.Document{
			OwnerType:   t.owner.Type,
			OwnerKey:    t.key,
			Type:        docType,
			FileName:    fh.Filename,
			StoredPath:  path,
			ContentType: contentType,
			Size:        int64(len(data)),
			UploadDate:  dates.Today(),
		}
		if err := database.DB.Create(&doc).Error; err != nil {
			_ = store.Remove(path)
			log.Printf("create document row: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Document could not be stored")
		}
		metrics.DocumentBytes.Add(float64(doc.Size))

		return apiutil.Created(c, "Document uploaded successfully", doc)
	}
}

func remove(db *gorm.DB, doc *models.Document) error {
	if err := db.Delete(doc).Error; err != nil {
		return err
	}
	if err := store.Remove(doc.StoredPath); err != nil {
		log.Printf("remove document file %s: %v", doc.StoredPath, err)
	}
	return nil
}

// DeleteForOwner deletes the document rows of one owner record inside tx
// and returns their stored files. Pass them to RemoveFiles once tx has
// committed; a rollback then keeps rows and files together.
func DeleteForOwner(tx *gorm.DB, ownerType models.OwnerType, key string) ([]string, error) {
	var docs []models.Document
	if err := tx.Where("owner_type = ? AND owner_key = ?", ownerType, key).Find(&docs).Error; err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(docs))
	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
		paths = append(paths, d.StoredPath)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Document{}).Error; err != nil {
		return nil, err
	}
	return paths, nil
}

// RemoveFiles unlinks stored document files. Failures are only logged.
func RemoveFiles(paths []string) {
	for _, p := range paths {
		if err := store.Remove(p); err != nil {
			log.Printf("remove document file %s: %v", p, err)
		}
	}
}

// RekeyOwner points the documents of one owner record at its new key.
func RekeyOwner(tx *gorm.DB, ownerType models.OwnerType, oldKey, newKey string) error {
	return tx.Model(&models.Document{}).
		Where("owner_type = ? AND owner_key = ?", ownerType, oldKey).
		Update("owner_key", newKey).Error
}
