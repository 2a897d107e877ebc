package resource

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleet-backend/internal/database"
	"fleet-backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		t.Fatal(err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = prev
		conn.Close()
	})
	return mock
}

func documentedWidgets() *fiber.App {
	cfg := widgetConfig()
	cfg.Documents = models.OwnerTruck
	return newApp(cfg)
}

func storedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mulkiya.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func widgetRow(id int, name string, amount float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "amount"}).AddRow(id, name, amount)
}

func documentRows(path string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "owner_type", "owner_key", "type", "stored_path"}).
		AddRow(7, "truck", "T-1", "mulkiya", path)
}

func TestDeleteKeepsFilesWhenRolledBack(t *testing.T) {
	mock := mockDB(t)
	path := storedFile(t)

	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-1", 10))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "documents"`).WillReturnRows(documentRows(path))
	mock.ExpectExec(`DELETE FROM "documents"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "widgets"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if code, _ := send(t, documentedWidgets(), "DELETE", "/widgets/1", ""); code != fiber.StatusInternalServerError {
		t.Fatalf("status = %d", code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file removed by a rolled back delete: %v", err)
	}
}

func TestDeleteRemovesFilesAfterCommit(t *testing.T) {
	mock := mockDB(t)
	path := storedFile(t)

	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-1", 10))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "documents"`).WillReturnRows(documentRows(path))
	mock.ExpectExec(`DELETE FROM "documents"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "widgets"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if code, msg := send(t, documentedWidgets(), "DELETE", "/widgets/1", ""); code != fiber.StatusOK {
		t.Fatalf("status = %d (%s)", code, msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("file still on disk: %v", err)
	}
}

func TestUpdateMovesDocumentsToNewKey(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-1", 10))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "widgets" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-2", 5))
	mock.ExpectExec(`UPDATE "documents" SET "owner_key"`).
		WithArgs("T-2", "truck", "T-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	code, msg := send(t, documentedWidgets(), "PUT", "/widgets/1", `{"name":"T-2","amount":5}`)
	if code != fiber.StatusOK || !strings.Contains(msg, "updated") {
		t.Fatalf("status = %d (%s)", code, msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUpdateLeavesDocumentsWhenKeyUnchanged(t *testing.T) {
	mock := mockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-1", 10))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "widgets" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "widgets"`).WillReturnRows(widgetRow(1, "T-1", 5))
	mock.ExpectCommit()

	req := httptest.NewRequest("PUT", "/widgets/1", strings.NewReader(`{"name":"T-1","amount":5}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := documentedWidgets().Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
