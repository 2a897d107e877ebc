package audit

import (
	"errors"
	"reflect"
	"testing"

	"fleet-backend/internal/models"

	"gorm.io/datatypes"
)

func TestDecodeWithIDKeepsHiddenKey(t *testing.T) {
	// Fine hides its surrogate ID from JSON; the code travels as "id".
	before := snapshot(models.Fine{ID: 42, Code: "F007", Amount: 200, PenaltyAmount: 50})

	var fine models.Fine
	if err := decodeWithID(&fine, 42, before); err != nil {
		t.Fatal(err)
	}
	if fine.ID != 42 || fine.Code != "F007" || fine.Amount != 200 {
		t.Errorf("decoded %+v", fine)
	}
}

func TestDecodeWithIDErrors(t *testing.T) {
	var truck models.Truck
	if err := decodeWithID(&truck, 1, datatypes.JSON("null")); err == nil {
		t.Error("null snapshot should fail")
	}
	if err := setID(models.Truck{}, 1); err == nil {
		t.Error("non-pointer should fail")
	}
	var noID struct{ Name string }
	if err := setID(&noID, 1); err == nil {
		t.Error("struct without ID should fail")
	}
}

func TestRegistry(t *testing.T) {
	Register("test_truck", func() any { return &models.Truck{} })

	fn, err := lookup("test_truck")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fn().(*models.Truck); !ok {
		t.Errorf("got %T", fn())
	}
	if _, err := lookup("spaceship"); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("err = %v", err)
	}

	found := false
	for _, name := range EntityTypes() {
		if name == "test_truck" {
			found = true
		}
	}
	if !found {
		t.Errorf("EntityTypes = %v", EntityTypes())
	}
}

func TestSnapshot(t *testing.T) {
	if got := string(snapshot(nil)); got != "null" {
		t.Errorf("nil snapshot = %s", got)
	}
	if got := snapshot(map[string]int{"a": 1}); !reflect.DeepEqual([]byte(got), []byte(`{"a":1}`)) {
		t.Errorf("snapshot = %s", got)
	}
}
