package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
)

func strPtr(s string) *string { return &s }

func TestMachineCreate_RequiresPermission(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())
	user := memberUser(t, rm, "john")

	m, err := s.Create(context.Background(), user, models.MachineInput{SystemName: "Falcon"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.ID == 0 || m.AuthorID != user.ID {
		t.Fatalf("unexpected machine: %+v", m)
	}

	// anonymous caller
	if _, err := s.Create(context.Background(), nil, models.MachineInput{SystemName: "X"}); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("anonymous: want ErrorForbidden, got %v", err)
	}

	// commenter-only role
	limited := memberUser(t, rm, "susan")
	limited.Role = &models.Role{Name: "Lurker", Permissions: models.PermissionComment}
	if _, err := s.Create(context.Background(), limited, models.MachineInput{SystemName: "X"}); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("no CreateMachineData bit: want ErrorForbidden, got %v", err)
	}
}

func TestMachineCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())
	user := memberUser(t, rm, "john")

	var ve *common.ValidationError
	_, err := s.Create(context.Background(), user, models.MachineInput{Owner: "me"})
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if ve.Error() != "machine does not have system_name" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}

func TestMachineUpdate_MergePatch(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())
	user := memberUser(t, rm, "john")

	m, err := s.Create(context.Background(), user, models.MachineInput{
		SystemName: "Falcon", SystemNotes: "first build", Owner: "john",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	got, err := s.Update(context.Background(), user, m.ID, models.MachinePatch{
		SystemName: strPtr("Falcon II"),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.SystemName != "Falcon II" {
		t.Fatalf("system_name not updated: %q", got.SystemName)
	}
	if got.SystemNotes != "first build" || got.Owner != "john" {
		t.Fatalf("omitted fields were touched: %+v", got)
	}
}

func TestMachineUpdate_AuthorOrAdminOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())
	author := memberUser(t, rm, "john")
	other := memberUser(t, rm, "susan")

	m, err := s.Create(context.Background(), author, models.MachineInput{SystemName: "Falcon"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := s.Update(context.Background(), other, m.ID, models.MachinePatch{Owner: strPtr("susan")}); !errors.Is(err, common.ErrorForbidden) {
		t.Fatalf("non-author: want ErrorForbidden, got %v", err)
	}

	admin := memberUser(t, rm, "root")
	adminRole, err := rm.roles.GetByName(context.Background(), "Administrator")
	if err != nil {
		t.Fatalf("no Administrator role: %v", err)
	}
	admin.Role = adminRole
	if _, err := s.Update(context.Background(), admin, m.ID, models.MachinePatch{Owner: strPtr("the club")}); err != nil {
		t.Fatalf("admin edit should succeed: %v", err)
	}
}

func TestMachineUpdate_NotFound(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())
	user := memberUser(t, rm, "john")

	_, err := s.Update(context.Background(), user, 404, models.MachinePatch{Owner: strPtr("x")})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestMachineList_Pagination(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	cfg := testConfig()
	cfg.MachinesPerPage = 10
	s := NewMachineService(db, rm, cfg)
	user := memberUser(t, rm, "john")

	for i := 0; i < 25; i++ {
		if _, err := s.Create(context.Background(), user, models.MachineInput{SystemName: "m"}); err != nil {
			t.Fatalf("Create error: %v", err)
		}
	}

	items, count, err := s.List(context.Background(), 1)
	if err != nil || len(items) != 10 || count != 25 {
		t.Fatalf("page 1: len=%d count=%d err=%v", len(items), count, err)
	}
	items, count, err = s.List(context.Background(), 3)
	if err != nil || len(items) != 5 || count != 25 {
		t.Fatalf("page 3: len=%d count=%d err=%v", len(items), count, err)
	}
	items, count, err = s.List(context.Background(), 4)
	if err != nil || len(items) != 0 || count != 25 {
		t.Fatalf("page past the end: len=%d count=%d err=%v", len(items), count, err)
	}
}

func TestMachineGet_Counts(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	cfg := testConfig()
	s := NewMachineService(db, rm, cfg)
	revs := NewRevisionService(db, rm, cfg)
	coms := NewCommentService(db, rm, cfg)
	user := memberUser(t, rm, "john")

	m, err := s.Create(context.Background(), user, models.MachineInput{SystemName: "Falcon"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := revs.Create(context.Background(), user, m.ID, models.RevisionInput{CPUMake: "AMD"}); err != nil {
			t.Fatalf("revision Create error: %v", err)
		}
	}
	if _, err := coms.Create(context.Background(), user, m.ID, models.CommentInput{Body: "nice"}); err != nil {
		t.Fatalf("comment Create error: %v", err)
	}

	got, revCount, comCount, err := s.Get(context.Background(), m.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != m.ID || revCount != 2 || comCount != 1 {
		t.Fatalf("Get: id=%d revs=%d coms=%d", got.ID, revCount, comCount)
	}
}

func TestMachineListByUser_UnknownUser(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := newFakeRepoManager()
	s := NewMachineService(db, rm, testConfig())

	_, _, err := s.ListByUser(context.Background(), 404, 1)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}
