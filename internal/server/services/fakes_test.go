package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/rivalrockets/rivalrockets/internal/common"
	"github.com/rivalrockets/rivalrockets/internal/dbx"
	"github.com/rivalrockets/rivalrockets/internal/server/config"
	"github.com/rivalrockets/rivalrockets/internal/server/models"
	commentsrepo "github.com/rivalrockets/rivalrockets/internal/server/repositories/comments"
	machinesrepo "github.com/rivalrockets/rivalrockets/internal/server/repositories/machines"
	revisionsrepo "github.com/rivalrockets/rivalrockets/internal/server/repositories/revisions"
	rolesrepo "github.com/rivalrockets/rivalrockets/internal/server/repositories/roles"
	usersrepo "github.com/rivalrockets/rivalrockets/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	cfg.AdminEmail = "admin@example.com"
	cfg.AuthTokenValidityDuration = time.Hour
	cfg.EmailTokenValidityDuration = time.Hour
	return cfg
}

// --- in-memory fakes ---

type fakeRolesRepo struct {
	roles  []*models.Role
	nextID int64
}

func seededRoles() *fakeRolesRepo {
	f := &fakeRolesRepo{}
	for _, r := range models.SeedRoles() {
		role := r
		_ = f.Upsert(context.Background(), &role)
	}
	return f
}

func (f *fakeRolesRepo) Upsert(ctx context.Context, role *models.Role) error {
	for _, existing := range f.roles {
		if existing.Name == role.Name {
			existing.Default = role.Default
			existing.Permissions = role.Permissions
			role.ID = existing.ID
			return nil
		}
	}
	f.nextID++
	role.ID = f.nextID
	stored := *role
	f.roles = append(f.roles, &stored)
	return nil
}

func (f *fakeRolesRepo) GetByID(ctx context.Context, id int64) (*models.Role, error) {
	for _, r := range f.roles {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRolesRepo) GetByName(ctx context.Context, name string) (*models.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRolesRepo) GetDefault(ctx context.Context) (*models.Role, error) {
	for _, r := range f.roles {
		if r.Default {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRolesRepo) GetByPermissions(ctx context.Context, p models.Permission) (*models.Role, error) {
	for _, r := range f.roles {
		if r.Permissions == p {
			return r, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeUsersRepo struct {
	users  []*models.User
	nextID int64

	createErr error
	pinged    []int64
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	u.MemberSince = time.Now()
	u.LastSeen = u.MemberSince
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUsersRepo) UpdateEmail(ctx context.Context, id int64, email, avatarHash string) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Email = email
	u.AvatarHash = avatarHash
	return nil
}

func (f *fakeUsersRepo) SetConfirmed(ctx context.Context, id int64) error {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Confirmed = true
	return nil
}

func (f *fakeUsersRepo) Ping(ctx context.Context, id int64) error {
	f.pinged = append(f.pinged, id)
	return nil
}

type fakeMachinesRepo struct {
	machines []*models.Machine
	nextID   int64

	updateErr error
}

func (f *fakeMachinesRepo) Create(ctx context.Context, m *models.Machine) (*models.Machine, error) {
	f.nextID++
	m.ID = f.nextID
	m.Timestamp = time.Now()
	f.machines = append(f.machines, m)
	return m, nil
}

func (f *fakeMachinesRepo) GetByID(ctx context.Context, id int64) (*models.Machine, error) {
	for _, m := range f.machines {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeMachinesRepo) Update(ctx context.Context, m *models.Machine) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, existing := range f.machines {
		if existing.ID == m.ID {
			copied := *m
			f.machines[i] = &copied
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeMachinesRepo) List(ctx context.Context, limit, offset int) ([]*models.Machine, error) {
	return pageOf(f.machines, limit, offset), nil
}

func (f *fakeMachinesRepo) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*models.Machine, error) {
	var mine []*models.Machine
	for _, m := range f.machines {
		if m.AuthorID == authorID {
			mine = append(mine, m)
		}
	}
	return pageOf(mine, limit, offset), nil
}

func (f *fakeMachinesRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.machines)), nil
}

func (f *fakeMachinesRepo) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var n int64
	for _, m := range f.machines {
		if m.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

type fakeRevisionsRepo struct {
	revisions []*models.Revision
	nextID    int64
}

func (f *fakeRevisionsRepo) Create(ctx context.Context, r *models.Revision) (*models.Revision, error) {
	f.nextID++
	r.ID = f.nextID
	r.Timestamp = time.Now()
	f.revisions = append(f.revisions, r)
	return r, nil
}

func (f *fakeRevisionsRepo) GetByID(ctx context.Context, id int64) (*models.Revision, error) {
	for _, r := range f.revisions {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeRevisionsRepo) Update(ctx context.Context, r *models.Revision) error {
	for i, existing := range f.revisions {
		if existing.ID == r.ID {
			copied := *r
			f.revisions[i] = &copied
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeRevisionsRepo) List(ctx context.Context, limit, offset int) ([]*models.Revision, error) {
	return pageOf(f.revisions, limit, offset), nil
}

func (f *fakeRevisionsRepo) ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Revision, error) {
	var mine []*models.Revision
	for _, r := range f.revisions {
		if r.MachineID == machineID {
			mine = append(mine, r)
		}
	}
	return pageOf(mine, limit, offset), nil
}

func (f *fakeRevisionsRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.revisions)), nil
}

func (f *fakeRevisionsRepo) CountByMachine(ctx context.Context, machineID int64) (int64, error) {
	var n int64
	for _, r := range f.revisions {
		if r.MachineID == machineID {
			n++
		}
	}
	return n, nil
}

type fakeCommentsRepo struct {
	comments []*models.Comment
	nextID   int64
}

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	f.nextID++
	c.ID = f.nextID
	c.Timestamp = time.Now()
	f.comments = append(f.comments, c)
	return c, nil
}

func (f *fakeCommentsRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeCommentsRepo) List(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return pageOf(f.comments, limit, offset), nil
}

func (f *fakeCommentsRepo) ListByMachine(ctx context.Context, machineID int64, limit, offset int) ([]*models.Comment, error) {
	var mine []*models.Comment
	for _, c := range f.comments {
		if c.MachineID == machineID {
			mine = append(mine, c)
		}
	}
	return pageOf(mine, limit, offset), nil
}

func (f *fakeCommentsRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.comments)), nil
}

func (f *fakeCommentsRepo) CountByMachine(ctx context.Context, machineID int64) (int64, error) {
	var n int64
	for _, c := range f.comments {
		if c.MachineID == machineID {
			n++
		}
	}
	return n, nil
}

func pageOf[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

type fakeRepoManager struct {
	roles     *fakeRolesRepo
	users     *fakeUsersRepo
	machines  *fakeMachinesRepo
	revisions *fakeRevisionsRepo
	comments  *fakeCommentsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		roles:     seededRoles(),
		users:     &fakeUsersRepo{},
		machines:  &fakeMachinesRepo{},
		revisions: &fakeRevisionsRepo{},
		comments:  &fakeCommentsRepo{},
	}
}

func (m *fakeRepoManager) Roles(db dbx.DBTX) rolesrepo.Repository         { return m.roles }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.users }
func (m *fakeRepoManager) Machines(db dbx.DBTX) machinesrepo.Repository   { return m.machines }
func (m *fakeRepoManager) Revisions(db dbx.DBTX) revisionsrepo.Repository { return m.revisions }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository   { return m.comments }
func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }

// memberUser returns a persisted user holding the default role.
func memberUser(t *testing.T, rm *fakeRepoManager, username string) *models.User {
	t.Helper()
	role, err := rm.roles.GetDefault(context.Background())
	if err != nil {
		t.Fatalf("no default role: %v", err)
	}
	u := &models.User{
		Email:    username + "@example.com",
		Username: username,
		RoleID:   role.ID,
		Role:     role,
	}
	if _, err := rm.users.Create(context.Background(), u); err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return u
}
