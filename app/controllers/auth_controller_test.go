package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

type fakeUserRepo struct {
	byEmail   map[string]*models.User
	createErr error
	nextID    uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(user *models.User) error { return nil }
func (f *fakeUserRepo) Delete(id uint) error           { return nil }
func (f *fakeUserRepo) List(offset, limit int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count() (int64, error) { return int64(len(f.byEmail)), nil }

func TestCreateAccount(t *testing.T) {
	repo := newFakeUserRepo()

	err := createAccount(repo, &models.User{Name: "Awa", Email: "awa@example.sn"})
	require.NoError(t, err)
	assert.Len(t, repo.byEmail, 1)
}

func TestCreateAccountExistingEmail(t *testing.T) {
	repo := newFakeUserRepo()
	require.NoError(t, repo.Create(&models.User{Name: "Awa", Email: "awa@example.sn"}))

	err := createAccount(repo, &models.User{Name: "Autre", Email: "awa@example.sn"})
	assert.ErrorIs(t, err, errEmailTaken)
	assert.Len(t, repo.byEmail, 1)
}

func TestCreateAccountLostInsertRace(t *testing.T) {
	// The pre-check misses, the insert loses the unique-index race to a
	// concurrent registration, and the re-check finds the winner's row.
	repo := newFakeUserRepo()
	repo.createErr = errors.New("Error 1062: Duplicate entry")
	racing := &racingUserRepo{fakeUserRepo: repo}

	err := createAccount(racing, &models.User{Name: "Awa", Email: "awa@example.sn"})
	assert.ErrorIs(t, err, errEmailTaken)
}

func TestCreateAccountUnexpectedCreateError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createErr = errors.New("connection lost")

	err := createAccount(repo, &models.User{Name: "Awa", Email: "awa@example.sn"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, errEmailTaken)
}

// racingUserRepo misses the first GetByEmail and hits the second, simulating
// a concurrent registration landing between check and insert.
type racingUserRepo struct {
	*fakeUserRepo
	lookups int
}

func (r *racingUserRepo) GetByEmail(email string) (*models.User, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.User{ID: 99, Email: email}, nil
}
